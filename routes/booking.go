package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/topshelfent/booking-api/controllers"
)

// SetupBookingRoutes configures the public booking flow
func SetupBookingRoutes(app *fiber.App, bc *controllers.BookingController) {
	booking := app.Group("/booking")
	booking.Get("/dates", bc.GetAvailableDates)
	booking.Get("/slots", bc.GetSlotsForDate)
	booking.Post("/slots/:id/claim", bc.ClaimSlot)
}
