package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/topshelfent/booking-api/controllers"
	"github.com/topshelfent/booking-api/middleware"
)

// SetupScheduleRoutes configures the owner availability calendar
func SetupScheduleRoutes(app *fiber.App, sc *controllers.ScheduleController) {
	schedule := app.Group("/schedule", middleware.Protected())
	schedule.Get("/day", sc.GetDay)

	schedule.Post("/slots", sc.CreateSlot)
	schedule.Patch("/slots/:id", sc.UpdateSlot)
	schedule.Patch("/slots/:id/availability", sc.SetSlotAvailability)
	schedule.Delete("/slots/:id", sc.DeleteSlot)

	schedule.Get("/recurring", sc.ListRecurring)
	schedule.Post("/recurring", sc.CreateRecurring)
	schedule.Patch("/recurring/:id", sc.UpdateRecurring)
	schedule.Delete("/recurring/:id", sc.DeleteRecurring)
}
