package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/topshelfent/booking-api/controllers"
	"github.com/topshelfent/booking-api/middleware"
)

// SetupSiteRoutes configures the marketing site surface: contact form,
// event packages and the DJ team page.
func SetupSiteRoutes(app *fiber.App, pc *controllers.ProfileController, svc *controllers.ServiceController) {
	app.Post("/contact/compose", controllers.ComposeContact)

	app.Get("/team", pc.GetTeam)
	profile := app.Group("/profile", middleware.Protected())
	profile.Patch("/me", pc.UpdateProfile)
	profile.Post("/me/avatar", pc.UploadAvatar)

	services := app.Group("/services")
	services.Get("/", svc.GetAllServices)
	services.Get("/:id", svc.GetService)
	services.Post("/", middleware.Protected(), svc.CreateService)
	services.Patch("/:id", middleware.Protected(), svc.UpdateService)
	services.Delete("/:id", middleware.Protected(), svc.DeleteService)
}
