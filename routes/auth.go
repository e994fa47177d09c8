package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/topshelfent/booking-api/controllers"
	"github.com/topshelfent/booking-api/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App, ac *controllers.AuthController) {
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/register", ac.Register)
	auth.Post("/login", ac.Login)
	auth.Post("/refresh", ac.RefreshToken)

	// Protected routes
	auth.Get("/me", middleware.Protected(), ac.GetUserProfile)
	auth.Post("/logout", middleware.Protected(), ac.Logout)
}
