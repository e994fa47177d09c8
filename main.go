package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"github.com/topshelfent/booking-api/controllers"
	"github.com/topshelfent/booking-api/cron"
	"github.com/topshelfent/booking-api/db"
	"github.com/topshelfent/booking-api/redis"
	"github.com/topshelfent/booking-api/routes"
	"github.com/topshelfent/booking-api/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}

	database, err := db.Init()
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	db.Migrate(database)

	slotStore := store.NewGormStore(database)
	cache := redis.New()

	cron.StartCronJobs(slotStore)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Top Shelf Entertainment booking API")
	})

	routes.SetupAuthRoutes(app, controllers.NewAuthController(database))
	routes.SetupBookingRoutes(app, controllers.NewBookingController(slotStore, cache))
	routes.SetupScheduleRoutes(app, controllers.NewScheduleController(slotStore, cache))
	routes.SetupSiteRoutes(app, controllers.NewProfileController(database), controllers.NewServiceController(database))

	log.Fatal(app.Listen(":8000"))
}
