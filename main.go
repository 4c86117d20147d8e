package main

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/Dark-Zeus/auto-connect-sub001/cron"

	"github.com/Dark-Zeus/auto-connect-sub001/db"

	"github.com/Dark-Zeus/auto-connect-sub001/redis"

	"github.com/Dark-Zeus/auto-connect-sub001/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	redis.InitRedis()
	cron.StartCronJobs()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("AutoConnect API")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupScheduleRoutes(app)
	routes.SetupOwnerRoutes(app)
	routes.SetupCenterRoutes(app)

	log.Fatal(app.Listen(":8000"))
}
