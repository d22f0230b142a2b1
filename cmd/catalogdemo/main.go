// Command catalogdemo serves a self-contained, read-only catalog with a
// delivery simulator. It needs no database and is meant for frontend
// development and demos.
package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/freshmarket/marketplace/pkg/logger"
)

func main() {
	logger.Init("catalogdemo", true)

	app := fiber.New(fiber.Config{
		AppName: "FreshMarket Pro Demo API",
	})

	app.Use(cors.New())
	app.Use(fiberlogger.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "FreshMarket Pro API",
			"version": "1.0.0",
		})
	})

	app.Get("/api/categories", func(c *fiber.Ctx) error {
		return c.JSON(categories)
	})

	app.Get("/api/products", func(c *fiber.Ctx) error {
		return c.JSON(filterProducts(c.Query("category")))
	})

	app.Get("/api/products/:id", func(c *fiber.Ctx) error {
		product := findProduct(c.Params("id"))
		if product == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "product not found",
			})
		}
		return c.JSON(product)
	})

	app.Post("/api/delivery/estimate", func(c *fiber.Ctx) error {
		var req struct {
			CEP       string  `json:"cep"`
			CartTotal float64 `json:"cartTotal"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		estimate, err := EstimateDelivery(req.CEP)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid CEP",
			})
		}
		return c.JSON(estimate)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	port := os.Getenv("DEMO_PORT")
	if port == "" {
		port = "8000"
	}

	logger.Logger.Info().Str("port", port).Msg("Demo catalog started")
	if err := app.Listen(":" + port); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start demo server")
	}
}
