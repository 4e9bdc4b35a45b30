package handlers

import (
	"server/config"
	"server/internal/app"
	"server/internal/handlers/middleware"
	"server/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	api := router.Group("/api")
	HealthHandler(api, app.Config)
	NewElectionHandler(*app, api).Register()
	NewVoterHandler(*app, api).Register()
	NewCandidateHandler(*app, api).Register()
	NewVoteHandler(*app, api).Register()
	NewResultsHandler(*app, api).Register()
	NewAdminHandler(*app, api).Register()

	return nil
}

func HealthHandler(router fiber.Router, config config.Config) {
	router.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "environment": config.Environment})
	})
}
