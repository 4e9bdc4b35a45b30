package handlers

import (
	"server/internal/app"
	electionController "server/internal/controllers/election"
	"server/internal/logger"
	. "server/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ElectionHandler struct {
	Handler
	controller electionController.ElectionController
}

func NewElectionHandler(app app.App, router fiber.Router) *ElectionHandler {
	log := logger.New("handlers").File("election_handler")
	return &ElectionHandler{
		controller: *app.ElectionController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ElectionHandler) Register() {
	election := h.router.Group("/election")
	election.Get("/status", h.status)

	election.Get("/settings", h.middleware.RequireAdmin, h.settings)
	election.Put("/settings", h.middleware.RequireAdmin, h.updateSettings)
}

func (h *ElectionHandler) status(c *fiber.Ctx) error {
	log := h.log.Function("status")

	status, err := h.controller.Status(c.Context())
	if err != nil {
		log.Er("failed to get election status", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to get election status"})
	}

	return c.JSON(fiber.Map{"message": "success", "status": status})
}

func (h *ElectionHandler) settings(c *fiber.Ctx) error {
	log := h.log.Function("settings")

	settings, err := h.controller.Settings(c.Context())
	if err != nil {
		log.Er("failed to get election settings", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to get election settings"})
	}

	return c.JSON(fiber.Map{"message": "success", "settings": settings})
}

func (h *ElectionHandler) updateSettings(c *fiber.Ctx) error {
	log := h.log.Function("updateSettings")

	var request UpdateElectionSettingsRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse settings request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse settings request"})
	}

	settings, err := h.controller.UpdateSettings(c.Context(), &request)
	if err != nil {
		switch err {
		case ErrInvalidTimezone, ErrInvalidTimestamp:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			log.Er("failed to update election settings", err)
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"message": "failed to update election settings"})
		}
	}

	return c.JSON(fiber.Map{"message": "success", "settings": settings})
}
