package handlers

import (
	"server/internal/app"
	candidateController "server/internal/controllers/candidates"
	"server/internal/logger"
	. "server/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CandidateHandler struct {
	Handler
	controller candidateController.CandidateController
}

func NewCandidateHandler(app app.App, router fiber.Router) *CandidateHandler {
	log := logger.New("handlers").File("candidate_handler")
	return &CandidateHandler{
		controller: *app.CandidateController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *CandidateHandler) Register() {
	candidates := h.router.Group("/candidates")
	candidates.Get("/", h.listCandidates)
	candidates.Get("/grouped", h.listGrouped)

	candidates.Post("/", h.middleware.RequireAdmin, h.addCandidate)
	candidates.Put("/:id", h.middleware.RequireAdmin, h.editCandidate)
}

func (h *CandidateHandler) listCandidates(c *fiber.Ctx) error {
	log := h.log.Function("listCandidates")

	candidates, err := h.controller.List(c.Context())
	if err != nil {
		log.Er("failed to list candidates", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to list candidates"})
	}

	return c.JSON(fiber.Map{
		"message":    "success",
		"candidates": candidates,
		"total":      len(candidates),
	})
}

func (h *CandidateHandler) listGrouped(c *fiber.Ctx) error {
	log := h.log.Function("listGrouped")

	positions, grouped, err := h.controller.ListGroupedByPosition(c.Context())
	if err != nil {
		log.Er("failed to group candidates", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to group candidates"})
	}

	return c.JSON(fiber.Map{
		"message":   "success",
		"positions": positions,
		"grouped":   grouped,
	})
}

func (h *CandidateHandler) addCandidate(c *fiber.Ctx) error {
	log := h.log.Function("addCandidate")

	var request CandidateRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse candidate request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse candidate request"})
	}

	candidate, err := h.controller.Add(c.Context(), &request)
	if err != nil {
		if err == ErrCandidateNameRequired {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"message": "Full Name is required"})
		}
		log.Er("failed to add candidate", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to add candidate"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success", "candidate": candidate})
}

func (h *CandidateHandler) editCandidate(c *fiber.Ctx) error {
	log := h.log.Function("editCandidate")

	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "candidate ID is required"})
	}

	var request CandidateRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse candidate request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse candidate request"})
	}

	candidate, err := h.controller.Edit(c.Context(), id, &request)
	if err != nil {
		if err == ErrCandidateNotFound {
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "candidate not found"})
		}
		log.Er("failed to edit candidate", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to edit candidate"})
	}

	return c.JSON(fiber.Map{"message": "success", "candidate": candidate})
}
