package handlers

import (
	"server/internal/app"
	voterController "server/internal/controllers/voters"
	"server/internal/logger"
	. "server/internal/models"

	"github.com/gofiber/fiber/v2"
)

// maxBulkErrorsShown caps the failure list returned to the admin page; the
// full tally is always present.
const maxBulkErrorsShown = 10

type VoterHandler struct {
	Handler
	controller voterController.VoterController
}

func NewVoterHandler(app app.App, router fiber.Router) *VoterHandler {
	log := logger.New("handlers").File("voter_handler")
	return &VoterHandler{
		controller: *app.VoterController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *VoterHandler) Register() {
	voters := h.router.Group("/voters")
	voters.Post("/login", h.login)

	voters.Post("/", h.middleware.RequireAdmin, h.registerVoter)
	voters.Post("/bulk", h.middleware.RequireAdmin, h.bulkRegister)
	voters.Get("/", h.middleware.RequireAdmin, h.listVoters)
	voters.Delete("/:id", h.middleware.RequireAdmin, h.deleteVoter)
}

func (h *VoterHandler) login(c *fiber.Ctx) error {
	log := h.log.Function("login")

	var request VoterLoginRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse login request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse login request"})
	}

	voter, token, err := h.controller.Login(c.Context(), request.PhoneNumber)
	if err != nil {
		if gateErr, ok := IsGateClosed(err); ok {
			return c.Status(fiber.StatusForbidden).
				JSON(fiber.Map{"message": gateErr.Error(), "state": gateErr.State})
		}
		if err == ErrVoterNotFound {
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "Phone number not found. Please contact admin."})
		}
		log.Er("failed to login voter", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to login"})
	}

	return c.JSON(fiber.Map{"message": "success", "voter": voter, "token": token})
}

func (h *VoterHandler) registerVoter(c *fiber.Ctx) error {
	log := h.log.Function("registerVoter")

	var request RegisterVoterRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse register request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse register request"})
	}

	voter, err := h.controller.Register(c.Context(), request.PhoneNumber)
	if err != nil {
		switch err {
		case ErrInvalidPhoneFormat:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case ErrVoterExists:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		default:
			log.Er("failed to register voter", err)
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"message": "failed to register voter"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success", "voter": voter})
}

func (h *VoterHandler) bulkRegister(c *fiber.Ctx) error {
	log := h.log.Function("bulkRegister")

	var request BulkRegisterVotersRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse bulk register request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse bulk register request"})
	}

	result := h.controller.BulkRegister(c.Context(), request.PhoneNumbers)

	truncated := 0
	if len(result.Errors) > maxBulkErrorsShown {
		truncated = len(result.Errors) - maxBulkErrorsShown
		result.Errors = result.Errors[:maxBulkErrorsShown]
	}

	return c.JSON(fiber.Map{
		"message":         "success",
		"result":          result,
		"truncatedErrors": truncated,
	})
}

func (h *VoterHandler) listVoters(c *fiber.Ctx) error {
	log := h.log.Function("listVoters")

	voters, total, voted, err := h.controller.List(c.Context())
	if err != nil {
		log.Er("failed to list voters", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to list voters"})
	}

	return c.JSON(fiber.Map{
		"message":     "success",
		"voters":      voters,
		"totalVoters": total,
		"votedCount":  voted,
	})
}

func (h *VoterHandler) deleteVoter(c *fiber.Ctx) error {
	log := h.log.Function("deleteVoter")

	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "voter ID is required"})
	}

	if err := h.controller.Delete(c.Context(), id); err != nil {
		if err == ErrVoterNotFound {
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "voter not found"})
		}
		log.Er("failed to delete voter", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to delete voter"})
	}

	return c.JSON(fiber.Map{"message": "success"})
}
