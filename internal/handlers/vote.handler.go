package handlers

import (
	"server/internal/app"
	voteController "server/internal/controllers/votes"
	"server/internal/handlers/middleware"
	"server/internal/logger"
	. "server/internal/models"

	"github.com/gofiber/fiber/v2"
)

type VoteHandler struct {
	Handler
	controller voteController.VoteController
}

func NewVoteHandler(app app.App, router fiber.Router) *VoteHandler {
	log := logger.New("handlers").File("vote_handler")
	return &VoteHandler{
		controller: *app.VoteController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *VoteHandler) Register() {
	votes := h.router.Group("/votes")
	votes.Post("/", h.middleware.RequireVoter, h.castVote)
}

func (h *VoteHandler) castVote(c *fiber.Ctx) error {
	log := h.log.Function("castVote")

	voter, ok := c.Locals(middleware.LocalVoter).(Voter)
	if !ok || voter.ID == "" {
		log.ErMsg("no voter found in locals")
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "please login to vote"})
	}

	var request CastVoteRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse vote request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse vote request"})
	}
	if request.CandidateID == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "candidate ID is required"})
	}

	ballot, err := h.controller.Cast(c.Context(), voter.ID, request.CandidateID)
	if err != nil {
		if gateErr, ok := IsGateClosed(err); ok {
			return c.Status(fiber.StatusForbidden).
				JSON(fiber.Map{"message": gateErr.Error(), "state": gateErr.State})
		}
		switch err {
		case ErrAlreadyVotedInPosition:
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"message": "You have already voted in this section."})
		case ErrCandidateNotFound:
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "candidate not found"})
		case ErrVoterNotFound:
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "voter not found"})
		default:
			log.Er("failed to cast vote", err)
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"message": "failed to cast vote"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success", "ballot": ballot})
}
