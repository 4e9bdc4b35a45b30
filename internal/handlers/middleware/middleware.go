package middleware

import (
	"server/config"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/services"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the guards.
const (
	LocalAdminID = "adminId"
	LocalVoter   = "voter"
	LocalToken   = "sessionToken"
)

type Middleware struct {
	sessionService *services.SessionService
	voterRepo      repositories.VoterRepository
	config         config.Config
	log            logger.Logger
}

func New(
	sessionService *services.SessionService,
	voterRepo repositories.VoterRepository,
	config config.Config,
) Middleware {
	return Middleware{
		sessionService: sessionService,
		voterRepo:      voterRepo,
		config:         config,
		log:            logger.New("middleware"),
	}
}

// RequireAdmin rejects requests without a valid admin session token. The
// admin id lands in Locals for the handler.
func (m Middleware) RequireAdmin(c *fiber.Ctx) error {
	token := sessionToken(c)

	adminID, err := m.sessionService.GetAdminSession(c.Context(), token)
	if err != nil {
		if err != ErrSessionNotFound {
			m.log.Function("RequireAdmin").Er("failed to resolve admin session", err)
		}
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "admin login required"})
	}

	c.Locals(LocalAdminID, adminID)
	c.Locals(LocalToken, token)
	return c.Next()
}

// RequireVoter resolves the voter behind the session token and stores the
// full voter in Locals.
func (m Middleware) RequireVoter(c *fiber.Ctx) error {
	log := m.log.Function("RequireVoter")

	token := sessionToken(c)

	voterID, err := m.sessionService.GetVoterSession(c.Context(), token)
	if err != nil {
		if err != ErrSessionNotFound {
			log.Er("failed to resolve voter session", err)
		}
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "please login to vote"})
	}

	voter, err := m.voterRepo.GetByID(c.Context(), voterID)
	if err != nil {
		if err != ErrVoterNotFound {
			log.Er("failed to load voter", err, "voterId", voterID)
		}
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "voter not found"})
	}

	c.Locals(LocalVoter, *voter)
	c.Locals(LocalToken, token)
	return c.Next()
}

func sessionToken(c *fiber.Ctx) string {
	auth := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return c.Get("X-Session-Token")
}
