package handlers

import (
	"server/internal/app"
	adminController "server/internal/controllers/admin"
	"server/internal/handlers/middleware"
	"server/internal/logger"
	. "server/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Handler
	controller adminController.AdminController
}

func NewAdminHandler(app app.App, router fiber.Router) *AdminHandler {
	log := logger.New("handlers").File("admin_handler")
	return &AdminHandler{
		controller: *app.AdminController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AdminHandler) Register() {
	admin := h.router.Group("/admin")
	admin.Post("/login", h.login)

	admin.Post("/logout", h.middleware.RequireAdmin, h.logout)
	admin.Post("/password", h.middleware.RequireAdmin, h.changePassword)
	admin.Post("/reset", h.middleware.RequireAdmin, h.resetData)
}

func (h *AdminHandler) login(c *fiber.Ctx) error {
	log := h.log.Function("login")

	var request AdminLoginRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse admin login request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse admin login request"})
	}

	token, err := h.controller.Login(c.Context(), request.Username, request.Password)
	if err != nil {
		if err == ErrInvalidCredentials {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"message": "Invalid credentials or not authorized as admin"})
		}
		log.Er("failed to login admin", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to login"})
	}

	return c.JSON(fiber.Map{"message": "success", "token": token})
}

func (h *AdminHandler) logout(c *fiber.Ctx) error {
	log := h.log.Function("logout")

	token, _ := c.Locals(middleware.LocalToken).(string)
	if err := h.controller.Logout(c.Context(), token); err != nil {
		log.Er("failed to logout admin", err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}

func (h *AdminHandler) changePassword(c *fiber.Ctx) error {
	log := h.log.Function("changePassword")

	adminID, _ := c.Locals(middleware.LocalAdminID).(string)

	var request ChangePasswordRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse change password request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse change password request"})
	}

	if err := h.controller.ChangePassword(c.Context(), adminID, &request); err != nil {
		if err == ErrInvalidCredentials {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"message": "Current password is incorrect"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "success"})
}

func (h *AdminHandler) resetData(c *fiber.Ctx) error {
	log := h.log.Function("resetData")

	if err := h.controller.ResetData(c.Context()); err != nil {
		log.Er("failed to reset election data", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to reset election data"})
	}

	return c.JSON(fiber.Map{"message": "success"})
}
