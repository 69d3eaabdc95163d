package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/surplus-deals/internal/model"
	"github.com/fairyhunter13/surplus-deals/internal/service"
)

// AdminServiceInterface defines the interface for the operator view.
type AdminServiceInterface interface {
	Login(ctx context.Context, password string) (*model.LoginResponse, error)
	Dashboard(ctx context.Context) (*model.Dashboard, error)
}

// AdminHandler handles operator login and the dashboard.
type AdminHandler struct {
	service AdminServiceInterface
}

// NewAdminHandler creates a new AdminHandler with the given service.
func NewAdminHandler(svc AdminServiceInterface) *AdminHandler {
	return &AdminHandler{service: svc}
}

// Login handles POST /api/admin/login requests. Every failure, including a
// malformed body, answers "access denied" so nothing about the admin state leaks.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req model.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "access denied"})
	}

	resp, err := h.service.Login(c.Context(), req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAccessDenied) {
			log.Warn().Str("request_id", c.GetRespHeader("X-Request-ID")).Msg("admin login denied")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "access denied"})
		}
		log.Error().Err(err).Str("request_id", c.GetRespHeader("X-Request-ID")).Msg("admin login failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(resp)
}

// Dashboard handles GET /api/admin/dashboard requests.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	dash, err := h.service.Dashboard(c.Context())
	if err != nil {
		log.Error().Err(err).Str("request_id", c.GetRespHeader("X-Request-ID")).Msg("failed to load dashboard")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(dash)
}
