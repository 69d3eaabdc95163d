package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/surplus-deals/internal/model"
	"github.com/fairyhunter13/surplus-deals/internal/service"
)

// VendorServiceInterface defines the interface for vendor credentials.
type VendorServiceInterface interface {
	Register(ctx context.Context, req *model.RegisterVendorRequest) (*model.Vendor, error)
	Login(ctx context.Context, phone, pin string) (*model.LoginResponse, error)
}

// VendorHandler handles vendor login and registration.
type VendorHandler struct {
	service   VendorServiceInterface
	validator *validator.Validate
}

// NewVendorHandler creates a new VendorHandler with the given service and validator.
func NewVendorHandler(svc VendorServiceInterface, v *validator.Validate) *VendorHandler {
	return &VendorHandler{service: svc, validator: v}
}

// Login handles POST /api/vendors/login requests.
func (h *VendorHandler) Login(c *fiber.Ctx) error {
	var req model.VendorLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	resp, err := h.service.Login(c.Context(), req.Phone, req.PIN)
	if err != nil {
		if errors.Is(err, service.ErrAccessDenied) {
			log.Warn().Str("request_id", c.GetRespHeader("X-Request-ID")).Msg("vendor login denied")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "access denied"})
		}
		log.Error().Err(err).Str("request_id", c.GetRespHeader("X-Request-ID")).Msg("vendor login failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(resp)
}

// Register handles POST /api/admin/vendors requests.
func (h *VendorHandler) Register(c *fiber.Ctx) error {
	var req model.RegisterVendorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	vendor, err := h.service.Register(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrVendorExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "vendor already exists"})
		}
		if errors.Is(err, service.ErrInvalidRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
		}
		log.Error().Err(err).Str("request_id", c.GetRespHeader("X-Request-ID")).Msg("failed to register vendor")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().Str("shop", vendor.Shop).Msg("vendor registered")
	return c.Status(fiber.StatusCreated).JSON(vendor)
}
