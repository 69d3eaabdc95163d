package handler

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/surplus-deals/internal/model"
	"github.com/fairyhunter13/surplus-deals/internal/service"
)

// DealServiceInterface defines the interface for deal business logic.
type DealServiceInterface interface {
	Create(ctx context.Context, vendorPhone string, req *model.CreateDealRequest) (*model.Deal, error)
	List(ctx context.Context, query string) ([]model.Deal, error)
	Get(ctx context.Context, id int64) (*model.Deal, error)
}

// DealHandler handles HTTP requests for browsing and posting deals.
type DealHandler struct {
	service   DealServiceInterface
	validator *validator.Validate
	locations []string
}

// NewDealHandler creates a new DealHandler with the given service, validator
// and configured locations.
func NewDealHandler(svc DealServiceInterface, v *validator.Validate, locations []string) *DealHandler {
	if locations == nil {
		locations = []string{}
	}
	return &DealHandler{service: svc, validator: v, locations: locations}
}

// ListLocations handles GET /api/locations.
func (h *DealHandler) ListLocations(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"locations": h.locations})
}

// ListDeals handles GET /api/deals requests. The optional location query
// narrows results by case-insensitive substring.
func (h *DealHandler) ListDeals(c *fiber.Ctx) error {
	deals, err := h.service.List(c.Context(), c.Query("location"))
	if err != nil {
		log.Error().
			Err(err).
			Str("request_id", c.GetRespHeader("X-Request-ID")).
			Msg("failed to list deals")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(deals)
}

// GetDeal handles GET /api/deals/:id requests.
func (h *DealHandler) GetDeal(c *fiber.Ctx) error {
	id, ok := dealID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: id is invalid"})
	}

	deal, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrDealNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "deal not found"})
		}
		log.Error().Err(err).Int64("deal_id", id).Msg("failed to get deal")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(deal)
}

// CreateDeal handles POST /api/deals requests from an authenticated vendor.
func (h *DealHandler) CreateDeal(c *fiber.Ctx) error {
	sess := SessionFrom(c)
	if sess == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var req model.CreateDealRequest

	// Parse JSON body
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	// Validate request
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	deal, err := h.service.Create(c.Context(), sess.Subject, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPriceRequired),
			errors.Is(err, service.ErrInvalidPrice),
			errors.Is(err, service.ErrPriceOutOfRange),
			errors.Is(err, service.ErrUnknownLocation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: " + err.Error()})
		case errors.Is(err, service.ErrDealExpired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "item expired"})
		case errors.Is(err, service.ErrInvalidRequest):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
		case errors.Is(err, service.ErrAccessDenied):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
		}
		log.Error().
			Err(err).
			Str("request_id", c.GetRespHeader("X-Request-ID")).
			Str("vendor", sess.Subject).
			Str("item", req.Item).
			Msg("failed to create deal")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().
		Str("request_id", c.GetRespHeader("X-Request-ID")).
		Int64("deal_id", deal.ID).
		Str("shop", deal.Shop).
		Int("quantity", deal.Quantity).
		Msg("deal posted")

	return c.Status(fiber.StatusCreated).JSON(deal)
}

func dealID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
