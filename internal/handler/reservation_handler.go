package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/surplus-deals/internal/model"
	"github.com/fairyhunter13/surplus-deals/internal/service"
)

// IdempotencyKeyHeader carries an optional client key that makes a
// reservation safe to retry.
const IdempotencyKeyHeader = "Idempotency-Key"

const maxIdempotencyKeyLen = 128

// ReservationServiceInterface defines the interface for reserving deals.
type ReservationServiceInterface interface {
	Reserve(ctx context.Context, id int64, idempotencyKey string) (*model.Reservation, error)
}

// ReservationHandler handles HTTP requests for reserving deals.
type ReservationHandler struct {
	service ReservationServiceInterface
}

// NewReservationHandler creates a new ReservationHandler with the given service.
func NewReservationHandler(svc ReservationServiceInterface) *ReservationHandler {
	return &ReservationHandler{service: svc}
}

// Reserve handles POST /api/deals/:id/reserve requests.
func (h *ReservationHandler) Reserve(c *fiber.Ctx) error {
	id, ok := dealID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: id is invalid"})
	}

	key := c.Get(IdempotencyKeyHeader)
	if len(key) > maxIdempotencyKeyLen {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: idempotency key too long"})
	}

	res, err := h.service.Reserve(c.Context(), id, key)
	if err != nil {
		if errors.Is(err, service.ErrDealNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "deal not found"})
		}
		if errors.Is(err, service.ErrSoldOut) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "deal sold out"})
		}
		if errors.Is(err, service.ErrAlreadyReserved) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "reservation already made"})
		}
		log.Error().
			Err(err).
			Str("request_id", c.GetRespHeader("X-Request-ID")).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int64("deal_id", id).
			Msg("failed to reserve deal")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().
		Str("request_id", c.GetRespHeader("X-Request-ID")).
		Int64("deal_id", id).
		Int64("lead_id", res.Lead.ID).
		Int("remaining", res.Deal.Quantity).
		Msg("deal reserved")

	return c.JSON(res)
}
