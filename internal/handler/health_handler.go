package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Pinger reports whether the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StorageChecker reports whether uploaded images can still be written.
type StorageChecker interface {
	Writable(ctx context.Context) error
}

// HealthHandler reports readiness of the database and the image store.
type HealthHandler struct {
	db     Pinger
	images StorageChecker
}

// NewHealthHandler creates a HealthHandler over the database pool and image store.
func NewHealthHandler(db Pinger, images StorageChecker) *HealthHandler {
	return &HealthHandler{db: db, images: images}
}

// Check runs every dependency check and lists each result under "checks".
// Returns 200 {"status":"healthy"} when all pass, otherwise 503
// {"status":"unhealthy","error":"..."} naming the first failure.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	checks := fiber.Map{"database": "ok", "storage": "ok"}
	var failure string

	if err := h.db.Ping(c.Context()); err != nil {
		log.Error().Err(err).Msg("health check failed: database unreachable")
		checks["database"] = "unreachable"
		failure = "database connection failed"
	}
	if err := h.images.Writable(c.Context()); err != nil {
		log.Error().Err(err).Msg("health check failed: image storage not writable")
		checks["storage"] = "not writable"
		if failure == "" {
			failure = "image storage not writable"
		}
	}

	if failure != "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"error":  failure,
			"checks": checks,
		})
	}
	return c.JSON(fiber.Map{
		"status": "healthy",
		"checks": checks,
	})
}
