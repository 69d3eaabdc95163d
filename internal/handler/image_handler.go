package handler

import (
	"context"
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/surplus-deals/internal/imaging"
)

// MaxImageBytes is the largest accepted upload.
const MaxImageBytes = 5 << 20

// ImageStore persists normalized images and returns their public URL.
type ImageStore interface {
	Save(ctx context.Context, data []byte) (string, error)
}

// ImageHandler handles deal photo uploads.
type ImageHandler struct {
	store ImageStore
}

// NewImageHandler creates a new ImageHandler with the given store.
func NewImageHandler(store ImageStore) *ImageHandler {
	return &ImageHandler{store: store}
}

// Upload handles POST /api/images requests. The multipart field "image" is
// cropped, resized and re-encoded before it is stored.
func (h *ImageHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: image is required"})
	}
	if fh.Size > MaxImageBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": "image too large"})
	}

	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image error"})
	}
	defer func() { _ = f.Close() }()

	data, err := imaging.Normalize(io.LimitReader(f, MaxImageBytes))
	if err != nil {
		if !errors.Is(err, imaging.ErrInvalidImage) {
			log.Warn().Err(err).Str("filename", fh.Filename).Msg("image normalization failed")
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image error"})
	}

	url, err := h.store.Save(c.Context(), data)
	if err != nil {
		log.Error().
			Err(err).
			Str("request_id", c.GetRespHeader("X-Request-ID")).
			Msg("failed to store image")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().Str("url", url).Int("bytes", len(data)).Msg("image stored")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}
