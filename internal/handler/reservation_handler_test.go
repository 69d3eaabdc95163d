package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/surplus-deals/internal/model"
	"github.com/fairyhunter13/surplus-deals/internal/service"
)

// mockReservationService is a mock implementation of ReservationServiceInterface.
type mockReservationService struct {
	reserveFn func(ctx context.Context, id int64, idempotencyKey string) (*model.Reservation, error)
}

func (m *mockReservationService) Reserve(ctx context.Context, id int64, idempotencyKey string) (*model.Reservation, error) {
	if m.reserveFn != nil {
		return m.reserveFn(ctx, id, idempotencyKey)
	}
	return &model.Reservation{}, nil
}

func setupReservationTestApp(mockSvc *mockReservationService) *fiber.App {
	app := fiber.New()
	h := NewReservationHandler(mockSvc)
	app.Post("/api/deals/:id/reserve", h.Reserve)
	return app
}

func TestReserve_Success(t *testing.T) {
	var gotID int64
	var gotKey string
	mockSvc := &mockReservationService{
		reserveFn: func(ctx context.Context, id int64, idempotencyKey string) (*model.Reservation, error) {
			gotID = id
			gotKey = idempotencyKey
			return &model.Reservation{
				Deal:        model.Deal{ID: id, Quantity: 0},
				Lead:        model.Lead{ID: 1, DealID: id, Revenue: 1000},
				WhatsAppURL: "https://wa.me/919876543210?text=Hi",
				MapsURL:     "https://www.google.com/maps/search/?api=1&query=My+Bakery",
			}, nil
		},
	}
	app := setupReservationTestApp(mockSvc)

	req := httptest.NewRequest(http.MethodPost, "/api/deals/42/reserve", nil)
	req.Header.Set(IdempotencyKeyHeader, "click-1")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(42), gotID)
	assert.Equal(t, "click-1", gotKey)

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "https://wa.me/919876543210?text=Hi", result["whatsapp_url"])
	assert.Contains(t, result["maps_url"], "google.com/maps")
}

func TestReserve_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not_found", service.ErrDealNotFound, fiber.StatusNotFound, "deal not found"},
		{"sold_out", service.ErrSoldOut, fiber.StatusConflict, "deal sold out"},
		{"duplicate", service.ErrAlreadyReserved, fiber.StatusConflict, "reservation already made"},
		{"internal", errors.New("commit failed"), fiber.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockSvc := &mockReservationService{
				reserveFn: func(ctx context.Context, id int64, idempotencyKey string) (*model.Reservation, error) {
					return nil, tc.err
				},
			}
			app := setupReservationTestApp(mockSvc)

			resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/deals/42/reserve", nil))
			require.NoError(t, err)

			assert.Equal(t, tc.status, resp.StatusCode)

			var result map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
			assert.Equal(t, tc.message, result["error"])
		})
	}
}

func TestReserve_InvalidID(t *testing.T) {
	called := false
	mockSvc := &mockReservationService{
		reserveFn: func(ctx context.Context, id int64, idempotencyKey string) (*model.Reservation, error) {
			called = true
			return nil, nil
		},
	}
	app := setupReservationTestApp(mockSvc)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/deals/not-a-number/reserve", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.False(t, called)
}

func TestReserve_IdempotencyKeyTooLong(t *testing.T) {
	app := setupReservationTestApp(&mockReservationService{})

	req := httptest.NewRequest(http.MethodPost, "/api/deals/42/reserve", nil)
	req.Header.Set(IdempotencyKeyHeader, strings.Repeat("k", maxIdempotencyKeyLen+1))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
