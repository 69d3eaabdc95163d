package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.err
}

type mockStorageChecker struct {
	err error
}

func (m *mockStorageChecker) Writable(ctx context.Context) error {
	return m.err
}

func TestHealthHandler_Check(t *testing.T) {
	testCases := []struct {
		name       string
		dbErr      error
		storageErr error
		status     int
		body       map[string]any
	}{
		{
			name:   "all_ok",
			status: fiber.StatusOK,
			body: map[string]any{
				"status": "healthy",
				"checks": map[string]any{"database": "ok", "storage": "ok"},
			},
		},
		{
			name:   "database_down",
			dbErr:  errors.New("connection refused"),
			status: fiber.StatusServiceUnavailable,
			body: map[string]any{
				"status": "unhealthy",
				"error":  "database connection failed",
				"checks": map[string]any{"database": "unreachable", "storage": "ok"},
			},
		},
		{
			name:       "storage_not_writable",
			storageErr: errors.New("read-only file system"),
			status:     fiber.StatusServiceUnavailable,
			body: map[string]any{
				"status": "unhealthy",
				"error":  "image storage not writable",
				"checks": map[string]any{"database": "ok", "storage": "not writable"},
			},
		},
		{
			name:       "both_down",
			dbErr:      errors.New("connection refused"),
			storageErr: errors.New("no space left on device"),
			status:     fiber.StatusServiceUnavailable,
			body: map[string]any{
				"status": "unhealthy",
				"error":  "database connection failed",
				"checks": map[string]any{"database": "unreachable", "storage": "not writable"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			h := NewHealthHandler(&mockPinger{err: tc.dbErr}, &mockStorageChecker{err: tc.storageErr})
			app.Get("/health", h.Check)

			resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
			require.NoError(t, err)

			defer func() {
				_ = resp.Body.Close()
			}()

			assert.Equal(t, tc.status, resp.StatusCode)
			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.body, body)
		})
	}
}
