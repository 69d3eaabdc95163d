package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/surplus-deals/internal/model"
	"github.com/fairyhunter13/surplus-deals/internal/service"
	"github.com/fairyhunter13/surplus-deals/internal/session"
)

// mockAdminService is a mock implementation of AdminServiceInterface.
type mockAdminService struct {
	loginFn     func(ctx context.Context, password string) (*model.LoginResponse, error)
	dashboardFn func(ctx context.Context) (*model.Dashboard, error)
}

func (m *mockAdminService) Login(ctx context.Context, password string) (*model.LoginResponse, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, password)
	}
	return nil, service.ErrAccessDenied
}

func (m *mockAdminService) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	if m.dashboardFn != nil {
		return m.dashboardFn(ctx)
	}
	return &model.Dashboard{Shops: []model.ShopLeads{}, RecentLeads: []model.Lead{}}, nil
}

func setupAdminTestApp(mockSvc *mockAdminService) *fiber.App {
	app := fiber.New()
	h := NewAdminHandler(mockSvc)
	app.Post("/api/admin/login", h.Login)
	app.Get("/api/admin/dashboard", RequireRole(tokenParser(), session.RoleAdmin), h.Dashboard)
	return app
}

func TestAdminLogin_Success(t *testing.T) {
	mockSvc := &mockAdminService{
		loginFn: func(ctx context.Context, password string) (*model.LoginResponse, error) {
			if password == "jaipur-admin-2024" {
				return &model.LoginResponse{Token: "signed", Role: "admin"}, nil
			}
			return nil, service.ErrAccessDenied
		},
	}
	app := setupAdminTestApp(mockSvc)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/admin/login", `{"password":"jaipur-admin-2024"}`, ""))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminLogin_DeniedRevealsNothing(t *testing.T) {
	app := setupAdminTestApp(&mockAdminService{})

	for _, body := range []string{`{"password":"guess"}`, `{}`, `{"password":`} {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/admin/login", body, ""))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "body=%s", body)
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"error":"access denied"}`, string(raw), "body=%s", body)
	}
}

func TestAdminDashboard(t *testing.T) {
	mockSvc := &mockAdminService{
		dashboardFn: func(ctx context.Context) (*model.Dashboard, error) {
			return &model.Dashboard{
				LeadCount:    2,
				TotalRevenue: 2000,
				Shops:        []model.ShopLeads{{Shop: "My Bakery", Leads: 2, Revenue: 2000}},
				RecentLeads:  []model.Lead{{ID: 2}, {ID: 1}},
			}, nil
		},
	}
	app := setupAdminTestApp(mockSvc)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/api/admin/dashboard", "", "admin-token"))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, float64(2), result["lead_count"])
	assert.Equal(t, float64(2000), result["total_revenue"])
}

func TestAdminDashboard_RequiresAdmin(t *testing.T) {
	app := setupAdminTestApp(&mockAdminService{})

	resp, err := app.Test(jsonRequest(http.MethodGet, "/api/admin/dashboard", "", ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(jsonRequest(http.MethodGet, "/api/admin/dashboard", "", "vendor-token"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdminDashboard_InternalServerError(t *testing.T) {
	mockSvc := &mockAdminService{
		dashboardFn: func(ctx context.Context) (*model.Dashboard, error) {
			return nil, errors.New("database connection failed")
		},
	}
	app := setupAdminTestApp(mockSvc)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/api/admin/dashboard", "", "admin-token"))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
