package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/fairyhunter13/surplus-deals/internal/model"
	"github.com/fairyhunter13/surplus-deals/internal/session"
)

// AdminSubject is the session subject of the operator.
const AdminSubject = "admin"

// LeadReader defines the lead queries behind the admin dashboard.
type LeadReader interface {
	Summary(ctx context.Context) (model.LeadSummary, error)
	ByShop(ctx context.Context) ([]model.ShopLeads, error)
	Recent(ctx context.Context, limit int) ([]model.Lead, error)
}

// AdminService gates and serves the operator view.
type AdminService struct {
	passwordHash []byte
	leads        LeadReader
	tokens       TokenIssuer
	recentLimit  int
}

// NewAdminService creates a new AdminService. An empty passwordHash disables
// admin login.
func NewAdminService(passwordHash string, leads LeadReader, tokens TokenIssuer, recentLimit int) *AdminService {
	if recentLimit <= 0 {
		recentLimit = 50
	}
	return &AdminService{
		passwordHash: []byte(passwordHash),
		leads:        leads,
		tokens:       tokens,
		recentLimit:  recentLimit,
	}
}

// Login checks the operator password and issues an admin session.
// Any mismatch returns ErrAccessDenied.
func (s *AdminService) Login(ctx context.Context, password string) (*model.LoginResponse, error) {
	if len(s.passwordHash) == 0 {
		return nil, ErrAccessDenied
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return nil, ErrAccessDenied
	}

	token, sess, err := s.tokens.Issue(session.RoleAdmin, AdminSubject)
	if err != nil {
		return nil, fmt.Errorf("issue admin session: %w", err)
	}
	return &model.LoginResponse{Token: token, Role: string(sess.Role), ExpiresAt: sess.ExpiresAt}, nil
}

// Dashboard aggregates leads and revenue.
func (s *AdminService) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	summary, err := s.leads.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("lead summary: %w", err)
	}
	shops, err := s.leads.ByShop(ctx)
	if err != nil {
		return nil, fmt.Errorf("leads by shop: %w", err)
	}
	recent, err := s.leads.Recent(ctx, s.recentLimit)
	if err != nil {
		return nil, fmt.Errorf("recent leads: %w", err)
	}

	return &model.Dashboard{
		LeadCount:    summary.Count,
		TotalRevenue: summary.Revenue,
		Shops:        shops,
		RecentLeads:  recent,
	}, nil
}
