package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/fairyhunter13/surplus-deals/internal/model"
	"github.com/fairyhunter13/surplus-deals/internal/session"
)

// VendorRepositoryInterface defines the interface for vendor data access.
type VendorRepositoryInterface interface {
	Insert(ctx context.Context, vendor *model.Vendor) error
	GetByPhone(ctx context.Context, phone string) (*model.Vendor, error)
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(role session.Role, subject string) (string, *session.Session, error)
}

// VendorService manages vendor credentials.
type VendorService struct {
	repo       VendorRepositoryInterface
	tokens     TokenIssuer
	bcryptCost int
}

// NewVendorService creates a new VendorService.
func NewVendorService(repo VendorRepositoryInterface, tokens TokenIssuer) *VendorService {
	return &VendorService{repo: repo, tokens: tokens, bcryptCost: bcrypt.DefaultCost}
}

// Register creates credentials for a shop. The PIN is stored only as a bcrypt hash.
// Returns ErrVendorExists if the phone number is already registered.
func (s *VendorService) Register(ctx context.Context, req *model.RegisterVendorRequest) (*model.Vendor, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash pin: %w", err)
	}

	vendor := &model.Vendor{
		Phone:   req.Phone,
		PINHash: string(hash),
		Shop:    strings.TrimSpace(req.Shop),
	}
	if err := s.repo.Insert(ctx, vendor); err != nil {
		if errors.Is(err, ErrVendorExists) {
			return nil, ErrVendorExists
		}
		return nil, fmt.Errorf("insert vendor: %w", err)
	}
	return vendor, nil
}

// Login checks a phone and PIN pair and issues a vendor session.
// Unknown phones and wrong PINs both return ErrAccessDenied.
func (s *VendorService) Login(ctx context.Context, phone, pin string) (*model.LoginResponse, error) {
	vendor, err := s.repo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	if vendor == nil {
		return nil, ErrAccessDenied
	}
	if err := bcrypt.CompareHashAndPassword([]byte(vendor.PINHash), []byte(pin)); err != nil {
		return nil, ErrAccessDenied
	}

	token, sess, err := s.tokens.Issue(session.RoleVendor, vendor.Phone)
	if err != nil {
		return nil, fmt.Errorf("issue vendor session: %w", err)
	}
	return &model.LoginResponse{Token: token, Role: string(sess.Role), ExpiresAt: sess.ExpiresAt}, nil
}
