// Package session issues and verifies signed bearer tokens. A Session is the
// explicit per-request identity handed to handlers; nothing is kept in
// process memory between requests.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Role is what a session is allowed to do.
type Role string

const (
	RoleVendor Role = "vendor"
	RoleAdmin  Role = "admin"
)

var (
	// ErrInvalidToken is returned for malformed, tampered or expired tokens.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrEmptySecret is returned by NewManager without a signing secret.
	ErrEmptySecret = errors.New("session secret is empty")
)

// Session identifies the caller of a request.
type Session struct {
	Role      Role
	Subject   string // vendor phone, or "admin"
	ExpiresAt time.Time
}

type claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and parses HS256 session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates a Manager. ttl must be positive.
func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive, got %s", ttl)
	}
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for subject acting as role.
func (m *Manager) Issue(role Role, subject string) (string, *Session, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	c := claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}

	return signed, &Session{Role: role, Subject: subject, ExpiresAt: expiresAt.Truncate(time.Second)}, nil
}

// Parse verifies token and returns its session.
func (m *Manager) Parse(token string) (*Session, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.Role != RoleVendor && c.Role != RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, c.Role)
	}
	if c.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing expiry", ErrInvalidToken)
	}

	return &Session{Role: c.Role, Subject: c.Subject, ExpiresAt: c.ExpiresAt.Time}, nil
}
