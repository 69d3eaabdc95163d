package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_Validation(t *testing.T) {
	_, err := NewManager("", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)

	_, err = NewManager("secret", 0)
	assert.Error(t, err)
}

func TestIssueAndParse_RoundTrip(t *testing.T) {
	m, err := NewManager("test-secret", time.Hour)
	require.NoError(t, err)

	token, issued, err := m.Issue(RoleVendor, "919876543210")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, RoleVendor, issued.Role)

	parsed, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, RoleVendor, parsed.Role)
	assert.Equal(t, "919876543210", parsed.Subject)
	assert.Equal(t, issued.ExpiresAt.Unix(), parsed.ExpiresAt.Unix())
}

func TestParse_WrongSecret(t *testing.T) {
	issuer, err := NewManager("secret-a", time.Hour)
	require.NoError(t, err)
	verifier, err := NewManager("secret-b", time.Hour)
	require.NoError(t, err)

	token, _, err := issuer.Issue(RoleAdmin, "admin")
	require.NoError(t, err)

	s, err := verifier.Parse(token)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	m, err := NewManager("test-secret", time.Minute)
	require.NoError(t, err)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := m.Issue(RoleAdmin, "admin")
	require.NoError(t, err)

	s, err := m.Parse(token)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	m, err := NewManager("test-secret", time.Hour)
	require.NoError(t, err)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token=%q", token)
	}
}

func TestParse_RejectsNoneAlgorithm(t *testing.T) {
	m, err := NewManager("test-secret", time.Hour)
	require.NoError(t, err)

	c := claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, c).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_UnknownRole(t *testing.T) {
	m, err := NewManager("test-secret", time.Hour)
	require.NoError(t, err)

	token, _, err := m.Issue(Role("superuser"), "x")
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
