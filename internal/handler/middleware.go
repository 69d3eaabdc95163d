package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fairyhunter13/surplus-deals/internal/session"
)

const sessionLocalsKey = "session"

// SessionParser verifies bearer tokens.
type SessionParser interface {
	Parse(token string) (*session.Session, error)
}

// RequireRole rejects requests without a valid bearer token for role and
// stores the parsed session for the handler.
func RequireRole(parser SessionParser, role session.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}

		sess, err := parser.Parse(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}
		if sess.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
		}

		c.Locals(sessionLocalsKey, sess)
		return c.Next()
	}
}

// SessionFrom returns the session stored by RequireRole, or nil.
func SessionFrom(c *fiber.Ctx) *session.Session {
	sess, _ := c.Locals(sessionLocalsKey).(*session.Session)
	return sess
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
