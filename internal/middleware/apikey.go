package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v3"
)

// APIKeyMiddleware gates administrative read endpoints behind a shared key
// supplied in the X-API-Key header.
type APIKeyMiddleware struct {
	key string
}

// NewAPIKeyMiddleware creates a new API key middleware instance.
func NewAPIKeyMiddleware(key string) *APIKeyMiddleware {
	return &APIKeyMiddleware{key: key}
}

// RequireKey rejects requests whose X-API-Key header does not match the
// configured key. Comparison is constant-time.
func (m *APIKeyMiddleware) RequireKey(c fiber.Ctx) error {
	if m.key == "" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status": "error",
			"error":  "admin access is not configured",
		})
	}

	supplied := c.Get("X-API-Key")
	if subtle.ConstantTimeCompare([]byte(supplied), []byte(m.key)) != 1 {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status": "error",
			"error":  "unauthorized",
		})
	}

	return c.Next()
}
