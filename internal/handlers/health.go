package handlers

import (
	"github.com/gofiber/fiber/v3"

	"linkisend/internal/db"
	"linkisend/internal/links"
)

// HealthHandler reports service liveness and the retained link count.
type HealthHandler struct {
	db  *db.DB
	svc *links.Service
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(database *db.DB, svc *links.Service) *HealthHandler {
	return &HealthHandler{db: database, svc: svc}
}

// Check handles GET /health.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	if err := h.db.Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"ok":    false,
			"error": "database unreachable",
		})
	}

	count, err := h.svc.Count(c.Context())
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"ok":    false,
			"error": "database unreachable",
		})
	}

	return c.JSON(fiber.Map{
		"ok":    true,
		"count": count,
	})
}
