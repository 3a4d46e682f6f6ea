package handlers

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"linkisend/internal/links"
)

// AdminHandler serves the API-key gated administrative read endpoints.
type AdminHandler struct {
	svc *links.Service
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(svc *links.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// History handles GET /api/links: per-link summaries joined with their
// claim, newest first.
func (h *AdminHandler) History(c fiber.Ctx) error {
	entries, err := h.svc.History(c.Context())
	if err != nil {
		log.Printf("history listing failed: %v", err)
		return jsonError(c, fiber.StatusServiceUnavailable, "storage backend unavailable")
	}
	return jsonSuccess(c, entries)
}

// Transactions handles GET /api/transactions: the raw append-only audit
// log, newest first.
func (h *AdminHandler) Transactions(c fiber.Ctx) error {
	entries, err := h.svc.Transactions(c.Context())
	if err != nil {
		log.Printf("transaction listing failed: %v", err)
		return jsonError(c, fiber.StatusServiceUnavailable, "storage backend unavailable")
	}
	return jsonSuccess(c, entries)
}
