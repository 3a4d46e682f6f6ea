package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"linkisend/internal/config"
	"linkisend/internal/links"
	"linkisend/internal/shortid"
)

// reserved lists path segments that can never be treated as short codes on
// the root catch-all route.
var reserved = map[string]bool{
	"":              true,
	"health":        true,
	"create-link":   true,
	"claim":         true,
	"claim-status":  true,
	"price":         true,
	"s":             true,
	"api":           true,
	"static":        true,
	"metrics":       true,
	"favicon.ico":   true,
	"manifest.json": true,
}

// RedirectHandler routes short-code URLs to the claim page.
type RedirectHandler struct {
	svc *links.Service
	cfg *config.Config
}

// NewRedirectHandler creates a new redirect handler.
func NewRedirectHandler(svc *links.Service, cfg *config.Config) *RedirectHandler {
	return &RedirectHandler{svc: svc, cfg: cfg}
}

// Short handles GET /s/:short_id.
func (h *RedirectHandler) Short(c fiber.Ctx) error {
	return h.toClaimPage(c, c.Params("short_id"))
}

// Root handles GET /:short_id, skipping reserved paths.
func (h *RedirectHandler) Root(c fiber.Ctx) error {
	shortID := c.Params("short_id")
	if reserved[strings.ToLower(shortID)] {
		return fiber.NewError(fiber.StatusNotFound, "not found")
	}
	return h.toClaimPage(c, shortID)
}

func (h *RedirectHandler) toClaimPage(c fiber.Ctx, shortID string) error {
	// Paths that cannot be a generated code skip the store lookup.
	if !shortid.Valid(shortID) {
		return fiber.NewError(fiber.StatusNotFound, "This link is invalid or has expired.")
	}

	link, err := h.svc.Info(c.Context(), shortID)
	if err != nil {
		if errors.Is(err, links.ErrNotFound) || errors.Is(err, links.ErrExpired) {
			return fiber.NewError(fiber.StatusNotFound, "This link is invalid or has expired.")
		}
		return err
	}

	if h.cfg.FrontendBase != "" {
		target := strings.TrimRight(h.cfg.FrontendBase, "/") + "/claim?sid=" + link.ShortID
		return c.Redirect().Status(fiber.StatusTemporaryRedirect).To(target)
	}

	return c.Render("claim", fiber.Map{
		"Title":    "Claim your transfer",
		"ShortID":  link.ShortID,
		"Amount":   link.Amount,
		"Currency": link.Currency,
		"Network":  link.Network,
		"Hint":     link.PhoneHint(),
		"Claimed":  link.Claimed,
	})
}
