package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"linkisend/internal/config"
	"linkisend/internal/links"
	"linkisend/internal/metrics"
	"linkisend/internal/models"
	"linkisend/internal/prices"
)

// LinkHandler exposes link creation, claiming and status lookups.
type LinkHandler struct {
	svc    *links.Service
	prices *prices.Service
	cfg    *config.Config
}

// NewLinkHandler creates a new link handler.
func NewLinkHandler(svc *links.Service, priceSvc *prices.Service, cfg *config.Config) *LinkHandler {
	return &LinkHandler{svc: svc, prices: priceSvc, cfg: cfg}
}

// Create handles POST /create-link.
func (h *LinkHandler) Create(c fiber.Ctx) error {
	var body struct {
		Amount         float64 `json:"amount"`
		Currency       string  `json:"currency"`
		SenderWallet   string  `json:"sender_wallet"`
		RecipientPhone string  `json:"recipient_phone"`
		Network        string  `json:"network"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	link, err := h.svc.Create(c.Context(), links.CreateInput{
		Amount:         body.Amount,
		Currency:       strings.TrimSpace(body.Currency),
		Network:        strings.TrimSpace(body.Network),
		SenderWallet:   strings.TrimSpace(body.SenderWallet),
		RecipientPhone: body.RecipientPhone,
	})
	if err != nil {
		switch {
		case errors.Is(err, links.ErrInvalidAmount),
			errors.Is(err, links.ErrInvalidPhone),
			errors.Is(err, links.ErrInvalidWallet):
			return jsonError(c, fiber.StatusBadRequest, err.Error())
		default:
			log.Printf("create link failed: %v", err)
			return jsonError(c, fiber.StatusServiceUnavailable, "storage backend unavailable")
		}
	}

	return jsonSuccess(c, models.CreateLinkResponse{
		ShortID:   link.ShortID,
		ExpiresIn: int64(h.svc.TTL() / time.Second),
		ClaimURL:  strings.TrimRight(h.cfg.BaseURL, "/") + "/s/" + link.ShortID,
	})
}

// Claim handles POST /claim.
func (h *LinkHandler) Claim(c fiber.Ctx) error {
	var body struct {
		ShortID string `json:"short_id"`
		Phone   string `json:"phone"`
		Wallet  string `json:"wallet"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	simTxHash, err := h.svc.Claim(c.Context(), links.ClaimInput{
		ShortID: strings.TrimSpace(body.ShortID),
		Phone:   body.Phone,
		Wallet:  strings.TrimSpace(body.Wallet),
	})
	if err != nil {
		metrics.RecordClaimOutcome(claimOutcome(err))
		return claimError(c, err)
	}

	metrics.RecordClaimOutcome("success")
	return jsonSuccess(c, models.ClaimResponse{
		Status:    "ok",
		ShortID:   strings.TrimSpace(body.ShortID),
		Claimed:   true,
		SimTxHash: simTxHash,
		Message:   "Claim recorded. The transfer will be processed.",
	})
}

// Status handles GET /claim-status/:short_id. Only non-sensitive fields
// leave this endpoint; the full phone number and sender wallet never do.
func (h *LinkHandler) Status(c fiber.Ctx) error {
	shortID := c.Params("short_id")

	link, err := h.svc.Info(c.Context(), shortID)
	if err != nil {
		switch {
		case errors.Is(err, links.ErrNotFound):
			return jsonError(c, fiber.StatusNotFound, "link not found")
		case errors.Is(err, links.ErrExpired):
			return jsonError(c, fiber.StatusGone, "link expired")
		default:
			log.Printf("claim status failed: %v", err)
			return jsonError(c, fiber.StatusServiceUnavailable, "storage backend unavailable")
		}
	}

	resp := models.LinkStatusResponse{
		ShortID:       link.ShortID,
		Amount:        link.Amount,
		Currency:      link.Currency,
		Network:       link.Network,
		RecipientHint: link.PhoneHint(),
		CreatedAt:     link.CreatedAt,
		ExpiresAt:     link.ExpiresAt,
		Expired:       links.IsExpired(link, time.Now()),
		Claimed:       link.Claimed,
	}

	// Price estimate is decoration; a cold cache or upstream outage must
	// not break the claim page.
	if h.prices != nil && prices.Supported(link.Currency) {
		ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
		defer cancel()
		if usd, _, err := h.prices.Lookup(ctx, link.Currency); err == nil {
			estimated := usd * link.Amount
			resp.EstimatedUSD = &estimated
		}
	}

	return jsonSuccess(c, resp)
}

// claimError maps a claim failure onto its HTTP response.
func claimError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, links.ErrNotFound):
		return jsonError(c, fiber.StatusNotFound, "link not found")
	case errors.Is(err, links.ErrExpired):
		return jsonError(c, fiber.StatusGone, "link expired")
	case errors.Is(err, links.ErrAlreadyClaimed):
		return jsonError(c, fiber.StatusConflict, "link already claimed")
	case errors.Is(err, links.ErrInvalidPhone),
		errors.Is(err, links.ErrInvalidWallet):
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, links.ErrPhoneMismatch):
		return jsonError(c, fiber.StatusForbidden, err.Error())
	default:
		log.Printf("claim failed: %v", err)
		return jsonError(c, fiber.StatusServiceUnavailable, "storage backend unavailable")
	}
}

// claimOutcome names a claim result for the metrics counter.
func claimOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, links.ErrNotFound):
		return "not_found"
	case errors.Is(err, links.ErrExpired):
		return "expired"
	case errors.Is(err, links.ErrAlreadyClaimed):
		return "already_claimed"
	case errors.Is(err, links.ErrInvalidPhone):
		return "invalid_phone"
	case errors.Is(err, links.ErrPhoneMismatch):
		return "phone_mismatch"
	case errors.Is(err, links.ErrInvalidWallet):
		return "invalid_wallet"
	default:
		return "backend_error"
	}
}
