package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"

	"linkisend/internal/models"
	"linkisend/internal/prices"
)

// PriceHandler relays cached USD token prices.
type PriceHandler struct {
	svc *prices.Service
}

// NewPriceHandler creates a new price handler.
func NewPriceHandler(svc *prices.Service) *PriceHandler {
	return &PriceHandler{svc: svc}
}

// Get handles GET /price?symbol=ETH.
func (h *PriceHandler) Get(c fiber.Ctx) error {
	symbol := c.Query("symbol")
	if symbol == "" {
		return jsonError(c, fiber.StatusBadRequest, "symbol query parameter is required")
	}

	usd, cached, err := h.svc.Lookup(c.Context(), symbol)
	if err != nil {
		if errors.Is(err, prices.ErrUnsupportedSymbol) {
			return jsonError(c, fiber.StatusBadRequest, "unsupported token symbol")
		}
		log.Printf("price lookup failed for %s: %v", symbol, err)
		return jsonError(c, fiber.StatusBadGateway, "price source unavailable")
	}

	return jsonSuccess(c, models.PriceResponse{
		Symbol: symbol,
		USD:    usd,
		Cached: cached,
	})
}
