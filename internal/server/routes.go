package server

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"linkisend/internal/db"
	"linkisend/internal/handlers"
	"linkisend/internal/links"
	"linkisend/internal/middleware"
	"linkisend/internal/prices"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(database *db.DB, svc *links.Service, priceSvc *prices.Service) {
	// Initialize middleware
	apiKey := middleware.NewAPIKeyMiddleware(s.Cfg.AdminAPIKey)

	// Initialize handlers
	linkHandler := handlers.NewLinkHandler(svc, priceSvc, s.Cfg)
	redirectHandler := handlers.NewRedirectHandler(svc, s.Cfg)
	healthHandler := handlers.NewHealthHandler(database, svc)
	priceHandler := handlers.NewPriceHandler(priceSvc)
	adminHandler := handlers.NewAdminHandler(svc)

	// Core link lifecycle
	s.App.Post("/create-link", linkHandler.Create)
	s.App.Post("/claim", linkHandler.Claim)
	s.App.Get("/claim-status/:short_id", linkHandler.Status)

	// Side lookups
	s.App.Get("/health", healthHandler.Check)
	s.App.Get("/price", priceHandler.Get)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Admin reads (API key gated)
	s.App.Get("/api/links", apiKey.RequireKey, adminHandler.History)
	s.App.Get("/api/transactions", apiKey.RequireKey, adminHandler.Transactions)

	// Landing page
	s.App.Get("/", func(c fiber.Ctx) error {
		return c.Render("index", fiber.Map{
			"Title": "LinkiSend",
		})
	})

	// Short-code routes - must be last (catch-all)
	s.App.Get("/s/:short_id", redirectHandler.Short)
	s.App.Get("/:short_id", redirectHandler.Root)
}
