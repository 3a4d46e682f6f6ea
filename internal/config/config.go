package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// FrontendBase, when set, is an external frontend the short-code
	// redirect routes point at instead of the locally served claim page.
	FrontendBase string

	// Database
	DatabaseURL string

	// Redis (optional; price cache falls back to in-process memory)
	RedisURL string

	// Links
	LinkTTL      time.Duration // env: LINK_TTL_SECONDS, default 24h
	ReapInterval time.Duration // env: REAP_INTERVAL_SECONDS, default 1h

	// Validation policy knobs
	ValidateSenderWallet bool // env: VALIDATE_SENDER_WALLET
	RequirePhoneMatch    bool // env: REQUIRE_PHONE_MATCH, default on, "0" disables
	CollapseClaimErrors  bool // env: COLLAPSE_CLAIM_ERRORS

	// NetworksFile optionally overrides the built-in network family table.
	NetworksFile string

	// Admin
	AdminAPIKey string

	// Prices
	PriceCacheTTL time.Duration // env: PRICE_CACHE_TTL_SECONDS, default 30s

	// CORS
	CORSOrigins string // Comma-separated allowed origins; empty means allow all
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:          getEnv("ENV", "development"),
		ServerAddr:   getEnv("SERVER_ADDR", ":3000"),
		BaseURL:      getEnv("BASE_URL", "http://localhost:3000"),
		FrontendBase: getEnv("FRONTEND_BASE", ""),
		DatabaseURL:  getEnv("DATABASE_URL", "postgres://localhost:5432/linkisend?sslmode=disable"),
		RedisURL:     getEnv("REDIS_URL", ""),

		LinkTTL:      getEnvSeconds("LINK_TTL_SECONDS", 86400),
		ReapInterval: getEnvSeconds("REAP_INTERVAL_SECONDS", 3600),

		ValidateSenderWallet: getEnv("VALIDATE_SENDER_WALLET", "") != "",
		RequirePhoneMatch:    getEnv("REQUIRE_PHONE_MATCH", "1") != "0",
		CollapseClaimErrors:  getEnv("COLLAPSE_CLAIM_ERRORS", "") != "",

		NetworksFile: getEnv("NETWORKS_FILE", "networks.yaml"),

		AdminAPIKey: getEnv("ADMIN_API_KEY", "dev-key-linkisend"),

		PriceCacheTTL: getEnvSeconds("PRICE_CACHE_TTL_SECONDS", 30),

		CORSOrigins: getEnv("CORS_ORIGINS", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSeconds(key string, fallback int64) time.Duration {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(fallback) * time.Second
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}
