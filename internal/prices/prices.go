// Package prices relays USD token prices from CoinGecko with a short cache,
// so the frontend never talks to CoinGecko directly and scrapes stay within
// the public rate limits.
package prices

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrUnsupportedSymbol is returned for tokens without a CoinGecko mapping.
var ErrUnsupportedSymbol = errors.New("unsupported token symbol")

// coingeckoIDs maps token symbols to CoinGecko asset ids.
var coingeckoIDs = map[string]string{
	"ETH":   "ethereum",
	"BNB":   "binancecoin",
	"MATIC": "matic-network",
	"AVAX":  "avalanche-2",
	"SOL":   "solana",
	"USDT":  "tether",
	"USDC":  "usd-coin",
	"DAI":   "dai",
	"WBTC":  "wrapped-bitcoin",
	"LINK":  "chainlink",
	"BONK":  "bonk",
	"RAY":   "raydium",
}

const apiURL = "https://api.coingecko.com/api/v3/simple/price"

// Storage is the cache the relay reads through. Satisfied by
// gofiber/storage backends (Redis in production) and by the in-process
// fallback below.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
}

// Service fetches and caches USD prices.
type Service struct {
	cache  Storage
	ttl    time.Duration
	client *http.Client
}

// New creates a price service backed by the given cache.
func New(cache Storage, ttl time.Duration) *Service {
	if cache == nil {
		cache = NewMemoryStorage()
	}
	return &Service{
		cache: cache,
		ttl:   ttl,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Lookup returns the USD price for a token symbol, serving from cache when
// a fresh value is available. The bool result reports a cache hit.
func (s *Service) Lookup(ctx context.Context, symbol string) (float64, bool, error) {
	sym := strings.ToUpper(strings.TrimSpace(symbol))

	id, ok := coingeckoIDs[sym]
	if !ok {
		return 0, false, ErrUnsupportedSymbol
	}

	if raw, err := s.cache.Get("price:" + sym); err == nil && len(raw) > 0 {
		if usd, err := strconv.ParseFloat(string(raw), 64); err == nil {
			return usd, true, nil
		}
	}

	usd, err := s.fetch(ctx, id)
	if err != nil {
		return 0, false, err
	}

	// Cache write failures only cost us a future upstream call.
	_ = s.cache.Set("price:"+sym, strconv.AppendFloat(nil, usd, 'f', -1, 64), s.ttl)

	return usd, false, nil
}

func (s *Service) fetch(ctx context.Context, id string) (float64, error) {
	url := fmt.Sprintf("%s?ids=%s&vs_currencies=usd", apiURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("coingecko request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("coingecko returned HTTP %d", resp.StatusCode)
	}

	var body map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("coingecko response decode failed: %w", err)
	}

	usd, ok := body[id]["usd"]
	if !ok {
		return 0, fmt.Errorf("coingecko response missing usd price for %s", id)
	}
	return usd, nil
}

// Supported reports whether a token symbol has a CoinGecko mapping.
func Supported(symbol string) bool {
	_, ok := coingeckoIDs[strings.ToUpper(strings.TrimSpace(symbol))]
	return ok
}
