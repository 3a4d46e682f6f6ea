package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"

	"linkisend/internal/config"
	"linkisend/internal/links"
	"linkisend/internal/testutil"
)

const testWallet = "0x1234567890abcdef1234567890abcdef12345678"

// newTestApp wires the public link routes onto a fiber app backed by an
// in-memory store, mirroring the production route registration.
func newTestApp(t *testing.T) (*fiber.App, *links.Service) {
	t.Helper()

	store := testutil.NewFakeStore()
	svc := links.NewService(store, links.Policy{
		TTL:               24 * time.Hour,
		RequirePhoneMatch: true,
	}, nil)

	cfg := &config.Config{BaseURL: "http://localhost:3000"}
	h := NewLinkHandler(svc, nil, cfg)

	app := fiber.New()
	app.Post("/create-link", h.Create)
	app.Post("/claim", h.Claim)
	app.Get("/claim-status/:short_id", h.Status)
	return app, svc
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) (*http.Response, map[string]any) {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req, _ := http.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s failed: %v", path, err)
	}
	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode response %q: %v", raw, err)
	}
	return out
}

func createLink(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, body := postJSON(t, app, "/create-link", map[string]any{
		"amount":          10,
		"currency":        "USDT",
		"network":         "Polygon",
		"sender_wallet":   testWallet,
		"recipient_phone": "+33612345678",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create-link status = %d, body %v", resp.StatusCode, body)
	}
	data := body["data"].(map[string]any)
	shortID, _ := data["short_id"].(string)
	if len(shortID) != 6 {
		t.Fatalf("short_id = %q, want 6 characters", shortID)
	}
	return shortID
}

func TestCreateLinkEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := postJSON(t, app, "/create-link", map[string]any{
		"amount":          25.5,
		"currency":        "ETH",
		"network":         "Ethereum",
		"recipient_phone": "+33612345678",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %v", resp.StatusCode, body)
	}

	data := body["data"].(map[string]any)
	if data["expires_in"].(float64) != 86400 {
		t.Errorf("expires_in = %v, want 86400", data["expires_in"])
	}
	shortID := data["short_id"].(string)
	wantURL := "http://localhost:3000/s/" + shortID
	if data["claim_url"] != wantURL {
		t.Errorf("claim_url = %v, want %s", data["claim_url"], wantURL)
	}
}

func TestCreateLinkEndpoint_BadInput(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{
			name:    "zero amount",
			payload: map[string]any{"amount": 0, "currency": "USDT", "network": "Polygon", "recipient_phone": "+33612345678"},
		},
		{
			name:    "short phone",
			payload: map[string]any{"amount": 10, "currency": "USDT", "network": "Polygon", "recipient_phone": "123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := postJSON(t, app, "/create-link", tt.payload)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			if body["status"] != "error" {
				t.Errorf("envelope status = %v, want error", body["status"])
			}
		})
	}

	// Malformed JSON body.
	req, _ := http.NewRequest("POST", "/create-link", bytes.NewReader([]byte("{not json")))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestClaimEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	shortID := createLink(t, app)

	resp, body := postJSON(t, app, "/claim", map[string]any{
		"short_id": shortID,
		"phone":    "+33612345678",
		"wallet":   testWallet,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("claim status = %d, body %v", resp.StatusCode, body)
	}
	data := body["data"].(map[string]any)
	if data["claimed"] != true {
		t.Error("claimed = false in success response")
	}
	if hash, _ := data["sim_tx_hash"].(string); len(hash) != 66 {
		t.Errorf("sim_tx_hash = %q, want 0x-prefixed 64 hex chars", hash)
	}

	// Replaying the claim conflicts.
	resp, _ = postJSON(t, app, "/claim", map[string]any{
		"short_id": shortID,
		"phone":    "+33612345678",
		"wallet":   testWallet,
	})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("second claim status = %d, want 409", resp.StatusCode)
	}
}

func TestClaimEndpoint_ErrorStatuses(t *testing.T) {
	app, _ := newTestApp(t)
	shortID := createLink(t, app)

	tests := []struct {
		name       string
		payload    map[string]any
		wantStatus int
	}{
		{
			name:       "unknown link",
			payload:    map[string]any{"short_id": "zzzzzz", "phone": "+33612345678", "wallet": testWallet},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "wrong phone",
			payload:    map[string]any{"short_id": shortID, "phone": "+33699999999", "wallet": testWallet},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "malformed phone",
			payload:    map[string]any{"short_id": shortID, "phone": "12", "wallet": testWallet},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad wallet",
			payload:    map[string]any{"short_id": shortID, "phone": "+33612345678", "wallet": "nope"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := postJSON(t, app, "/claim", tt.payload)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %v)", resp.StatusCode, tt.wantStatus, body)
			}
		})
	}
}

func TestClaimStatusEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	shortID := createLink(t, app)

	req, _ := http.NewRequest("GET", "/claim-status/"+shortID, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	data := decodeBody(t, resp)["data"].(map[string]any)

	if data["amount"].(float64) != 10 {
		t.Errorf("amount = %v, want 10", data["amount"])
	}
	if data["recipient_hint"] != "5678" {
		t.Errorf("recipient_hint = %v, want last four digits", data["recipient_hint"])
	}
	if data["claimed"] != false || data["expired"] != false {
		t.Errorf("fresh link flags = claimed:%v expired:%v", data["claimed"], data["expired"])
	}
	// The status page must never leak the full phone or the sender wallet.
	for _, k := range []string{"recipient_phone", "sender_wallet"} {
		if _, present := data[k]; present {
			t.Errorf("response leaks %s", k)
		}
	}

	req, _ = http.NewRequest("GET", "/claim-status/zzzzzz", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown link status = %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()
}
