package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"

	"linkisend/internal/config"
	"linkisend/internal/links"
	"linkisend/internal/testutil"
)

// newRedirectApp configures an external claim frontend so the handler
// redirects instead of rendering the embedded view.
func newRedirectApp(t *testing.T) (*fiber.App, string) {
	t.Helper()

	store := testutil.NewFakeStore()
	svc := links.NewService(store, links.Policy{
		TTL:               24 * time.Hour,
		RequirePhoneMatch: true,
	}, nil)

	link, err := svc.Create(context.Background(), links.CreateInput{
		Amount:         10,
		Currency:       "USDT",
		Network:        "Polygon",
		RecipientPhone: "+33612345678",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	cfg := &config.Config{FrontendBase: "https://app.example.com"}
	h := NewRedirectHandler(svc, cfg)

	app := fiber.New()
	app.Get("/s/:short_id", h.Short)
	app.Get("/:short_id", h.Root)
	return app, link.ShortID
}

func TestRedirect_KnownCode(t *testing.T) {
	app, shortID := newRedirectApp(t)

	for _, path := range []string{"/s/" + shortID, "/" + shortID} {
		req, _ := http.NewRequest("GET", path, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request %s failed: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusTemporaryRedirect {
			t.Errorf("%s status = %d, want 307", path, resp.StatusCode)
		}
		want := "https://app.example.com/claim?sid=" + shortID
		if loc := resp.Header.Get("Location"); loc != want {
			t.Errorf("%s Location = %q, want %q", path, loc, want)
		}
	}
}

func TestRedirect_NotFound(t *testing.T) {
	app, _ := newRedirectApp(t)

	tests := []struct {
		name string
		path string
	}{
		{"reserved path", "/health"},
		{"reserved path mixed case", "/Claim"},
		{"malformed code", "/abc"},
		{"code with excluded character", "/ab0cde"},
		{"well-formed unknown code", "/zzzzzz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", tt.path, nil)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusNotFound {
				t.Errorf("%s status = %d, want 404", tt.path, resp.StatusCode)
			}
		})
	}
}
