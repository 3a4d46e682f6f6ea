package links

import (
	"testing"
	"time"

	"linkisend/internal/models"
)

func TestIsExpired(t *testing.T) {
	created := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	link := &models.Link{
		CreatedAt: created,
		ExpiresAt: created.Add(24 * time.Hour),
	}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"just created", created, false},
		{"one second before expiry", link.ExpiresAt.Add(-time.Second), false},
		{"exactly at expiry", link.ExpiresAt, true},
		{"one second after expiry", link.ExpiresAt.Add(time.Second), true},
		{"long after expiry", link.ExpiresAt.Add(30 * 24 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsExpired(link, tt.now); got != tt.want {
				t.Errorf("IsExpired(now=%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}

	// Monotonic in now: once expired, always expired.
	expired := false
	for i := 0; i <= 48; i++ {
		now := created.Add(time.Duration(i) * time.Hour)
		got := IsExpired(link, now)
		if expired && !got {
			t.Fatalf("IsExpired flipped back to false at %v", now)
		}
		expired = got
	}
}

func TestIsReapable(t *testing.T) {
	created := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	after := created.Add(25 * time.Hour)

	unclaimed := &models.Link{CreatedAt: created, ExpiresAt: created.Add(24 * time.Hour)}
	claimed := &models.Link{CreatedAt: created, ExpiresAt: created.Add(24 * time.Hour), Claimed: true}

	if !IsReapable(unclaimed, after) {
		t.Error("expired unclaimed link not reapable")
	}
	if IsReapable(claimed, after) {
		t.Error("claimed link reapable; claimed links must be retained")
	}
	if IsReapable(unclaimed, created) {
		t.Error("fresh link reapable")
	}
}
