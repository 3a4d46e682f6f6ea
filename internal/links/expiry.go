package links

import (
	"time"

	"linkisend/internal/models"
)

// IsExpired reports whether a link's claim window has passed at the given
// instant. Monotonic in now: once expired, a link stays expired.
func IsExpired(link *models.Link, now time.Time) bool {
	return !now.Before(link.ExpiresAt)
}

// IsReapable reports whether a link may be removed from the active store.
// Only unclaimed expired links are reapable; claimed links are retained
// indefinitely for the audit trail.
func IsReapable(link *models.Link, now time.Time) bool {
	return !link.Claimed && IsExpired(link, now)
}
