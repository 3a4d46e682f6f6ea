package jobs

import (
	"context"
	"log"
	"time"

	"linkisend/internal/db"
)

// Reaper periodically removes unclaimed links whose claim window has
// passed. Claimed links are never reaped; the delete predicate lives in the
// store and excludes them. The workflows also reap opportunistically, so
// this loop is a backstop for idle periods.
type Reaper struct {
	db       *db.DB
	interval time.Duration
}

// NewReaper creates a new reaper.
func NewReaper(database *db.DB, interval time.Duration) *Reaper {
	return &Reaper{db: database, interval: interval}
}

// Start begins the background reap loop.
func (r *Reaper) Start(ctx context.Context) {
	log.Printf("Reaper started (interval: %v)", r.interval)

	// Run immediately on start
	r.reap(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Reaper stopped")
			return
		case <-ticker.C:
			r.reap(ctx)
		}
	}
}

func (r *Reaper) reap(ctx context.Context) {
	reaped, err := r.db.DeleteExpiredUnclaimed(ctx, time.Now())
	if err != nil {
		log.Printf("Reaper: failed to delete expired links: %v", err)
		return
	}
	if reaped > 0 {
		log.Printf("Reaper: removed %d expired unclaimed links", reaped)
	}
}
