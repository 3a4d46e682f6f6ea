package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"linkisend/internal/db"
	"linkisend/internal/models"
)

// FakeStore is an in-memory link store for unit tests. It mirrors the
// compare-and-swap claim semantics of the Postgres store, including the
// AlreadyClaimed / NotFound distinction on a lost claim race.
type FakeStore struct {
	mu      sync.Mutex
	links   map[uuid.UUID]*models.Link
	byShort map[string]uuid.UUID
	events  []models.Transaction

	// FailPut and FailMark, when set, are returned by CreateLink and
	// MarkClaimed to simulate backend failures.
	FailPut  error
	FailMark error
}

// NewFakeStore creates an empty in-memory store.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		links:   make(map[uuid.UUID]*models.Link),
		byShort: make(map[string]uuid.UUID),
	}
}

// CreateLink inserts a link, enforcing short id uniqueness.
func (f *FakeStore) CreateLink(_ context.Context, link *models.Link) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailPut != nil {
		return f.FailPut
	}
	if _, exists := f.byShort[link.ShortID]; exists {
		return db.ErrDuplicateShortID
	}
	link.ID = uuid.New()
	cp := *link
	f.links[link.ID] = &cp
	f.byShort[link.ShortID] = link.ID
	return nil
}

// GetLinkByShortID returns a copy of the link with the given short code.
func (f *FakeStore) GetLinkByShortID(_ context.Context, shortID string) (*models.Link, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.byShort[shortID]
	if !ok {
		return nil, db.ErrLinkNotFound
	}
	cp := *f.links[id]
	return &cp, nil
}

// CountLinks returns the number of retained links.
func (f *FakeStore) CountLinks(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.links)), nil
}

// DeleteExpiredUnclaimed removes unclaimed links past expiry.
func (f *FakeStore) DeleteExpiredUnclaimed(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, l := range f.links {
		if !l.Claimed && !now.Before(l.ExpiresAt) {
			delete(f.links, id)
			delete(f.byShort, l.ShortID)
			n++
		}
	}
	return n, nil
}

// MarkClaimed flips a link to claimed and records the claim event, with the
// same win-once semantics as the SQL implementation.
func (f *FakeStore) MarkClaimed(_ context.Context, linkID uuid.UUID, claim *models.Claim, entry *models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailMark != nil {
		return f.FailMark
	}
	l, ok := f.links[linkID]
	if !ok {
		return db.ErrLinkNotFound
	}
	if l.Claimed {
		return db.ErrAlreadyClaimed
	}
	l.Claimed = true
	c := *claim
	l.Claim = &c
	e := *entry
	e.ID = uuid.New()
	e.CreatedAt = claim.ClaimedAt
	f.events = append(f.events, e)
	return nil
}

// AppendTransaction records an audit log entry.
func (f *FakeStore) AppendTransaction(_ context.Context, entry *models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e := *entry
	e.ID = uuid.New()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	f.events = append(f.events, e)
	return nil
}

// ListTransactions returns the audit log, newest first.
func (f *FakeStore) ListTransactions(_ context.Context) ([]models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Transaction, 0, len(f.events))
	for i := len(f.events) - 1; i >= 0; i-- {
		out = append(out, f.events[i])
	}
	return out, nil
}
