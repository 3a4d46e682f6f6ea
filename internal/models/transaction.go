package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction event kinds.
const (
	EventCreate = "create"
	EventClaim  = "claim"
)

// Transaction is one append-only audit log entry. Each entry snapshots the
// link fields that mattered at the moment of the event; entries are never
// updated or deleted, so history survives link reaping.
type Transaction struct {
	ID        uuid.UUID `json:"id"`
	LinkID    uuid.UUID `json:"link_id"`
	Event     string    `json:"event"`
	ShortID   string    `json:"short_id"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Network   string    `json:"network"`
	Phone     string    `json:"phone"`
	Wallet    string    `json:"wallet"`
	SimTxHash *string   `json:"sim_tx_hash,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryEntry is the derived per-link view served by the admin history
// listing: the create event joined with its claim event, if any.
type HistoryEntry struct {
	LinkID    uuid.UUID  `json:"link_id"`
	ShortID   string     `json:"short_id"`
	Amount    float64    `json:"amount"`
	Currency  string     `json:"currency"`
	Network   string     `json:"network"`
	CreatedAt time.Time  `json:"created_at"`
	Claimed   bool       `json:"claimed"`
	ClaimedAt *time.Time `json:"claimed_at,omitempty"`
	ClaimedBy string     `json:"claimed_by,omitempty"`
	SimTxHash string     `json:"sim_tx_hash,omitempty"`
}
