package links

import (
	"context"

	"github.com/google/uuid"

	"linkisend/internal/models"
)

// History reconstructs per-link summaries from the audit log: every create
// event becomes one entry, and claim events are joined back onto their link
// by id. Entries come back newest-first, inherited from the log's ordering.
func (s *Service) History(ctx context.Context) ([]models.HistoryEntry, error) {
	events, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	claims := make(map[uuid.UUID]*models.Transaction)
	for i := range events {
		if events[i].Event == models.EventClaim {
			claims[events[i].LinkID] = &events[i]
		}
	}

	var entries []models.HistoryEntry
	for i := range events {
		e := &events[i]
		if e.Event != models.EventCreate {
			continue
		}
		entry := models.HistoryEntry{
			LinkID:    e.LinkID,
			ShortID:   e.ShortID,
			Amount:    e.Amount,
			Currency:  e.Currency,
			Network:   e.Network,
			CreatedAt: e.CreatedAt,
		}
		if c, ok := claims[e.LinkID]; ok {
			entry.Claimed = true
			claimedAt := c.CreatedAt
			entry.ClaimedAt = &claimedAt
			entry.ClaimedBy = c.Wallet
			if c.SimTxHash != nil {
				entry.SimTxHash = *c.SimTxHash
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Transactions returns the raw audit log, newest first.
func (s *Service) Transactions(ctx context.Context) ([]models.Transaction, error) {
	return s.store.ListTransactions(ctx)
}
