package db

import (
	"context"

	"github.com/jackc/pgx/v5"

	"linkisend/internal/models"
)

// txColumns is the standard column list for transaction log queries.
const txColumns = `id, link_id, event, short_id, amount, currency, network,
	phone, wallet, sim_tx_hash, created_at`

// executor covers both *pgxpool.Pool and pgx.Tx, so audit appends can run
// standalone or inside the claim transaction.
type executor interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func insertTransaction(ctx context.Context, q executor, entry *models.Transaction) error {
	query := `
		INSERT INTO transactions (link_id, event, short_id, amount, currency, network, phone, wallet, sim_tx_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	return q.QueryRow(ctx, query,
		entry.LinkID,
		entry.Event,
		entry.ShortID,
		entry.Amount,
		entry.Currency,
		entry.Network,
		entry.Phone,
		entry.Wallet,
		entry.SimTxHash,
	).Scan(&entry.ID, &entry.CreatedAt)
}

// AppendTransaction appends an entry to the audit log. Entries are
// append-only: nothing in this package updates or deletes them.
func (d *DB) AppendTransaction(ctx context.Context, entry *models.Transaction) error {
	return insertTransaction(ctx, d.Pool, entry)
}

// ListTransactions returns all audit log entries, newest first.
func (d *DB) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	rows, err := d.Pool.Query(ctx,
		`SELECT `+txColumns+` FROM transactions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.Transaction
	for rows.Next() {
		var e models.Transaction
		if err := rows.Scan(
			&e.ID,
			&e.LinkID,
			&e.Event,
			&e.ShortID,
			&e.Amount,
			&e.Currency,
			&e.Network,
			&e.Phone,
			&e.Wallet,
			&e.SimTxHash,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// IncrementClaimOutcome upserts a claim outcome count for metrics export.
func (d *DB) IncrementClaimOutcome(ctx context.Context, outcome string) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO claim_outcomes (outcome, count, last_seen_at)
		VALUES ($1, 1, NOW())
		ON CONFLICT (outcome) DO UPDATE
		SET count = claim_outcomes.count + 1, last_seen_at = NOW()
	`, outcome)
	return err
}

// GetAllClaimOutcomes returns all claim outcome rows for metrics export.
func (d *DB) GetAllClaimOutcomes(ctx context.Context) (map[string]int64, error) {
	rows, err := d.Pool.Query(ctx, `SELECT outcome, count FROM claim_outcomes`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	outcomes := make(map[string]int64)
	for rows.Next() {
		var outcome string
		var count int64
		if err := rows.Scan(&outcome, &count); err != nil {
			return nil, err
		}
		outcomes[outcome] = count
	}
	return outcomes, rows.Err()
}
