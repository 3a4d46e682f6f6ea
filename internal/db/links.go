package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"linkisend/internal/models"
)

// linkColumns is the standard column list for link queries.
const linkColumns = `id, short_id, amount, currency, network, sender_wallet,
	recipient_phone, created_at, expires_at, claimed, claim_phone, claim_wallet, claimed_at`

// scanLink scans a row into a Link struct.
func scanLink(row pgx.Row) (*models.Link, error) {
	var link models.Link
	var claimPhone, claimWallet *string
	var claimedAt *time.Time
	err := row.Scan(
		&link.ID,
		&link.ShortID,
		&link.Amount,
		&link.Currency,
		&link.Network,
		&link.SenderWallet,
		&link.RecipientPhone,
		&link.CreatedAt,
		&link.ExpiresAt,
		&link.Claimed,
		&claimPhone,
		&claimWallet,
		&claimedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrLinkNotFound
	}
	if err != nil {
		return nil, err
	}
	if link.Claimed && claimPhone != nil && claimWallet != nil && claimedAt != nil {
		link.Claim = &models.Claim{
			Phone:     *claimPhone,
			Wallet:    *claimWallet,
			ClaimedAt: *claimedAt,
		}
	}
	return &link, nil
}

// CreateLink inserts a new link. The short_id unique index is the
// put-if-absent guard; a collision surfaces as ErrDuplicateShortID so the
// caller can regenerate and retry.
func (d *DB) CreateLink(ctx context.Context, link *models.Link) error {
	query := `
		INSERT INTO links (short_id, amount, currency, network, sender_wallet, recipient_phone, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := d.Pool.QueryRow(ctx, query,
		link.ShortID,
		link.Amount,
		link.Currency,
		link.Network,
		link.SenderWallet,
		link.RecipientPhone,
		link.CreatedAt,
		link.ExpiresAt,
	).Scan(&link.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateShortID
		}
		return err
	}
	return nil
}

// GetLinkByID fetches a link by its internal id.
func (d *DB) GetLinkByID(ctx context.Context, id uuid.UUID) (*models.Link, error) {
	row := d.Pool.QueryRow(ctx, `SELECT `+linkColumns+` FROM links WHERE id = $1`, id)
	return scanLink(row)
}

// GetLinkByShortID fetches a link by its public short code.
func (d *DB) GetLinkByShortID(ctx context.Context, shortID string) (*models.Link, error) {
	row := d.Pool.QueryRow(ctx, `SELECT `+linkColumns+` FROM links WHERE short_id = $1`, shortID)
	return scanLink(row)
}

// ListLinks returns all retained links, newest first.
func (d *DB) ListLinks(ctx context.Context) ([]models.Link, error) {
	rows, err := d.Pool.Query(ctx, `SELECT `+linkColumns+` FROM links ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []models.Link
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, *link)
	}
	return links, rows.Err()
}

// CountLinks returns the number of retained links.
func (d *DB) CountLinks(ctx context.Context) (int64, error) {
	var n int64
	err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM links`).Scan(&n)
	return n, err
}

// DeleteLink removes a link by internal id.
func (d *DB) DeleteLink(ctx context.Context, id uuid.UUID) error {
	_, err := d.Pool.Exec(ctx, `DELETE FROM links WHERE id = $1`, id)
	return err
}

// DeleteExpiredUnclaimed removes unclaimed links past their expiry and
// returns how many were reaped. Claimed links are never touched; their
// retention is an audit requirement.
func (d *DB) DeleteExpiredUnclaimed(ctx context.Context, now time.Time) (int64, error) {
	tag, err := d.Pool.Exec(ctx,
		`DELETE FROM links WHERE claimed = FALSE AND expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// MarkClaimed flips a link to claimed and appends the claim audit entry in
// one transaction. The UPDATE carries a claimed = FALSE guard, so of any
// number of concurrent claims exactly one wins; losers get
// ErrAlreadyClaimed, or ErrLinkNotFound if the link was reaped in between.
func (d *DB) MarkClaimed(ctx context.Context, linkID uuid.UUID, claim *models.Claim, entry *models.Transaction) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE links
		SET claimed = TRUE, claim_phone = $2, claim_wallet = $3, claimed_at = $4
		WHERE id = $1 AND claimed = FALSE
	`, linkID, claim.Phone, claim.Wallet, claim.ClaimedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		// Lost the race or the link is gone; look again to tell which.
		var claimed bool
		err := tx.QueryRow(ctx, `SELECT claimed FROM links WHERE id = $1`, linkID).Scan(&claimed)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrLinkNotFound
		}
		if err != nil {
			return err
		}
		return ErrAlreadyClaimed
	}

	if err := insertTransaction(ctx, tx, entry); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
