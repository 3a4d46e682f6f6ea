// Package links implements the claim-link lifecycle: creation, claim state
// transitions, expiry, and the derived history view over the audit log.
package links

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"linkisend/internal/db"
	"linkisend/internal/models"
	"linkisend/internal/shortid"
	"linkisend/internal/validation"
)

// maxShortIDAttempts bounds the generate-and-insert retry loop. At 56^6
// possible codes a collision is already unlikely; repeated collisions mean
// something is wrong with the store, not with luck.
const maxShortIDAttempts = 5

// Store is the persistence contract the lifecycle depends on. *db.DB is the
// production implementation; tests use an in-memory fake.
type Store interface {
	CreateLink(ctx context.Context, link *models.Link) error
	GetLinkByShortID(ctx context.Context, shortID string) (*models.Link, error)
	CountLinks(ctx context.Context) (int64, error)
	DeleteExpiredUnclaimed(ctx context.Context, now time.Time) (int64, error)
	MarkClaimed(ctx context.Context, linkID uuid.UUID, claim *models.Claim, entry *models.Transaction) error
	AppendTransaction(ctx context.Context, entry *models.Transaction) error
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
}

// Policy carries the named validation knobs that historically diverged
// between deployments, made explicit instead of implicit in code paths.
type Policy struct {
	// TTL is the claim window applied to new links.
	TTL time.Duration
	// RequirePhoneMatch gates the claim-time phone authorization check.
	RequirePhoneMatch bool
	// ValidateSenderWallet enables creation-time format checks on the
	// sender's wallet address.
	ValidateSenderWallet bool
	// CollapseClaimErrors folds PhoneMismatch, Expired and NotFound into a
	// single NotFound response so link codes cannot be probed for phone
	// numbers or liveness.
	CollapseClaimErrors bool
}

// Service orchestrates link creation and claiming against a Store.
type Service struct {
	store    Store
	policy   Policy
	networks *validation.Networks
	now      func() time.Time
}

// NewService creates a link lifecycle service.
func NewService(store Store, policy Policy, networks *validation.Networks) *Service {
	if networks == nil {
		networks = validation.DefaultNetworks()
	}
	return &Service{
		store:    store,
		policy:   policy,
		networks: networks,
		now:      time.Now,
	}
}

// TTL returns the configured claim window.
func (s *Service) TTL() time.Duration {
	return s.policy.TTL
}

// CreateInput is the sender's request to create a claimable link.
type CreateInput struct {
	Amount         float64
	Currency       string
	Network        string
	SenderWallet   string
	RecipientPhone string
}

// Create validates the input, generates a unique short code and stores the
// new link, then appends the create event to the audit log.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Link, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	phone, ok := validation.ValidatePhone(in.RecipientPhone)
	if !ok {
		return nil, ErrInvalidPhone
	}

	if s.policy.ValidateSenderWallet {
		if !validation.ValidateWallet(in.SenderWallet, in.Network, s.networks) {
			return nil, ErrInvalidWallet
		}
	}

	// Opportunistic reap keeps the retained set small and frees short codes
	// held by dead links. Failures here must not block creation.
	if _, err := s.store.DeleteExpiredUnclaimed(ctx, s.now()); err != nil {
		log.Printf("reap before create failed: %v", err)
	}

	now := s.now()
	link := &models.Link{
		Amount:         in.Amount,
		Currency:       in.Currency,
		Network:        in.Network,
		SenderWallet:   in.SenderWallet,
		RecipientPhone: phone,
		CreatedAt:      now,
		ExpiresAt:      now.Add(s.policy.TTL),
	}

	// The store's unique index is the authority on short code uniqueness;
	// regenerate on conflict rather than checking first.
	var err error
	for attempt := 0; attempt < maxShortIDAttempts; attempt++ {
		link.ShortID = shortid.Generate()
		err = s.store.CreateLink(ctx, link)
		if !errors.Is(err, db.ErrDuplicateShortID) {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("create link: %w", err)
	}

	entry := &models.Transaction{
		LinkID:   link.ID,
		Event:    models.EventCreate,
		ShortID:  link.ShortID,
		Amount:   link.Amount,
		Currency: link.Currency,
		Network:  link.Network,
		Phone:    link.RecipientPhone,
		Wallet:   link.SenderWallet,
	}
	if err := s.store.AppendTransaction(ctx, entry); err != nil {
		return nil, fmt.Errorf("append create event: %w", err)
	}

	return link, nil
}

// Info returns the link for a short code if it is still reachable.
// Expired unclaimed links report ErrExpired; claimed links stay readable so
// the claim page can show their final state.
func (s *Service) Info(ctx context.Context, shortID string) (*models.Link, error) {
	link, err := s.store.GetLinkByShortID(ctx, shortID)
	if errors.Is(err, db.ErrLinkNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if IsReapable(link, s.now()) {
		return nil, ErrExpired
	}
	return link, nil
}

// ClaimInput is the recipient's request to claim a link.
type ClaimInput struct {
	ShortID string
	Phone   string
	Wallet  string
}

// Claim runs the claim state transition for a link and returns the
// simulated transfer receipt on success. Checks run in a fixed order:
// existence, already-claimed, expiry, phone format, phone match, wallet
// format. The final flip to claimed is a compare-and-swap in the store, so
// concurrent claims on the same code cannot both succeed even though the
// checks here run on a snapshot.
func (s *Service) Claim(ctx context.Context, in ClaimInput) (string, error) {
	simTxHash, err := s.claim(ctx, in)
	if err != nil && s.policy.CollapseClaimErrors {
		if errors.Is(err, ErrPhoneMismatch) || errors.Is(err, ErrExpired) || errors.Is(err, ErrNotFound) {
			return "", ErrNotFound
		}
	}
	return simTxHash, err
}

func (s *Service) claim(ctx context.Context, in ClaimInput) (string, error) {
	link, err := s.store.GetLinkByShortID(ctx, in.ShortID)
	if errors.Is(err, db.ErrLinkNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}

	if link.Claimed {
		return "", ErrAlreadyClaimed
	}
	if IsExpired(link, s.now()) {
		return "", ErrExpired
	}

	phone, ok := validation.ValidatePhone(in.Phone)
	if !ok {
		return "", ErrInvalidPhone
	}
	if s.policy.RequirePhoneMatch && !validation.PhoneMatches(phone, link.RecipientPhone) {
		return "", ErrPhoneMismatch
	}
	if !validation.ValidateWallet(in.Wallet, link.Network, s.networks) {
		return "", ErrInvalidWallet
	}

	simTxHash := newSimTxHash()
	claim := &models.Claim{
		Phone:     phone,
		Wallet:    in.Wallet,
		ClaimedAt: s.now(),
	}
	entry := &models.Transaction{
		LinkID:    link.ID,
		Event:     models.EventClaim,
		ShortID:   link.ShortID,
		Amount:    link.Amount,
		Currency:  link.Currency,
		Network:   link.Network,
		Phone:     phone,
		Wallet:    in.Wallet,
		SimTxHash: &simTxHash,
	}

	err = s.store.MarkClaimed(ctx, link.ID, claim, entry)
	if errors.Is(err, db.ErrAlreadyClaimed) {
		return "", ErrAlreadyClaimed
	}
	if errors.Is(err, db.ErrLinkNotFound) {
		// Reaped between lookup and claim; from the caller's view the link
		// is simply gone.
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}

	// Reap after a successful claim, same best-effort rule as creation.
	if _, err := s.store.DeleteExpiredUnclaimed(ctx, s.now()); err != nil {
		log.Printf("reap after claim failed: %v", err)
	}

	return simTxHash, nil
}

// Count returns the number of retained links, for the health endpoint.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.store.CountLinks(ctx)
}

// newSimTxHash returns a simulated transfer receipt: 0x followed by 64 hex
// characters, shaped like an on-chain transaction hash. No real transfer
// happens anywhere in this service.
func newSimTxHash() string {
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("links: crypto/rand failed: " + err.Error())
	}
	return "0x" + hex.EncodeToString(b[:])
}
