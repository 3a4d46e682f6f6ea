package links

import (
	"context"
	"errors"
	"testing"
	"time"

	"linkisend/internal/testutil"
)

// Integration coverage of the lifecycle against a real Postgres store; the
// unit tests above run the same flows against the in-memory fake.

func TestLifecycle_Postgres(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	svc := newTestService(database)
	ctx := context.Background()

	link := createTestLink(t, svc)

	info, err := svc.Info(ctx, link.ShortID)
	if err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	if info.Claimed {
		t.Error("fresh link reports claimed")
	}

	simTxHash, err := svc.Claim(ctx, ClaimInput{
		ShortID: link.ShortID,
		Phone:   "0033612345678",
		Wallet:  evmWallet,
	})
	if err != nil {
		t.Fatalf("Claim() error = %v", err)
	}
	if !simTxHashPattern.MatchString(simTxHash) {
		t.Errorf("sim tx hash %q malformed", simTxHash)
	}

	if _, err := svc.Claim(ctx, ClaimInput{
		ShortID: link.ShortID,
		Phone:   "+33612345678",
		Wallet:  evmWallet,
	}); !errors.Is(err, ErrAlreadyClaimed) {
		t.Errorf("second Claim() error = %v, want ErrAlreadyClaimed", err)
	}

	history, err := svc.History(ctx)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 1 || !history[0].Claimed || history[0].SimTxHash != simTxHash {
		t.Errorf("history = %+v, want one claimed entry with hash %s", history, simTxHash)
	}
}

func TestExpiredLink_Postgres(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	svc := newTestService(database)
	ctx := context.Background()

	// A link whose claim window has already passed.
	dead := testutil.CreateTestLink(t, database, "dead23", "+33612345678", -time.Hour)

	if _, err := svc.Info(ctx, dead.ShortID); !errors.Is(err, ErrExpired) {
		t.Errorf("Info() error = %v, want ErrExpired", err)
	}
	if _, err := svc.Claim(ctx, ClaimInput{
		ShortID: dead.ShortID,
		Phone:   "+33612345678",
		Wallet:  evmWallet,
	}); !errors.Is(err, ErrExpired) {
		t.Errorf("Claim() error = %v, want ErrExpired", err)
	}

	// Creating a new link reaps it for real.
	if _, err := svc.Create(ctx, CreateInput{
		Amount:         5,
		Currency:       "SOL",
		Network:        "Solana",
		RecipientPhone: "+33699999999",
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Info(ctx, dead.ShortID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Info() after reap error = %v, want ErrNotFound", err)
	}
}
