package models

import (
	"time"

	"github.com/google/uuid"
)

// Link represents a claimable transfer offer: an amount on a network,
// reserved for the holder of a phone number, addressed by a short code.
type Link struct {
	ID             uuid.UUID `json:"id"`
	ShortID        string    `json:"short_id"`
	Amount         float64   `json:"amount"`
	Currency       string    `json:"currency"`
	Network        string    `json:"network"`
	SenderWallet   string    `json:"sender_wallet"`
	RecipientPhone string    `json:"recipient_phone"`
	CreatedAt      time.Time `json:"created_at"`
	ExpiresAt      time.Time `json:"expires_at"`
	Claimed        bool      `json:"claimed"`
	Claim          *Claim    `json:"claim,omitempty"`
}

// Claim is the recipient-supplied data that satisfied a link's claim.
// It is non-nil exactly when Link.Claimed is true.
type Claim struct {
	Phone     string    `json:"phone"`
	Wallet    string    `json:"wallet"`
	ClaimedAt time.Time `json:"claimed_at"`
}

// PhoneHint returns the last four digits of the recipient phone, for
// display on the public claim page without disclosing the full number.
func (l *Link) PhoneHint() string {
	digits := make([]byte, 0, len(l.RecipientPhone))
	for i := 0; i < len(l.RecipientPhone); i++ {
		if c := l.RecipientPhone[i]; c >= '0' && c <= '9' {
			digits = append(digits, c)
		}
	}
	if len(digits) <= 4 {
		return string(digits)
	}
	return string(digits[len(digits)-4:])
}
