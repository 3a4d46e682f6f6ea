package models

import "time"

// CreateLinkResponse is returned by the create-link endpoint.
type CreateLinkResponse struct {
	ShortID   string `json:"short_id"`
	ExpiresIn int64  `json:"expires_in"`
	ClaimURL  string `json:"claim_url"`
}

// ClaimResponse is returned on a successful claim.
type ClaimResponse struct {
	Status    string `json:"status"`
	ShortID   string `json:"short_id"`
	Claimed   bool   `json:"claimed"`
	SimTxHash string `json:"sim_tx_hash"`
	Message   string `json:"message"`
}

// LinkStatusResponse is the non-sensitive view of a link served by the
// claim-status endpoint. The recipient phone is reduced to its last four
// digits and the sender wallet is omitted entirely.
type LinkStatusResponse struct {
	ShortID       string    `json:"short_id"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	Network       string    `json:"network"`
	RecipientHint string    `json:"recipient_hint"`
	EstimatedUSD  *float64  `json:"estimated_usd,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
	Expired       bool      `json:"expired"`
	Claimed       bool      `json:"claimed"`
}

// PriceResponse is returned by the price relay endpoint.
type PriceResponse struct {
	Symbol string  `json:"symbol"`
	USD    float64 `json:"usd"`
	Cached bool    `json:"cached"`
}
