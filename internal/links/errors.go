package links

import "errors"

// Claim and creation failure sentinels. Handlers map these to HTTP statuses;
// everything else bubbling out of the service is a backend failure.
var (
	ErrNotFound       = errors.New("link not found")
	ErrExpired        = errors.New("link expired")
	ErrAlreadyClaimed = errors.New("link already claimed")
	ErrInvalidAmount  = errors.New("amount must be greater than zero")
	ErrInvalidPhone   = errors.New("invalid phone number")
	ErrPhoneMismatch  = errors.New("phone number does not match this link")
	ErrInvalidWallet  = errors.New("invalid wallet address for this network")
)
