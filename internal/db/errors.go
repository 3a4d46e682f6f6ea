package db

import "errors"

// Domain-level database error sentinels.
var (
	// Link errors
	ErrLinkNotFound      = errors.New("link not found")
	ErrDuplicateShortID  = errors.New("short id already exists")
	ErrAlreadyClaimed    = errors.New("link already claimed")

	// Transaction log errors
	ErrTransactionNotFound = errors.New("transaction not found")
)
