package ledger

import "errors"

var (
	// ErrReceiptNotFound is returned when no transaction exists for a
	// receipt ID
	ErrReceiptNotFound = errors.New("receipt not found")

	// ErrAccountNotFound is returned when an identity has no balance row
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientFunds is returned when a balance operation would
	// drive a bucket below zero
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidCommit is returned when a commit request fails validation
	ErrInvalidCommit = errors.New("invalid commit request")
)
