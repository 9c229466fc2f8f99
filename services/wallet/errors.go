package wallet

import "errors"

var (
	// ErrTransactionNotFound is returned when a ledger row does not exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInsufficientFunds is returned when a balance operation would
	// drive available funds below zero
	ErrInsufficientFunds = errors.New("insufficient available funds")

	// ErrInsufficientReserved is returned when a release exceeds the
	// reserved amount
	ErrInsufficientReserved = errors.New("insufficient reserved funds")

	// ErrLedgerUnreachable is returned when the remote ledger cannot be
	// reached for an operation that requires connectivity
	ErrLedgerUnreachable = errors.New("remote ledger unreachable")
)
