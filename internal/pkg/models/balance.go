package models

import "github.com/shopspring/decimal"

// AccountBalance is the per-identity split between funds available online
// and funds reserved for offline spending. Both fields stay non-negative;
// reserved only grows via an explicit reserve and only shrinks via release
// or a completed offline spend.
type AccountBalance struct {
	Identity  string          `json:"identity" db:"identity"`
	Available decimal.Decimal `json:"available" db:"available"`
	Reserved  decimal.Decimal `json:"reserved" db:"reserved"`
}

// BalanceRequest is the wire form of a reserve/release/deposit operation
type BalanceRequest struct {
	Identity string          `json:"identity"`
	Amount   decimal.Decimal `json:"amount"`
}
