package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionCommittedEvent is published after the authoritative ledger
// accepts a transaction
type TransactionCommittedEvent struct {
	ReceiptID string          `json:"receipt_id"`
	Sender    string          `json:"sender"`
	Recipient string          `json:"recipient"`
	Amount    decimal.Decimal `json:"amount"`
	Channel   Channel         `json:"channel"`
	Timestamp time.Time       `json:"timestamp"`
}
