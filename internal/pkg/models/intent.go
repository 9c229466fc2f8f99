package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultIntentTTL is how long a payment intent stays valid after creation
const DefaultIntentTTL = 5 * time.Minute

// PaymentIntent is an ephemeral payment instruction encoded for out-of-band
// transport. It is never persisted as-is: the receiver's decode step consumes
// it and produces a pending Transaction. TransactionID and ReceiptID are
// assigned by the payer at creation and travel inside the payload, so both
// devices record the same economic event under the same identifiers.
type PaymentIntent struct {
	TransactionID string          `json:"transaction_id,omitempty"`
	ReceiptID     string          `json:"receipt_id,omitempty"`
	Sender        string          `json:"sender,omitempty"`
	Recipient     string          `json:"recipient"`
	Amount        decimal.Decimal `json:"amount"`
	Note          string          `json:"note,omitempty"`
	Channel       Channel         `json:"channel"`
	CreatedAt     time.Time       `json:"created_at"`
	ExpiresAt     time.Time       `json:"expires_at"`
}

// Expired reports whether the intent is past its expiry at the given instant.
// A zero ExpiresAt means the intent never expires.
func (i *PaymentIntent) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}
