package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Channel identifies the transport a payment intent travelled over
type Channel string

const (
	ChannelQR        Channel = "qr"
	ChannelNFC       Channel = "nfc"
	ChannelBluetooth Channel = "bluetooth"
	ChannelOnline    Channel = "online"
)

// Valid reports whether the channel is one of the known transports
func (c Channel) Valid() bool {
	switch c {
	case ChannelQR, ChannelNFC, ChannelBluetooth, ChannelOnline:
		return true
	}
	return false
}

// TransactionStatus is the lifecycle status of a ledger transaction
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
	StatusConflict  TransactionStatus = "conflict"
)

// SyncStatus tracks which roles have reconciled a transaction with the
// remote ledger. Flags are monotonic: once true, never reset.
type SyncStatus struct {
	SenderSynced   bool `json:"sender_synced" db:"sender_synced"`
	ReceiverSynced bool `json:"receiver_synced" db:"receiver_synced"`
}

// Transaction is the durable record of one economic event. ID and ReceiptID
// are assigned once at creation and never regenerated, even on retry.
type Transaction struct {
	ID         string            `json:"id" db:"id"`
	ReceiptID  string            `json:"receipt_id" db:"receipt_id"`
	Sender     string            `json:"sender" db:"sender"`
	Recipient  string            `json:"recipient" db:"recipient"`
	Amount     decimal.Decimal   `json:"amount" db:"amount"`
	Note       string            `json:"note,omitempty" db:"note"`
	CreatedAt  time.Time         `json:"created_at" db:"created_at"`
	Channel    Channel           `json:"channel" db:"channel"`
	Status     TransactionStatus `json:"status" db:"status"`
	SyncStatus SyncStatus        `json:"sync_status"`
}

// SameEconomicEvent reports whether two records describe the same transfer.
// Used for duplicate-vs-conflict classification on receipt ID collisions.
func (t *Transaction) SameEconomicEvent(other *Transaction) bool {
	return t.Sender == other.Sender &&
		t.Recipient == other.Recipient &&
		t.Amount.Equal(other.Amount)
}

// CommitOutcome classifies the result of submitting a transaction to the
// authoritative ledger
type CommitOutcome string

const (
	OutcomeAccepted  CommitOutcome = "accepted"
	OutcomeDuplicate CommitOutcome = "duplicate"
	OutcomeConflict  CommitOutcome = "conflict"
	OutcomeRejected  CommitOutcome = "rejected"
)

// CommitRequest is the wire form of a transaction submitted for commit.
// ReceiptID is the idempotency key. SubmittedBy identifies which party is
// reporting the transaction, so the ledger can track per-role sync flags.
type CommitRequest struct {
	ReceiptID   string          `json:"receipt_id"`
	Sender      string          `json:"sender"`
	Recipient   string          `json:"recipient"`
	Amount      decimal.Decimal `json:"amount"`
	Note        string          `json:"note,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	Channel     Channel         `json:"channel"`
	SubmittedBy string          `json:"submitted_by"`
}

// CommitResponse is the ledger service's reply to a commit request. The
// returned sync status reflects every report the ledger has seen so far,
// letting each device learn when the counterparty has reconciled too.
type CommitResponse struct {
	Outcome    CommitOutcome `json:"outcome"`
	ReceiptID  string        `json:"receipt_id"`
	SyncStatus SyncStatus    `json:"sync_status"`
	Message    string        `json:"message,omitempty"`
}

// ReconcileResult aggregates per-transaction outcomes of one drain pass
type ReconcileResult struct {
	Synced       int `json:"synced"`
	StillPending int `json:"still_pending"`
	Conflicts    int `json:"conflicts"`
	Failed       int `json:"failed"`
}

// Total returns the number of transactions examined in the pass
func (r ReconcileResult) Total() int {
	return r.Synced + r.StillPending + r.Conflicts + r.Failed
}
