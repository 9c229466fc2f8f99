package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/NyashaEysenck/offline-wallet/internal/pkg/database"
	"github.com/NyashaEysenck/offline-wallet/internal/pkg/models"
	"github.com/NyashaEysenck/offline-wallet/services/ledger"
)

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id              TEXT PRIMARY KEY,
	receipt_id      TEXT NOT NULL UNIQUE,
	sender          TEXT NOT NULL,
	recipient       TEXT NOT NULL,
	amount          NUMERIC(20, 4) NOT NULL,
	note            TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMPTZ NOT NULL,
	channel         TEXT NOT NULL,
	status          TEXT NOT NULL,
	sender_synced   BOOLEAN NOT NULL DEFAULT FALSE,
	receiver_synced BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS balances (
	identity  TEXT PRIMARY KEY,
	available NUMERIC(20, 4) NOT NULL DEFAULT 0,
	reserved  NUMERIC(20, 4) NOT NULL DEFAULT 0
);
`

// LedgerRepository is the Postgres-backed authoritative store
type LedgerRepository struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewLedgerRepository migrates the schema and returns the repository
func NewLedgerRepository(cfg *models.Config, client *database.PostgresClient) (*LedgerRepository, error) {
	db := client.GetDB()

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to migrate ledger schema: %w", err)
	}

	return &LedgerRepository{cfg: cfg, db: db}, nil
}

// CreateIfAbsent commits a transaction keyed by receipt ID. The row lock
// on the receipt serializes concurrent submissions of the same payment:
// exactly one inserts and moves funds, later ones classify as duplicate or
// conflict with no balance effects.
func (r *LedgerRepository) CreateIfAbsent(ctx context.Context, txn *models.Transaction, submittedBy string) (*models.CommitResponse, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := getByReceiptTx(ctx, tx, txn.ReceiptID, true)
	if err != nil && !errors.Is(err, ledger.ErrReceiptNotFound) {
		return nil, err
	}

	if existing != nil {
		if !existing.SameEconomicEvent(txn) {
			return &models.CommitResponse{
				Outcome:    models.OutcomeConflict,
				ReceiptID:  txn.ReceiptID,
				SyncStatus: existing.SyncStatus,
				Message:    "receipt already committed with different transaction details",
			}, nil
		}

		flags, err := r.markSubmitted(ctx, tx, existing, submittedBy)
		if err != nil {
			return nil, err
		}
		if err = tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit duplicate marking: %w", err)
		}

		return &models.CommitResponse{
			Outcome:    models.OutcomeDuplicate,
			ReceiptID:  txn.ReceiptID,
			SyncStatus: flags,
		}, nil
	}

	reject, err := r.moveFunds(ctx, tx, txn)
	if err != nil {
		return nil, err
	}
	if reject != "" {
		return &models.CommitResponse{
			Outcome:   models.OutcomeRejected,
			ReceiptID: txn.ReceiptID,
			Message:   reject,
		}, nil
	}

	flags := models.SyncStatus{
		SenderSynced:   submittedBy == txn.Sender,
		ReceiverSynced: submittedBy == txn.Recipient,
	}

	insert := `
		INSERT INTO transactions (id, receipt_id, sender, recipient, amount,
			note, created_at, channel, status, sender_synced, receiver_synced)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = tx.ExecContext(ctx, insert,
		txn.ID, txn.ReceiptID, txn.Sender, txn.Recipient, txn.Amount.String(),
		txn.Note, txn.CreatedAt, txn.Channel, models.StatusCompleted,
		flags.SenderSynced, flags.ReceiverSynced)
	if err != nil {
		if isUniqueViolation(err) {
			// Lost the race with a concurrent first submission of this
			// receipt. Reclassify against the winner's row.
			tx.Rollback()
			return r.CreateIfAbsent(ctx, txn, submittedBy)
		}
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	return &models.CommitResponse{
		Outcome:    models.OutcomeAccepted,
		ReceiptID:  txn.ReceiptID,
		SyncStatus: flags,
	}, nil
}

// moveFunds debits the sender and credits the recipient. Reserved funds
// are consumed first; a sender with neither reserved nor available cover
// gets a rejection message instead of an error.
func (r *LedgerRepository) moveFunds(ctx context.Context, tx *sqlx.Tx, txn *models.Transaction) (string, error) {
	var availableStr, reservedStr string
	err := tx.QueryRowContext(ctx,
		`SELECT available, reserved FROM balances WHERE identity = $1 FOR UPDATE`,
		txn.Sender).Scan(&availableStr, &reservedStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "sender has no account", nil
		}
		return "", fmt.Errorf("failed to read sender balance: %w", err)
	}

	available, err := decimal.NewFromString(availableStr)
	if err != nil {
		return "", fmt.Errorf("corrupt sender balance: %w", err)
	}
	reserved, err := decimal.NewFromString(reservedStr)
	if err != nil {
		return "", fmt.Errorf("corrupt sender balance: %w", err)
	}

	switch {
	case reserved.GreaterThanOrEqual(txn.Amount):
		reserved = reserved.Sub(txn.Amount)
	case available.GreaterThanOrEqual(txn.Amount):
		available = available.Sub(txn.Amount)
	default:
		return "insufficient sender funds", nil
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE balances SET available = $1, reserved = $2 WHERE identity = $3`,
		available.String(), reserved.String(), txn.Sender)
	if err != nil {
		return "", fmt.Errorf("failed to debit sender: %w", err)
	}

	credit := `
		INSERT INTO balances (identity, available, reserved) VALUES ($1, $2, 0)
		ON CONFLICT (identity) DO UPDATE SET available = balances.available + $2
	`
	if _, err = tx.ExecContext(ctx, credit, txn.Recipient, txn.Amount.String()); err != nil {
		return "", fmt.Errorf("failed to credit recipient: %w", err)
	}

	return "", nil
}

// markSubmitted sets the sync flag for the submitting role on a duplicate
// resubmission. Flags only ever go from false to true.
func (r *LedgerRepository) markSubmitted(ctx context.Context, tx *sqlx.Tx, existing *models.Transaction, submittedBy string) (models.SyncStatus, error) {
	flags := existing.SyncStatus
	switch submittedBy {
	case existing.Sender:
		flags.SenderSynced = true
	case existing.Recipient:
		flags.ReceiverSynced = true
	}

	if flags == existing.SyncStatus {
		return flags, nil
	}

	_, err := tx.ExecContext(ctx,
		`UPDATE transactions SET sender_synced = $1, receiver_synced = $2 WHERE receipt_id = $3`,
		flags.SenderSynced, flags.ReceiverSynced, existing.ReceiptID)
	if err != nil {
		return flags, fmt.Errorf("failed to update sync flags: %w", err)
	}

	return flags, nil
}

// GetByReceiptID retrieves a committed transaction
func (r *LedgerRepository) GetByReceiptID(ctx context.Context, receiptID string) (*models.Transaction, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	txn, err := getByReceiptTx(ctx, tx, receiptID, false)
	if err != nil {
		return nil, err
	}

	return txn, tx.Commit()
}

// ListByIdentity returns every transaction an identity participates in
func (r *LedgerRepository) ListByIdentity(ctx context.Context, identity string) ([]*models.Transaction, error) {
	query := `
		SELECT id, receipt_id, sender, recipient, amount, note,
			created_at, channel, status, sender_synced, receiver_synced
		FROM transactions
		WHERE sender = $1 OR recipient = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []*models.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}

	return txns, rows.Err()
}

// GetBalance returns an identity's balance
func (r *LedgerRepository) GetBalance(ctx context.Context, identity string) (*models.AccountBalance, error) {
	var availableStr, reservedStr string
	err := r.db.QueryRowContext(ctx,
		`SELECT available, reserved FROM balances WHERE identity = $1`, identity).
		Scan(&availableStr, &reservedStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to read balance: %w", err)
	}

	return balanceFromStrings(identity, availableStr, reservedStr)
}

// Reserve moves available funds into the reserved bucket
func (r *LedgerRepository) Reserve(ctx context.Context, identity string, amount decimal.Decimal) (*models.AccountBalance, error) {
	return r.mutateBalance(ctx, identity, func(available, reserved decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
		next := available.Sub(amount)
		if next.IsNegative() {
			return available, reserved, ledger.ErrInsufficientFunds
		}
		return next, reserved.Add(amount), nil
	})
}

// Release returns reserved funds to the available bucket
func (r *LedgerRepository) Release(ctx context.Context, identity string, amount decimal.Decimal) (*models.AccountBalance, error) {
	return r.mutateBalance(ctx, identity, func(available, reserved decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
		next := reserved.Sub(amount)
		if next.IsNegative() {
			return available, reserved, ledger.ErrInsufficientFunds
		}
		return available.Add(amount), next, nil
	})
}

// Deposit credits available funds, creating the account on first use
func (r *LedgerRepository) Deposit(ctx context.Context, identity string, amount decimal.Decimal) (*models.AccountBalance, error) {
	query := `
		INSERT INTO balances (identity, available, reserved) VALUES ($1, $2, 0)
		ON CONFLICT (identity) DO UPDATE SET available = balances.available + $2
		RETURNING available, reserved
	`

	var availableStr, reservedStr string
	err := r.db.QueryRowContext(ctx, query, identity, amount.String()).Scan(&availableStr, &reservedStr)
	if err != nil {
		return nil, fmt.Errorf("failed to deposit: %w", err)
	}

	return balanceFromStrings(identity, availableStr, reservedStr)
}

func (r *LedgerRepository) mutateBalance(ctx context.Context, identity string, mutate func(available, reserved decimal.Decimal) (decimal.Decimal, decimal.Decimal, error)) (*models.AccountBalance, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var availableStr, reservedStr string
	err = tx.QueryRowContext(ctx,
		`SELECT available, reserved FROM balances WHERE identity = $1 FOR UPDATE`, identity).
		Scan(&availableStr, &reservedStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to read balance: %w", err)
	}

	balance, err := balanceFromStrings(identity, availableStr, reservedStr)
	if err != nil {
		return nil, err
	}

	nextAvailable, nextReserved, err := mutate(balance.Available, balance.Reserved)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE balances SET available = $1, reserved = $2 WHERE identity = $3`,
		nextAvailable.String(), nextReserved.String(), identity)
	if err != nil {
		return nil, fmt.Errorf("failed to write balance: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit balance update: %w", err)
	}

	return &models.AccountBalance{Identity: identity, Available: nextAvailable, Reserved: nextReserved}, nil
}

func balanceFromStrings(identity, availableStr, reservedStr string) (*models.AccountBalance, error) {
	available, err := decimal.NewFromString(availableStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt available balance: %w", err)
	}
	reserved, err := decimal.NewFromString(reservedStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt reserved balance: %w", err)
	}
	return &models.AccountBalance{Identity: identity, Available: available, Reserved: reserved}, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var txn models.Transaction
	var amountStr string

	err := row.Scan(
		&txn.ID,
		&txn.ReceiptID,
		&txn.Sender,
		&txn.Recipient,
		&amountStr,
		&txn.Note,
		&txn.CreatedAt,
		&txn.Channel,
		&txn.Status,
		&txn.SyncStatus.SenderSynced,
		&txn.SyncStatus.ReceiverSynced,
	)
	if err != nil {
		return nil, err
	}

	txn.Amount, err = decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt transaction amount: %w", err)
	}

	return &txn, nil
}

func getByReceiptTx(ctx context.Context, tx *sqlx.Tx, receiptID string, forUpdate bool) (*models.Transaction, error) {
	query := `
		SELECT id, receipt_id, sender, recipient, amount, note,
			created_at, channel, status, sender_synced, receiver_synced
		FROM transactions
		WHERE receipt_id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	txn, err := scanTransaction(tx.QueryRowxContext(ctx, query, receiptID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrReceiptNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return txn, nil
}
