package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/NyashaEysenck/offline-wallet/internal/pkg/database"
	"github.com/NyashaEysenck/offline-wallet/internal/pkg/models"
	"github.com/NyashaEysenck/offline-wallet/services/wallet"
)

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	seq             INTEGER PRIMARY KEY AUTOINCREMENT,
	id              TEXT NOT NULL UNIQUE,
	receipt_id      TEXT NOT NULL,
	sender          TEXT NOT NULL,
	recipient       TEXT NOT NULL,
	amount          TEXT NOT NULL,
	note            TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMP NOT NULL,
	channel         TEXT NOT NULL,
	status          TEXT NOT NULL,
	sender_synced   INTEGER NOT NULL DEFAULT 0,
	receiver_synced INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS balance (
	identity  TEXT PRIMARY KEY,
	available TEXT NOT NULL,
	reserved  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS device_state (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

const connStatusKey = "conn_status"

// WalletRepository is the SQLite-backed local store: durable transaction
// ledger, balance mirror and persisted device state
type WalletRepository struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewWalletRepository migrates the schema and seeds the balance row for
// the configured identity
func NewWalletRepository(cfg *models.Config, client *database.SQLiteClient) (*WalletRepository, error) {
	db := client.GetDB()

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to migrate wallet schema: %w", err)
	}

	seed := `INSERT OR IGNORE INTO balance (identity, available, reserved) VALUES ($1, '0', '0')`
	if _, err := db.Exec(seed, cfg.Wallet.Identity); err != nil {
		return nil, fmt.Errorf("failed to seed balance row: %w", err)
	}

	return &WalletRepository{cfg: cfg, db: db}, nil
}

// Append stores a transaction. Appending an ID that already exists is a
// no-op that returns the stored row unchanged.
func (r *WalletRepository) Append(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := r.getTx(ctx, tx, txn.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, wallet.ErrTransactionNotFound) {
		return nil, err
	}

	query := `
		INSERT INTO transactions (id, receipt_id, sender, recipient, amount,
			note, created_at, channel, status, sender_synced, receiver_synced)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = tx.ExecContext(ctx, query,
		txn.ID, txn.ReceiptID, txn.Sender, txn.Recipient, txn.Amount.String(),
		txn.Note, txn.CreatedAt, txn.Channel, txn.Status,
		txn.SyncStatus.SenderSynced, txn.SyncStatus.ReceiverSynced)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return txn, nil
}

// ListAll returns every stored transaction in insertion order
func (r *WalletRepository) ListAll(ctx context.Context) ([]*models.Transaction, error) {
	query := `
		SELECT id, receipt_id, sender, recipient, amount, note,
			created_at, channel, status, sender_synced, receiver_synced
		FROM transactions
		ORDER BY seq ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
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

// Get retrieves a transaction by ID
func (r *WalletRepository) Get(ctx context.Context, id string) (*models.Transaction, error) {
	return r.getTx(ctx, r.db, id)
}

// Update rewrites a transaction row. Sync flags are monotonic: the store
// ORs them with the current values so a flag never resets to false.
func (r *WalletRepository) Update(ctx context.Context, txn *models.Transaction) error {
	query := `
		UPDATE transactions
		SET status = $1,
			note = $2,
			sender_synced = sender_synced OR $3,
			receiver_synced = receiver_synced OR $4
		WHERE id = $5
	`

	res, err := r.db.ExecContext(ctx, query,
		txn.Status, txn.Note,
		txn.SyncStatus.SenderSynced, txn.SyncStatus.ReceiverSynced, txn.ID)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return wallet.ErrTransactionNotFound
	}

	return nil
}

// Remove deletes a transaction by ID
func (r *WalletRepository) Remove(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to remove transaction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return wallet.ErrTransactionNotFound
	}

	return nil
}

// CountPending returns the number of transactions awaiting reconciliation
func (r *WalletRepository) CountPending(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE status = $1`, models.StatusPending).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending transactions: %w", err)
	}
	return count, nil
}

// Reserve moves funds from available to reserved in the local mirror
func (r *WalletRepository) Reserve(ctx context.Context, amount decimal.Decimal) error {
	return r.mutateBalance(ctx, func(available, reserved decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
		next := available.Sub(amount)
		if next.IsNegative() {
			return available, reserved, wallet.ErrInsufficientFunds
		}
		return next, reserved.Add(amount), nil
	})
}

// Release moves funds back from reserved to available
func (r *WalletRepository) Release(ctx context.Context, amount decimal.Decimal) error {
	return r.mutateBalance(ctx, func(available, reserved decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
		next := reserved.Sub(amount)
		if next.IsNegative() {
			return available, reserved, wallet.ErrInsufficientReserved
		}
		return available.Add(amount), next, nil
	})
}

// ApplyOfflineSpend debits reserved funds, clamping at zero rather than
// failing when the mirror is stale. Offline payments draw on the funds
// reserved for exactly that purpose; available is never touched here.
func (r *WalletRepository) ApplyOfflineSpend(ctx context.Context, amount decimal.Decimal) error {
	return r.mutateBalance(ctx, func(available, reserved decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
		next := reserved.Sub(amount)
		if next.IsNegative() {
			next = decimal.Zero
		}
		return available, next, nil
	})
}

// ApplyOfflineCredit credits available funds for an accepted incoming
// payment
func (r *WalletRepository) ApplyOfflineCredit(ctx context.Context, amount decimal.Decimal) error {
	return r.mutateBalance(ctx, func(available, reserved decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
		return available.Add(amount), reserved, nil
	})
}

// Snapshot returns the current local balance mirror
func (r *WalletRepository) Snapshot(ctx context.Context) (*models.AccountBalance, error) {
	var availableStr, reservedStr string
	err := r.db.QueryRowContext(ctx,
		`SELECT available, reserved FROM balance WHERE identity = $1`,
		r.cfg.Wallet.Identity).Scan(&availableStr, &reservedStr)
	if err != nil {
		return nil, fmt.Errorf("failed to read balance: %w", err)
	}

	available, err := decimal.NewFromString(availableStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt available balance: %w", err)
	}
	reserved, err := decimal.NewFromString(reservedStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt reserved balance: %w", err)
	}

	return &models.AccountBalance{
		Identity:  r.cfg.Wallet.Identity,
		Available: available,
		Reserved:  reserved,
	}, nil
}

// SetSnapshot overwrites the mirror with an authoritative remote balance
func (r *WalletRepository) SetSnapshot(ctx context.Context, balance *models.AccountBalance) error {
	query := `
		INSERT INTO balance (identity, available, reserved)
		VALUES ($1, $2, $3)
		ON CONFLICT (identity) DO UPDATE SET available = $2, reserved = $3
	`
	_, err := r.db.ExecContext(ctx, query,
		r.cfg.Wallet.Identity, balance.Available.String(), balance.Reserved.String())
	if err != nil {
		return fmt.Errorf("failed to write balance snapshot: %w", err)
	}
	return nil
}

// LastConnStatus returns the persisted connectivity status, defaulting to
// online when none was recorded
func (r *WalletRepository) LastConnStatus(ctx context.Context) (models.ConnStatus, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM device_state WHERE key = $1`, connStatusKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ConnOnline, nil
		}
		return "", fmt.Errorf("failed to read connectivity status: %w", err)
	}

	status := models.ConnStatus(value)
	if !status.Valid() {
		return models.ConnOnline, nil
	}
	return status, nil
}

// SetLastConnStatus persists the connectivity status
func (r *WalletRepository) SetLastConnStatus(ctx context.Context, status models.ConnStatus) error {
	query := `
		INSERT INTO device_state (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = $2
	`
	if _, err := r.db.ExecContext(ctx, query, connStatusKey, status); err != nil {
		return fmt.Errorf("failed to persist connectivity status: %w", err)
	}
	return nil
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

func (r *WalletRepository) getTx(ctx context.Context, q sqlx.QueryerContext, id string) (*models.Transaction, error) {
	query := `
		SELECT id, receipt_id, sender, recipient, amount, note,
			created_at, channel, status, sender_synced, receiver_synced
		FROM transactions
		WHERE id = $1
	`

	txn, err := scanTransaction(q.QueryRowxContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, wallet.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return txn, nil
}

// mutateBalance applies a read-modify-write to the balance row inside one
// SQLite transaction
func (r *WalletRepository) mutateBalance(ctx context.Context, mutate func(available, reserved decimal.Decimal) (decimal.Decimal, decimal.Decimal, error)) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var availableStr, reservedStr string
	err = tx.QueryRowContext(ctx,
		`SELECT available, reserved FROM balance WHERE identity = $1`,
		r.cfg.Wallet.Identity).Scan(&availableStr, &reservedStr)
	if err != nil {
		return fmt.Errorf("failed to read balance: %w", err)
	}

	available, err := decimal.NewFromString(availableStr)
	if err != nil {
		return fmt.Errorf("corrupt available balance: %w", err)
	}
	reserved, err := decimal.NewFromString(reservedStr)
	if err != nil {
		return fmt.Errorf("corrupt reserved balance: %w", err)
	}

	nextAvailable, nextReserved, err := mutate(available, reserved)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE balance SET available = $1, reserved = $2 WHERE identity = $3`,
		nextAvailable.String(), nextReserved.String(), r.cfg.Wallet.Identity)
	if err != nil {
		return fmt.Errorf("failed to write balance: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit balance update: %w", err)
	}

	return nil
}
