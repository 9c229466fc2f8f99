package wallet

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/NyashaEysenck/offline-wallet/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/NyashaEysenck/offline-wallet/services/wallet WalletRepo

// WalletRepo defines the interface for the device-local durable store:
// the transaction ledger, the balance mirror and the persisted device state
type WalletRepo interface {
	// Ledger operations. Append is idempotent on transaction ID and
	// returns the stored row; ListAll preserves insertion order.
	Append(ctx context.Context, txn *models.Transaction) (*models.Transaction, error)
	ListAll(ctx context.Context) ([]*models.Transaction, error)
	Get(ctx context.Context, id string) (*models.Transaction, error)
	Update(ctx context.Context, txn *models.Transaction) error
	Remove(ctx context.Context, id string) error
	CountPending(ctx context.Context) (int, error)

	// Balance mirror operations, each atomic
	Reserve(ctx context.Context, amount decimal.Decimal) error
	Release(ctx context.Context, amount decimal.Decimal) error
	ApplyOfflineSpend(ctx context.Context, amount decimal.Decimal) error
	ApplyOfflineCredit(ctx context.Context, amount decimal.Decimal) error
	Snapshot(ctx context.Context) (*models.AccountBalance, error)
	SetSnapshot(ctx context.Context, balance *models.AccountBalance) error

	// Device state
	LastConnStatus(ctx context.Context) (models.ConnStatus, error)
	SetLastConnStatus(ctx context.Context, status models.ConnStatus) error
}
