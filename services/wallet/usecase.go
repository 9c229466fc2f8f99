package wallet

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/NyashaEysenck/offline-wallet/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/NyashaEysenck/offline-wallet/services/wallet WalletUC

// WalletUC defines the interface for wallet business logic
type WalletUC interface {
	// Offline payment flow
	CreateOfflineIntent(ctx context.Context, recipient string, amount decimal.Decimal, note string, channel models.Channel) (string, error)
	SendOfflinePayment(ctx context.Context, payload string) (*models.Transaction, error)
	AcceptOfflinePayload(ctx context.Context, payload string) (*models.Transaction, error)

	// Local ledger queries
	ListTransactions(ctx context.Context) ([]*models.Transaction, error)
	PendingCount(ctx context.Context) (int, error)

	// Balance operations (remote-authoritative)
	Balance(ctx context.Context) (*models.AccountBalance, error)
	Reserve(ctx context.Context, amount decimal.Decimal) (*models.AccountBalance, error)
	Release(ctx context.Context, amount decimal.Decimal) (*models.AccountBalance, error)

	// Reconciliation
	Reconcile(ctx context.Context) (*models.ReconcileResult, error)
	OnConnectivityChange(ctx context.Context, status models.ConnStatus)
}
