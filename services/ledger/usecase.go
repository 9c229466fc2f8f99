package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/NyashaEysenck/offline-wallet/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/NyashaEysenck/offline-wallet/services/ledger LedgerUC

// LedgerUC defines the interface for ledger business logic
type LedgerUC interface {
	Commit(ctx context.Context, req *models.CommitRequest) (*models.CommitResponse, error)
	GetTransaction(ctx context.Context, receiptID string) (*models.Transaction, error)
	ListTransactions(ctx context.Context, identity string) ([]*models.Transaction, error)

	GetBalance(ctx context.Context, identity string) (*models.AccountBalance, error)
	Reserve(ctx context.Context, identity string, amount decimal.Decimal) (*models.AccountBalance, error)
	Release(ctx context.Context, identity string, amount decimal.Decimal) (*models.AccountBalance, error)
	Deposit(ctx context.Context, identity string, amount decimal.Decimal) (*models.AccountBalance, error)
}
