package wallet

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/NyashaEysenck/offline-wallet/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/NyashaEysenck/offline-wallet/services/wallet WalletGW

// WalletGW defines the wallet gateways interface to the remote ledger
type WalletGW interface {
	CommitTransaction(ctx context.Context, req *models.CommitRequest) (*models.CommitResponse, error)
	GetBalance(ctx context.Context, identity string) (*models.AccountBalance, error)
	Reserve(ctx context.Context, identity string, amount decimal.Decimal) (*models.AccountBalance, error)
	Release(ctx context.Context, identity string, amount decimal.Decimal) (*models.AccountBalance, error)
	CheckHealth(ctx context.Context) error
}
