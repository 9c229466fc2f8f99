package ledger

import (
	"context"

	"github.com/NyashaEysenck/offline-wallet/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/NyashaEysenck/offline-wallet/services/ledger LedgerGW

// LedgerGW defines the ledger gateways interface
type LedgerGW interface {
	PublishTransactionCommitted(ctx context.Context, event *models.TransactionCommittedEvent) error
}
