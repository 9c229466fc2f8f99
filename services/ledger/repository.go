package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/NyashaEysenck/offline-wallet/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/NyashaEysenck/offline-wallet/services/ledger LedgerRepo,ReceiptCache

// LedgerRepo defines the interface for the authoritative transaction and
// balance store
type LedgerRepo interface {
	// CreateIfAbsent commits a transaction exactly once per receipt ID,
	// applying balance effects atomically with the insert. A resubmission
	// with identical core fields is a duplicate; with different fields a
	// conflict. Neither has balance effects.
	CreateIfAbsent(ctx context.Context, txn *models.Transaction, submittedBy string) (*models.CommitResponse, error)
	GetByReceiptID(ctx context.Context, receiptID string) (*models.Transaction, error)
	ListByIdentity(ctx context.Context, identity string) ([]*models.Transaction, error)

	GetBalance(ctx context.Context, identity string) (*models.AccountBalance, error)
	Reserve(ctx context.Context, identity string, amount decimal.Decimal) (*models.AccountBalance, error)
	Release(ctx context.Context, identity string, amount decimal.Decimal) (*models.AccountBalance, error)
	Deposit(ctx context.Context, identity string, amount decimal.Decimal) (*models.AccountBalance, error)
}

// ReceiptCache is the fast path for repeated commit submissions. Entries
// are TTL-bounded; the transactional store stays the source of truth, so a
// miss or a mismatched fingerprint just falls through.
type ReceiptCache interface {
	GetResponse(ctx context.Context, receiptID, submittedBy, fingerprint string) (*models.CommitResponse, error)
	StoreResponse(ctx context.Context, receiptID, submittedBy, fingerprint string, resp *models.CommitResponse) error
}
