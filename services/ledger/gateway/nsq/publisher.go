package nsq

import (
	"context"
	"fmt"

	nsqpkg "github.com/NyashaEysenck/offline-wallet/internal/pkg/nsq"
	"github.com/NyashaEysenck/offline-wallet/internal/pkg/models"
)

// TopicTransactionCommitted carries events for every accepted commit
const TopicTransactionCommitted = "wallet.transactions.committed"

// LedgerGateway publishes ledger events to NSQ
type LedgerGateway struct {
	producer *nsqpkg.Producer
}

// NewLedgerGateway creates a new NSQ gateway for the ledger service
func NewLedgerGateway(producer *nsqpkg.Producer) *LedgerGateway {
	return &LedgerGateway{producer: producer}
}

// PublishTransactionCommitted announces an accepted commit to downstream
// consumers. A nil producer means event publishing is disabled.
func (g *LedgerGateway) PublishTransactionCommitted(ctx context.Context, event *models.TransactionCommittedEvent) error {
	if g.producer == nil {
		return nil
	}
	if err := g.producer.Publish(TopicTransactionCommitted, event); err != nil {
		return fmt.Errorf("failed to publish committed event: %w", err)
	}
	return nil
}
