package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/NyashaEysenck/offline-wallet/internal/pkg/logger"
	"github.com/NyashaEysenck/offline-wallet/internal/pkg/models"
	"github.com/NyashaEysenck/offline-wallet/services/wallet"
)

// reconciler serializes reconciliation passes. One pass in flight at a
// time; triggers arriving during a pass collapse into a single queued
// follow-up.
type reconciler struct {
	uc *WalletUC

	mu      sync.Mutex
	running bool
	queued  bool
}

func newReconciler(uc *WalletUC) *reconciler {
	return &reconciler{uc: uc}
}

// run executes one pass, or coalesces into the in-flight one
func (r *reconciler) run(ctx context.Context) (*models.ReconcileResult, error) {
	r.mu.Lock()
	if r.running {
		r.queued = true
		r.mu.Unlock()
		return &models.ReconcileResult{}, nil
	}
	r.running = true
	r.mu.Unlock()

	result, err := r.uc.drain(ctx)

	r.mu.Lock()
	r.running = false
	rerun := r.queued
	r.queued = false
	r.mu.Unlock()

	if rerun {
		go r.trigger(context.Background())
	}

	return result, err
}

// trigger fires a pass and logs instead of returning the result. Used for
// background follow-ups.
func (r *reconciler) trigger(ctx context.Context) {
	result, err := r.run(ctx)
	if err != nil {
		r.uc.logger.Debug("Background reconciliation stopped early", logger.Err(err))
		return
	}
	if result.Total() > 0 {
		r.uc.logger.Info("Background reconciliation finished",
			logger.Int("synced", result.Synced),
			logger.Int("still_pending", result.StillPending),
			logger.Int("conflicts", result.Conflicts),
			logger.Int("failed", result.Failed))
	}
}

// drain walks the local ledger in insertion order and submits every
// pending transaction. Each transaction is isolated: one failure never
// aborts the rest, except when the ledger is unreachable outright, which
// leaves the remainder pending and surfaces a single error.
func (uc *WalletUC) drain(ctx context.Context) (*models.ReconcileResult, error) {
	result := &models.ReconcileResult{}

	txns, err := uc.repo.ListAll(ctx)
	if err != nil {
		return result, err
	}

	var pending []*models.Transaction
	for _, txn := range txns {
		if txn.Status == models.StatusPending {
			pending = append(pending, txn)
		}
	}
	if len(pending) == 0 {
		return result, nil
	}

	uc.logger.Info("Reconciliation pass started", logger.Int("pending", len(pending)))

	var unreachable error
	for i, txn := range pending {
		if unreachable != nil {
			result.StillPending += len(pending) - i
			break
		}

		outcome, err := uc.submitOne(ctx, txn)
		switch {
		case err != nil && errors.Is(err, wallet.ErrLedgerUnreachable):
			// Distinguish one failed submission from a dead ledger: if
			// the health endpoint is down too, stop burning the batch
			result.StillPending++
			if healthErr := uc.gw.CheckHealth(ctx); healthErr != nil {
				unreachable = err
			}
		case err != nil:
			result.StillPending++
			uc.logger.Warn("Transaction reconciliation failed",
				logger.Err(err),
				logger.String("transaction_id", txn.ID))
		default:
			switch outcome {
			case models.OutcomeAccepted, models.OutcomeDuplicate:
				result.Synced++
			case models.OutcomeConflict:
				result.Conflicts++
			case models.OutcomeRejected:
				result.Failed++
			}
		}
	}

	if result.Synced > 0 {
		uc.refreshBalanceMirror(ctx)
	}

	uc.logger.Info("Reconciliation pass finished",
		logger.Int("synced", result.Synced),
		logger.Int("still_pending", result.StillPending),
		logger.Int("conflicts", result.Conflicts),
		logger.Int("failed", result.Failed))

	if unreachable != nil {
		return result, unreachable
	}
	return result, nil
}

// submitOne pushes a single transaction to the remote ledger and applies
// the outcome to the local row. Accepted and duplicate outcomes mark the
// transaction completed; once both parties have reported it, the local
// row is removed.
func (uc *WalletUC) submitOne(ctx context.Context, txn *models.Transaction) (models.CommitOutcome, error) {
	resp, err := uc.gw.CommitTransaction(ctx, &models.CommitRequest{
		ReceiptID:   txn.ReceiptID,
		Sender:      txn.Sender,
		Recipient:   txn.Recipient,
		Amount:      txn.Amount,
		Note:        txn.Note,
		CreatedAt:   txn.CreatedAt,
		Channel:     txn.Channel,
		SubmittedBy: uc.identity(),
	})
	if err != nil {
		return "", err
	}

	switch resp.Outcome {
	case models.OutcomeAccepted, models.OutcomeDuplicate:
		txn.Status = models.StatusCompleted
		txn.SyncStatus.SenderSynced = txn.SyncStatus.SenderSynced || resp.SyncStatus.SenderSynced
		txn.SyncStatus.ReceiverSynced = txn.SyncStatus.ReceiverSynced || resp.SyncStatus.ReceiverSynced

		if txn.SyncStatus.SenderSynced && txn.SyncStatus.ReceiverSynced {
			if err := uc.repo.Remove(ctx, txn.ID); err != nil {
				return resp.Outcome, err
			}
			uc.logger.Info("Transaction fully reconciled and pruned",
				logger.String("transaction_id", txn.ID),
				logger.String("receipt_id", txn.ReceiptID))
			return resp.Outcome, nil
		}

		if err := uc.repo.Update(ctx, txn); err != nil {
			return resp.Outcome, err
		}

	case models.OutcomeConflict:
		// Kept locally for manual resolution, never retried automatically
		txn.Status = models.StatusConflict
		if err := uc.repo.Update(ctx, txn); err != nil {
			return resp.Outcome, err
		}
		uc.logger.Warn("Transaction conflicts with the remote ledger",
			logger.String("transaction_id", txn.ID),
			logger.String("receipt_id", txn.ReceiptID),
			logger.String("message", resp.Message))

	case models.OutcomeRejected:
		txn.Status = models.StatusFailed
		if err := uc.repo.Update(ctx, txn); err != nil {
			return resp.Outcome, err
		}
		uc.logger.Warn("Transaction rejected by the remote ledger",
			logger.String("transaction_id", txn.ID),
			logger.String("message", resp.Message))
	}

	return resp.Outcome, nil
}

func (uc *WalletUC) refreshBalanceMirror(ctx context.Context) {
	remote, err := uc.gw.GetBalance(ctx, uc.identity())
	if err != nil {
		uc.logger.Debug("Balance refresh after reconciliation skipped", logger.Err(err))
		return
	}
	if err := uc.repo.SetSnapshot(ctx, remote); err != nil {
		uc.logger.Warn("Failed to refresh balance mirror", logger.Err(err))
	}
}
