package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/NyashaEysenck/offline-wallet/internal/pkg/logger"
	"github.com/NyashaEysenck/offline-wallet/internal/pkg/models"
	"github.com/NyashaEysenck/offline-wallet/services/ledger"
)

// LedgerUC implements the ledger business logic
type LedgerUC struct {
	cfg    *models.Config
	repo   ledger.LedgerRepo
	cache  ledger.ReceiptCache
	gw     ledger.LedgerGW
	logger *logger.ZapLogger
}

// NewLedgerUC creates a new ledger usecase
func NewLedgerUC(cfg *models.Config, repo ledger.LedgerRepo, cache ledger.ReceiptCache, gw ledger.LedgerGW, l *logger.ZapLogger) *LedgerUC {
	return &LedgerUC{
		cfg:    cfg,
		repo:   repo,
		cache:  cache,
		gw:     gw,
		logger: l,
	}
}

// Commit settles a submitted transaction exactly once per receipt ID.
// Identical resubmissions are duplicates served from the receipt cache
// when possible; divergent resubmissions are conflicts. Accepted commits
// publish a committed event.
func (uc *LedgerUC) Commit(ctx context.Context, req *models.CommitRequest) (*models.CommitResponse, error) {
	if msg := validateCommit(req); msg != "" {
		uc.logger.Warn("Rejected invalid commit request",
			logger.String("receipt_id", req.ReceiptID),
			logger.String("reason", msg))
		return &models.CommitResponse{
			Outcome:   models.OutcomeRejected,
			ReceiptID: req.ReceiptID,
			Message:   msg,
		}, nil
	}

	fingerprint := commitFingerprint(req)

	if cached, err := uc.cache.GetResponse(ctx, req.ReceiptID, req.SubmittedBy, fingerprint); err != nil {
		uc.logger.Warn("Receipt cache read failed", logger.Err(err))
	} else if cached != nil {
		uc.logger.Debug("Commit served from receipt cache",
			logger.String("receipt_id", req.ReceiptID),
			logger.String("submitted_by", req.SubmittedBy))
		return cached, nil
	}

	createdAt := req.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	channel := req.Channel
	if !channel.Valid() {
		channel = models.ChannelOnline
	}

	txn := &models.Transaction{
		ID:        "tx_" + uuid.New().String(),
		ReceiptID: req.ReceiptID,
		Sender:    req.Sender,
		Recipient: req.Recipient,
		Amount:    req.Amount,
		Note:      req.Note,
		CreatedAt: createdAt,
		Channel:   channel,
	}

	resp, err := uc.repo.CreateIfAbsent(ctx, txn, req.SubmittedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if err := uc.cache.StoreResponse(ctx, req.ReceiptID, req.SubmittedBy, fingerprint, resp); err != nil {
		uc.logger.Warn("Receipt cache write failed", logger.Err(err))
	}

	if resp.Outcome == models.OutcomeAccepted {
		event := &models.TransactionCommittedEvent{
			ReceiptID: req.ReceiptID,
			Sender:    req.Sender,
			Recipient: req.Recipient,
			Amount:    req.Amount,
			Channel:   channel,
			Timestamp: time.Now(),
		}
		if err := uc.gw.PublishTransactionCommitted(ctx, event); err != nil {
			uc.logger.Warn("Failed to publish committed event",
				logger.Err(err),
				logger.String("receipt_id", req.ReceiptID))
		}
	}

	uc.logger.Info("Commit processed",
		logger.String("receipt_id", req.ReceiptID),
		logger.String("submitted_by", req.SubmittedBy),
		logger.String("outcome", string(resp.Outcome)))

	return resp, nil
}

func validateCommit(req *models.CommitRequest) string {
	switch {
	case req.ReceiptID == "":
		return "receipt_id is required"
	case req.Sender == "":
		return "sender is required"
	case req.Recipient == "":
		return "recipient is required"
	case req.Sender == req.Recipient:
		return "sender and recipient must differ"
	case !req.Amount.IsPositive():
		return "amount must be positive"
	case req.SubmittedBy != req.Sender && req.SubmittedBy != req.Recipient:
		return "submitted_by must be a party to the transaction"
	}
	return ""
}

func commitFingerprint(req *models.CommitRequest) string {
	return fmt.Sprintf("%s|%s|%s", req.Sender, req.Recipient, req.Amount.String())
}

// GetTransaction retrieves a committed transaction by receipt ID
func (uc *LedgerUC) GetTransaction(ctx context.Context, receiptID string) (*models.Transaction, error) {
	return uc.repo.GetByReceiptID(ctx, receiptID)
}

// ListTransactions returns all transactions an identity participates in
func (uc *LedgerUC) ListTransactions(ctx context.Context, identity string) ([]*models.Transaction, error) {
	return uc.repo.ListByIdentity(ctx, identity)
}

// GetBalance returns an identity's balance
func (uc *LedgerUC) GetBalance(ctx context.Context, identity string) (*models.AccountBalance, error) {
	return uc.repo.GetBalance(ctx, identity)
}

// Reserve moves available funds into the reserved bucket
func (uc *LedgerUC) Reserve(ctx context.Context, identity string, amount decimal.Decimal) (*models.AccountBalance, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: reserve amount must be positive", ledger.ErrInvalidCommit)
	}
	return uc.repo.Reserve(ctx, identity, amount)
}

// Release returns reserved funds to the available bucket
func (uc *LedgerUC) Release(ctx context.Context, identity string, amount decimal.Decimal) (*models.AccountBalance, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: release amount must be positive", ledger.ErrInvalidCommit)
	}
	return uc.repo.Release(ctx, identity, amount)
}

// Deposit credits available funds, creating the account on first use
func (uc *LedgerUC) Deposit(ctx context.Context, identity string, amount decimal.Decimal) (*models.AccountBalance, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: deposit amount must be positive", ledger.ErrInvalidCommit)
	}
	return uc.repo.Deposit(ctx, identity, amount)
}
