package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/NyashaEysenck/offline-wallet/internal/pkg/logger"
	"github.com/NyashaEysenck/offline-wallet/internal/pkg/models"
	"github.com/NyashaEysenck/offline-wallet/services/wallet"
	"github.com/NyashaEysenck/offline-wallet/services/wallet/payload"
)

// WalletUC implements the wallet business logic
type WalletUC struct {
	cfg    *models.Config
	repo   wallet.WalletRepo
	gw     wallet.WalletGW
	codec  *payload.Codec
	logger *logger.ZapLogger

	reconciler *reconciler
}

// NewWalletUC creates a new wallet usecase
func NewWalletUC(cfg *models.Config, repo wallet.WalletRepo, gw wallet.WalletGW, codec *payload.Codec, l *logger.ZapLogger) *WalletUC {
	uc := &WalletUC{
		cfg:    cfg,
		repo:   repo,
		gw:     gw,
		codec:  codec,
		logger: l,
	}
	uc.reconciler = newReconciler(uc)
	return uc
}

func (uc *WalletUC) identity() string {
	return uc.cfg.Wallet.Identity
}

// CreateOfflineIntent builds a payment intent from this wallet and encodes
// it for the given channel. Transaction and receipt IDs are assigned here,
// exactly once, and travel inside the payload.
func (uc *WalletUC) CreateOfflineIntent(ctx context.Context, recipient string, amount decimal.Decimal, note string, channel models.Channel) (string, error) {
	if recipient == "" {
		return "", fmt.Errorf("%w: recipient is required", payload.ErrMalformed)
	}
	if !amount.IsPositive() {
		return "", fmt.Errorf("%w: amount must be positive", payload.ErrMalformed)
	}
	if !channel.Valid() || channel == models.ChannelOnline {
		return "", fmt.Errorf("%w: %s", payload.ErrUnknownChannel, channel)
	}

	now := time.Now()
	intent := &models.PaymentIntent{
		TransactionID: "tx_" + uuid.New().String(),
		ReceiptID:     "rcpt_" + uuid.New().String(),
		Sender:        uc.identity(),
		Recipient:     recipient,
		Amount:        amount,
		Note:          note,
		Channel:       channel,
		CreatedAt:     now,
		ExpiresAt:     now.Add(models.DefaultIntentTTL),
	}

	encoded, err := uc.codec.Encode(intent, channel)
	if err != nil {
		return "", err
	}

	uc.logger.Info("Created offline payment intent",
		logger.String("transaction_id", intent.TransactionID),
		logger.String("recipient", recipient),
		logger.String("channel", string(channel)),
		logger.String("amount", amount.String()))

	return encoded, nil
}

// SendOfflinePayment records the payer's side of an offline payment. The
// payload is the one produced by CreateOfflineIntent; decoding it back
// keeps the identifiers identical on both devices. The local mirror is
// debited immediately, clamped at zero if it was stale.
func (uc *WalletUC) SendOfflinePayment(ctx context.Context, opaque string) (*models.Transaction, error) {
	intent, err := uc.codec.Decode(opaque)
	if err != nil {
		return nil, err
	}
	if intent.Sender != uc.identity() {
		return nil, fmt.Errorf("%w: payload was not created by this wallet", payload.ErrMalformed)
	}

	txn, created, err := uc.recordFromIntent(ctx, intent)
	if err != nil {
		return nil, err
	}

	if created {
		if err := uc.repo.ApplyOfflineSpend(ctx, txn.Amount); err != nil {
			uc.logger.Warn("Failed to debit local balance mirror",
				logger.Err(err),
				logger.String("transaction_id", txn.ID))
		}
		uc.logger.Info("Recorded outgoing offline payment",
			logger.String("transaction_id", txn.ID),
			logger.String("recipient", txn.Recipient),
			logger.String("amount", txn.Amount.String()))
	}

	return txn, nil
}

// AcceptOfflinePayload records the receiving side of an offline payment
// and credits the local mirror. Accepting the same payload twice is a
// no-op returning the stored transaction.
func (uc *WalletUC) AcceptOfflinePayload(ctx context.Context, opaque string) (*models.Transaction, error) {
	intent, err := uc.codec.Decode(opaque)
	if err != nil {
		return nil, err
	}
	if intent.Sender == "" {
		return nil, fmt.Errorf("%w: missing sender identity", payload.ErrMalformed)
	}

	txn, created, err := uc.recordFromIntent(ctx, intent)
	if err != nil {
		return nil, err
	}

	if created {
		if err := uc.repo.ApplyOfflineCredit(ctx, txn.Amount); err != nil {
			uc.logger.Warn("Failed to credit local balance mirror",
				logger.Err(err),
				logger.String("transaction_id", txn.ID))
		}
		uc.logger.Info("Accepted offline payment",
			logger.String("transaction_id", txn.ID),
			logger.String("sender", txn.Sender),
			logger.String("amount", txn.Amount.String()))
	}

	return txn, nil
}

// recordFromIntent appends the pending transaction for a decoded intent.
// The created flag tells callers whether balance effects should apply.
func (uc *WalletUC) recordFromIntent(ctx context.Context, intent *models.PaymentIntent) (*models.Transaction, bool, error) {
	txn := &models.Transaction{
		ID:        intent.TransactionID,
		ReceiptID: intent.ReceiptID,
		Sender:    intent.Sender,
		Recipient: intent.Recipient,
		Amount:    intent.Amount,
		Note:      intent.Note,
		CreatedAt: intent.CreatedAt,
		Channel:   intent.Channel,
		Status:    models.StatusPending,
	}
	if txn.ID == "" {
		txn.ID = "tx_" + uuid.New().String()
	}
	if txn.ReceiptID == "" {
		txn.ReceiptID = "rcpt_" + uuid.New().String()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now()
	}

	existing, err := uc.repo.Get(ctx, txn.ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, wallet.ErrTransactionNotFound) {
		return nil, false, err
	}

	stored, err := uc.repo.Append(ctx, txn)
	if err != nil {
		return nil, false, fmt.Errorf("failed to record transaction: %w", err)
	}

	return stored, true, nil
}

// ListTransactions returns the local ledger in insertion order
func (uc *WalletUC) ListTransactions(ctx context.Context) ([]*models.Transaction, error) {
	return uc.repo.ListAll(ctx)
}

// PendingCount returns how many transactions still await reconciliation
func (uc *WalletUC) PendingCount(ctx context.Context) (int, error) {
	return uc.repo.CountPending(ctx)
}

// Balance returns the authoritative remote balance when reachable,
// refreshing the local mirror; otherwise it serves the mirror.
func (uc *WalletUC) Balance(ctx context.Context) (*models.AccountBalance, error) {
	remote, err := uc.gw.GetBalance(ctx, uc.identity())
	if err != nil {
		if errors.Is(err, wallet.ErrLedgerUnreachable) {
			uc.logger.Debug("Serving balance from local mirror", logger.Err(err))
			return uc.repo.Snapshot(ctx)
		}
		return nil, err
	}

	if err := uc.repo.SetSnapshot(ctx, remote); err != nil {
		uc.logger.Warn("Failed to refresh balance mirror", logger.Err(err))
	}

	return remote, nil
}

// Reserve asks the remote ledger to reserve funds, then mirrors the
// result locally. Requires connectivity.
func (uc *WalletUC) Reserve(ctx context.Context, amount decimal.Decimal) (*models.AccountBalance, error) {
	return uc.remoteBalanceOp(ctx, "reserve", amount, uc.gw.Reserve, uc.repo.Reserve)
}

// Release returns reserved funds to the available bucket. Requires
// connectivity.
func (uc *WalletUC) Release(ctx context.Context, amount decimal.Decimal) (*models.AccountBalance, error) {
	return uc.remoteBalanceOp(ctx, "release", amount, uc.gw.Release, uc.repo.Release)
}

func (uc *WalletUC) remoteBalanceOp(ctx context.Context, op string, amount decimal.Decimal,
	call func(ctx context.Context, identity string, amount decimal.Decimal) (*models.AccountBalance, error),
	mirror func(ctx context.Context, amount decimal.Decimal) error) (*models.AccountBalance, error) {

	if !amount.IsPositive() {
		return nil, fmt.Errorf("%s amount must be positive", op)
	}

	balance, err := call(ctx, uc.identity(), amount)
	if err != nil {
		return nil, err
	}

	// Apply the same movement to the local mirror; a mirror too stale to
	// cover it is overwritten with the authoritative snapshot instead
	if err := mirror(ctx, amount); err != nil {
		if err := uc.repo.SetSnapshot(ctx, balance); err != nil {
			uc.logger.Warn("Failed to refresh balance mirror",
				logger.Err(err),
				logger.String("operation", op))
		}
	}

	return balance, nil
}

// Reconcile drains pending transactions to the remote ledger. At most one
// pass runs at a time; triggers arriving mid-pass coalesce into a single
// follow-up pass and return an empty result immediately.
func (uc *WalletUC) Reconcile(ctx context.Context) (*models.ReconcileResult, error) {
	return uc.reconciler.run(ctx)
}

// OnConnectivityChange is the monitor's edge listener. Regaining
// connectivity triggers a reconcile pass before the monitor records the
// new status.
func (uc *WalletUC) OnConnectivityChange(ctx context.Context, status models.ConnStatus) {
	uc.logger.Info("Connectivity status changed", logger.String("status", string(status)))

	if status != models.ConnOnline {
		return
	}

	result, err := uc.reconciler.run(ctx)
	if err != nil {
		uc.logger.Warn("Reconciliation after reconnect failed", logger.Err(err))
		return
	}

	uc.logger.Info("Reconciliation after reconnect finished",
		logger.Int("synced", result.Synced),
		logger.Int("still_pending", result.StillPending),
		logger.Int("conflicts", result.Conflicts),
		logger.Int("failed", result.Failed))
}
