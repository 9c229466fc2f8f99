package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NyashaEysenck/offline-wallet/internal/pkg/logger"
	"github.com/NyashaEysenck/offline-wallet/internal/pkg/models"
	"github.com/NyashaEysenck/offline-wallet/services/wallet"
	"github.com/NyashaEysenck/offline-wallet/services/wallet/mocks"
	"github.com/NyashaEysenck/offline-wallet/services/wallet/payload"
)

type ucFixture struct {
	uc    *WalletUC
	repo  *mocks.MockWalletRepo
	gw    *mocks.MockWalletGW
	codec *payload.Codec
}

func newFixture(t *testing.T) *ucFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockWalletRepo(ctrl)
	gw := mocks.NewMockWalletGW(ctrl)

	cfg := &models.Config{}
	cfg.Wallet.Identity = "alice"
	cfg.Channels = models.ChannelsConfig{
		QR:        models.ChannelProfile{Secret: "qr-secret", Salt: "qr-salt"},
		NFC:       models.ChannelProfile{Secret: "nfc-secret", Salt: "nfc-salt"},
		Bluetooth: models.ChannelProfile{Secret: "bt-secret", Salt: "bt-salt"},
	}

	l, err := logger.NewZapLogger(logger.Config{Level: "error"})
	require.NoError(t, err)

	codec := payload.NewCodec(cfg.Channels)

	return &ucFixture{
		uc:    NewWalletUC(cfg, repo, gw, codec, l),
		repo:  repo,
		gw:    gw,
		codec: codec,
	}
}

func notFound() error { return wallet.ErrTransactionNotFound }

func TestWalletUC_CreateOfflineIntent(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	opaque, err := f.uc.CreateOfflineIntent(context.Background(), "bob", decimal.NewFromInt(15), "lunch", models.ChannelQR)

	// Assert
	require.NoError(t, err)
	intent, err := f.codec.Decode(opaque)
	require.NoError(t, err)
	assert.Equal(t, "alice", intent.Sender)
	assert.Equal(t, "bob", intent.Recipient)
	assert.True(t, intent.Amount.Equal(decimal.NewFromInt(15)))
	assert.Contains(t, intent.TransactionID, "tx_")
	assert.Contains(t, intent.ReceiptID, "rcpt_")
	assert.WithinDuration(t, time.Now().Add(models.DefaultIntentTTL), intent.ExpiresAt, 5*time.Second)
}

func TestWalletUC_CreateOfflineIntent_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateOfflineIntent(ctx, "", decimal.NewFromInt(1), "", models.ChannelQR)
	assert.ErrorIs(t, err, payload.ErrMalformed)

	_, err = f.uc.CreateOfflineIntent(ctx, "bob", decimal.Zero, "", models.ChannelQR)
	assert.ErrorIs(t, err, payload.ErrMalformed)

	_, err = f.uc.CreateOfflineIntent(ctx, "bob", decimal.NewFromInt(1), "", models.ChannelOnline)
	assert.ErrorIs(t, err, payload.ErrUnknownChannel)
}

func TestWalletUC_SendOfflinePayment(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := context.Background()
	opaque, err := f.uc.CreateOfflineIntent(ctx, "bob", decimal.NewFromInt(15), "", models.ChannelNFC)
	require.NoError(t, err)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, notFound())
	f.repo.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
			assert.Equal(t, "alice", txn.Sender)
			assert.Equal(t, "bob", txn.Recipient)
			assert.Equal(t, models.StatusPending, txn.Status)
			return txn, nil
		})
	f.repo.EXPECT().ApplyOfflineSpend(gomock.Any(), decimal.NewFromInt(15)).Return(nil)

	// Act
	txn, err := f.uc.SendOfflinePayment(ctx, opaque)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, txn.Status)
	assert.Equal(t, models.ChannelNFC, txn.Channel)
}

func TestWalletUC_SendOfflinePayment_RejectsForeignPayload(t *testing.T) {
	// Arrange: a payload some other wallet created
	f := newFixture(t)
	intent := &models.PaymentIntent{
		TransactionID: "tx_x",
		ReceiptID:     "rcpt_x",
		Sender:        "mallory",
		Recipient:     "alice",
		Amount:        decimal.NewFromInt(5),
		Channel:       models.ChannelQR,
	}
	opaque, err := f.codec.Encode(intent, models.ChannelQR)
	require.NoError(t, err)

	// Act
	_, err = f.uc.SendOfflinePayment(context.Background(), opaque)

	// Assert
	assert.ErrorIs(t, err, payload.ErrMalformed)
}

func TestWalletUC_SendOfflinePayment_IdempotentOnRescan(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := context.Background()
	opaque, err := f.uc.CreateOfflineIntent(ctx, "bob", decimal.NewFromInt(15), "", models.ChannelQR)
	require.NoError(t, err)

	stored := &models.Transaction{ID: "tx_stored", Status: models.StatusPending}
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
	// No Append, no ApplyOfflineSpend: the balance effect must not repeat

	// Act
	txn, err := f.uc.SendOfflinePayment(ctx, opaque)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, stored, txn)
}

func TestWalletUC_AcceptOfflinePayload(t *testing.T) {
	// Arrange: bob's wallet receives alice's payload; the fixture identity
	// is alice, so encode a payload addressed to alice instead
	f := newFixture(t)
	intent := &models.PaymentIntent{
		TransactionID: "tx_in",
		ReceiptID:     "rcpt_in",
		Sender:        "bob",
		Recipient:     "alice",
		Amount:        decimal.RequireFromString("7.25"),
		Channel:       models.ChannelBluetooth,
	}
	opaque, err := f.codec.Encode(intent, models.ChannelBluetooth)
	require.NoError(t, err)

	f.repo.EXPECT().Get(gomock.Any(), "tx_in").Return(nil, notFound())
	f.repo.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
			assert.Equal(t, "rcpt_in", txn.ReceiptID)
			return txn, nil
		})
	f.repo.EXPECT().ApplyOfflineCredit(gomock.Any(), decimal.RequireFromString("7.25")).Return(nil)

	// Act
	txn, err := f.uc.AcceptOfflinePayload(context.Background(), opaque)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "tx_in", txn.ID)
	assert.Equal(t, models.StatusPending, txn.Status)
}

func TestWalletUC_AcceptOfflinePayload_MissingSender(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.AcceptOfflinePayload(context.Background(), `{"recipient":"alice","amount":"5.00"}`)

	assert.ErrorIs(t, err, payload.ErrMalformed)
}

func TestWalletUC_AcceptOfflinePayload_PropagatesDecodeErrors(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.AcceptOfflinePayload(context.Background(), "garbage")
	assert.ErrorIs(t, err, payload.ErrMalformed)

	expired := &models.PaymentIntent{
		Sender:    "bob",
		Recipient: "alice",
		Amount:    decimal.NewFromInt(1),
		Channel:   models.ChannelQR,
		CreatedAt: time.Now().Add(-10 * time.Minute),
		ExpiresAt: time.Now().Add(-5 * time.Minute),
	}
	opaque, err := f.codec.Encode(expired, models.ChannelQR)
	require.NoError(t, err)

	_, err = f.uc.AcceptOfflinePayload(context.Background(), opaque)
	assert.ErrorIs(t, err, payload.ErrExpired)
}

func pendingTxn(id string, amount int64) *models.Transaction {
	return &models.Transaction{
		ID:        id,
		ReceiptID: "rcpt_" + id,
		Sender:    "alice",
		Recipient: "bob",
		Amount:    decimal.NewFromInt(amount),
		CreatedAt: time.Now(),
		Channel:   models.ChannelQR,
		Status:    models.StatusPending,
	}
}

func TestWalletUC_Reconcile_MixedOutcomes(t *testing.T) {
	// Arrange: four pending rows, one per outcome
	f := newFixture(t)
	ctx := context.Background()

	accepted := pendingTxn("tx_1", 10)
	duplicate := pendingTxn("tx_2", 20)
	conflicted := pendingTxn("tx_3", 30)
	rejected := pendingTxn("tx_4", 40)
	settled := pendingTxn("tx_5", 50)
	settled.Status = models.StatusCompleted

	f.repo.EXPECT().ListAll(gomock.Any()).Return(
		[]*models.Transaction{accepted, duplicate, conflicted, rejected, settled}, nil)

	f.gw.EXPECT().CommitTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, req *models.CommitRequest) (*models.CommitResponse, error) {
			assert.Equal(t, "alice", req.SubmittedBy)
			switch req.ReceiptID {
			case accepted.ReceiptID:
				return &models.CommitResponse{Outcome: models.OutcomeAccepted,
					SyncStatus: models.SyncStatus{SenderSynced: true}}, nil
			case duplicate.ReceiptID:
				return &models.CommitResponse{Outcome: models.OutcomeDuplicate,
					SyncStatus: models.SyncStatus{SenderSynced: true, ReceiverSynced: true}}, nil
			case conflicted.ReceiptID:
				return &models.CommitResponse{Outcome: models.OutcomeConflict}, nil
			default:
				return &models.CommitResponse{Outcome: models.OutcomeRejected}, nil
			}
		}).Times(4)

	// Accepted with one flag: completed locally. Duplicate with both
	// flags: pruned. Conflict and rejection update in place.
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, txn *models.Transaction) error {
			switch txn.ID {
			case accepted.ID:
				assert.Equal(t, models.StatusCompleted, txn.Status)
				assert.True(t, txn.SyncStatus.SenderSynced)
			case conflicted.ID:
				assert.Equal(t, models.StatusConflict, txn.Status)
			case rejected.ID:
				assert.Equal(t, models.StatusFailed, txn.Status)
			default:
				t.Errorf("unexpected update for %s", txn.ID)
			}
			return nil
		}).Times(3)
	f.repo.EXPECT().Remove(gomock.Any(), duplicate.ID).Return(nil)

	f.gw.EXPECT().GetBalance(gomock.Any(), "alice").Return(
		&models.AccountBalance{Identity: "alice", Available: decimal.NewFromInt(70)}, nil)
	f.repo.EXPECT().SetSnapshot(gomock.Any(), gomock.Any()).Return(nil)

	// Act
	result, err := f.uc.Reconcile(ctx)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, result.Synced)
	assert.Equal(t, 1, result.Conflicts)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 0, result.StillPending)
}

func TestWalletUC_Reconcile_TotalUnreachabilityShortCircuits(t *testing.T) {
	// Arrange: three pending rows, ledger fully down
	f := newFixture(t)

	f.repo.EXPECT().ListAll(gomock.Any()).Return(
		[]*models.Transaction{pendingTxn("tx_1", 1), pendingTxn("tx_2", 2), pendingTxn("tx_3", 3)}, nil)

	// Only the first transaction is attempted
	f.gw.EXPECT().CommitTransaction(gomock.Any(), gomock.Any()).
		Return(nil, wallet.ErrLedgerUnreachable).Times(1)
	f.gw.EXPECT().CheckHealth(gomock.Any()).Return(wallet.ErrLedgerUnreachable)

	// Act
	result, err := f.uc.Reconcile(context.Background())

	// Assert
	assert.ErrorIs(t, err, wallet.ErrLedgerUnreachable)
	assert.Equal(t, 3, result.StillPending)
	assert.Equal(t, 0, result.Synced)
}

func TestWalletUC_Reconcile_IsolatedFailureContinues(t *testing.T) {
	// Arrange: first commit times out but the ledger is alive, second
	// commit succeeds
	f := newFixture(t)

	first := pendingTxn("tx_1", 1)
	second := pendingTxn("tx_2", 2)
	f.repo.EXPECT().ListAll(gomock.Any()).Return([]*models.Transaction{first, second}, nil)

	f.gw.EXPECT().CommitTransaction(gomock.Any(), gomock.Any()).
		Return(nil, wallet.ErrLedgerUnreachable)
	f.gw.EXPECT().CheckHealth(gomock.Any()).Return(nil)
	f.gw.EXPECT().CommitTransaction(gomock.Any(), gomock.Any()).Return(
		&models.CommitResponse{Outcome: models.OutcomeAccepted,
			SyncStatus: models.SyncStatus{SenderSynced: true}}, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	f.gw.EXPECT().GetBalance(gomock.Any(), "alice").Return(
		&models.AccountBalance{Identity: "alice"}, nil)
	f.repo.EXPECT().SetSnapshot(gomock.Any(), gomock.Any()).Return(nil)

	// Act
	result, err := f.uc.Reconcile(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, result.StillPending)
	assert.Equal(t, 1, result.Synced)
}

func TestWalletUC_Reconcile_NothingPending(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().ListAll(gomock.Any()).Return(nil, nil)

	result, err := f.uc.Reconcile(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, result.Total())
}

func TestWalletUC_Reconcile_CoalescesConcurrentTriggers(t *testing.T) {
	// Arrange: the first pass blocks inside ListAll; a second trigger
	// arriving mid-pass returns immediately and queues one follow-up
	f := newFixture(t)

	entered := make(chan struct{})
	release := make(chan struct{})
	followup := make(chan struct{})

	gomock.InOrder(
		f.repo.EXPECT().ListAll(gomock.Any()).DoAndReturn(
			func(ctx context.Context) ([]*models.Transaction, error) {
				close(entered)
				<-release
				return nil, nil
			}),
		f.repo.EXPECT().ListAll(gomock.Any()).DoAndReturn(
			func(ctx context.Context) ([]*models.Transaction, error) {
				close(followup)
				return nil, nil
			}),
	)

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		_, err := f.uc.Reconcile(context.Background())
		assert.NoError(t, err)
	}()
	<-entered

	// Act: trigger while the first pass is in flight
	result, err := f.uc.Reconcile(context.Background())

	// Assert: coalesced trigger returns an empty result right away
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total())

	close(release)
	<-firstDone

	select {
	case <-followup:
	case <-time.After(2 * time.Second):
		t.Fatal("queued follow-up pass never ran")
	}
}

func TestWalletUC_Balance_FallsBackToMirrorWhenOffline(t *testing.T) {
	// Arrange
	f := newFixture(t)
	mirror := &models.AccountBalance{Identity: "alice", Available: decimal.NewFromInt(42)}

	f.gw.EXPECT().GetBalance(gomock.Any(), "alice").Return(nil, wallet.ErrLedgerUnreachable)
	f.repo.EXPECT().Snapshot(gomock.Any()).Return(mirror, nil)

	// Act
	balance, err := f.uc.Balance(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, mirror, balance)
}

func TestWalletUC_Balance_RefreshesMirrorWhenOnline(t *testing.T) {
	f := newFixture(t)
	remote := &models.AccountBalance{Identity: "alice", Available: decimal.NewFromInt(99)}

	f.gw.EXPECT().GetBalance(gomock.Any(), "alice").Return(remote, nil)
	f.repo.EXPECT().SetSnapshot(gomock.Any(), remote).Return(nil)

	balance, err := f.uc.Balance(context.Background())

	require.NoError(t, err)
	assert.Equal(t, remote, balance)
}

func TestWalletUC_ReserveAndRelease(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := context.Background()
	after := &models.AccountBalance{Identity: "alice", Available: decimal.NewFromInt(80), Reserved: decimal.NewFromInt(20)}

	f.gw.EXPECT().Reserve(gomock.Any(), "alice", decimal.NewFromInt(20)).Return(after, nil)
	f.repo.EXPECT().Reserve(gomock.Any(), decimal.NewFromInt(20)).Return(nil)

	// Act / Assert
	balance, err := f.uc.Reserve(ctx, decimal.NewFromInt(20))
	require.NoError(t, err)
	assert.Equal(t, after, balance)

	_, err = f.uc.Reserve(ctx, decimal.Zero)
	assert.Error(t, err)

	f.gw.EXPECT().Release(gomock.Any(), "alice", decimal.NewFromInt(20)).Return(nil, wallet.ErrLedgerUnreachable)
	_, err = f.uc.Release(ctx, decimal.NewFromInt(20))
	assert.ErrorIs(t, err, wallet.ErrLedgerUnreachable)
}

func TestWalletUC_Reserve_StaleMirrorAdoptsSnapshot(t *testing.T) {
	// Arrange: the local mirror cannot cover the movement, so the
	// authoritative snapshot replaces it
	f := newFixture(t)
	after := &models.AccountBalance{Identity: "alice", Available: decimal.NewFromInt(80), Reserved: decimal.NewFromInt(20)}

	f.gw.EXPECT().Reserve(gomock.Any(), "alice", decimal.NewFromInt(20)).Return(after, nil)
	f.repo.EXPECT().Reserve(gomock.Any(), decimal.NewFromInt(20)).Return(wallet.ErrInsufficientFunds)
	f.repo.EXPECT().SetSnapshot(gomock.Any(), after).Return(nil)

	// Act
	balance, err := f.uc.Reserve(context.Background(), decimal.NewFromInt(20))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, after, balance)
}

func TestWalletUC_OnConnectivityChange_ReconcilesOnReconnect(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.repo.EXPECT().ListAll(gomock.Any()).Return(nil, nil)

	// Act: only the online edge triggers a pass
	f.uc.OnConnectivityChange(context.Background(), models.ConnOffline)
	f.uc.OnConnectivityChange(context.Background(), models.ConnOnline)
}
