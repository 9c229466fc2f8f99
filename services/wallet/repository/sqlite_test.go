package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NyashaEysenck/offline-wallet/internal/pkg/database"
	"github.com/NyashaEysenck/offline-wallet/internal/pkg/models"
	"github.com/NyashaEysenck/offline-wallet/services/wallet"
)

func newTestRepo(t *testing.T) *WalletRepository {
	t.Helper()

	client, err := database.NewSQLiteClient(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	cfg := &models.Config{}
	cfg.Wallet.Identity = "alice"

	repo, err := NewWalletRepository(cfg, client)
	require.NoError(t, err)
	return repo
}

func newTestTransaction(sender, recipient string, amount string) *models.Transaction {
	return &models.Transaction{
		ID:        "tx_" + uuid.New().String(),
		ReceiptID: "rcpt_" + uuid.New().String(),
		Sender:    sender,
		Recipient: recipient,
		Amount:    decimal.RequireFromString(amount),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Channel:   models.ChannelQR,
		Status:    models.StatusPending,
	}
}

func TestWalletRepository_AppendIsIdempotent(t *testing.T) {
	// Arrange
	repo := newTestRepo(t)
	ctx := context.Background()
	txn := newTestTransaction("alice", "bob", "15.00")

	// Act
	first, err := repo.Append(ctx, txn)
	require.NoError(t, err)

	// A second append of the same ID must not duplicate or error
	dup := *txn
	dup.Note = "mutated copy"
	second, err := repo.Append(ctx, &dup)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, first.ID, second.ID)
	assert.Empty(t, second.Note, "stored row wins over the retried copy")

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestWalletRepository_ListAllPreservesInsertionOrder(t *testing.T) {
	// Arrange
	repo := newTestRepo(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 5; i++ {
		txn := newTestTransaction("alice", "bob", "1.00")
		_, err := repo.Append(ctx, txn)
		require.NoError(t, err)
		ids = append(ids, txn.ID)
	}

	// Act
	all, err := repo.ListAll(ctx)

	// Assert
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i, txn := range all {
		assert.Equal(t, ids[i], txn.ID)
	}
}

func TestWalletRepository_UpdateKeepsSyncFlagsMonotonic(t *testing.T) {
	// Arrange
	repo := newTestRepo(t)
	ctx := context.Background()
	txn := newTestTransaction("alice", "bob", "5.00")
	_, err := repo.Append(ctx, txn)
	require.NoError(t, err)

	txn.Status = models.StatusCompleted
	txn.SyncStatus.SenderSynced = true
	require.NoError(t, repo.Update(ctx, txn))

	// Act: an update attempting to clear the flag
	txn.SyncStatus.SenderSynced = false
	require.NoError(t, repo.Update(ctx, txn))

	// Assert
	stored, err := repo.Get(ctx, txn.ID)
	require.NoError(t, err)
	assert.True(t, stored.SyncStatus.SenderSynced, "sync flag must never reset")
	assert.Equal(t, models.StatusCompleted, stored.Status)
}

func TestWalletRepository_UpdateMissingTransaction(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.Update(context.Background(), newTestTransaction("alice", "bob", "1.00"))

	assert.ErrorIs(t, err, wallet.ErrTransactionNotFound)
}

func TestWalletRepository_RemoveAndCountPending(t *testing.T) {
	// Arrange
	repo := newTestRepo(t)
	ctx := context.Background()

	pending := newTestTransaction("alice", "bob", "2.00")
	completed := newTestTransaction("alice", "carol", "3.00")
	completed.Status = models.StatusCompleted
	_, err := repo.Append(ctx, pending)
	require.NoError(t, err)
	_, err = repo.Append(ctx, completed)
	require.NoError(t, err)

	count, err := repo.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Act
	require.NoError(t, repo.Remove(ctx, pending.ID))

	// Assert
	count, err = repo.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = repo.Get(ctx, pending.ID)
	assert.ErrorIs(t, err, wallet.ErrTransactionNotFound)

	err = repo.Remove(ctx, pending.ID)
	assert.ErrorIs(t, err, wallet.ErrTransactionNotFound)
}

func TestWalletRepository_ReserveRelease(t *testing.T) {
	// Arrange
	repo := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.SetSnapshot(ctx, &models.AccountBalance{
		Available: decimal.NewFromInt(100),
		Reserved:  decimal.Zero,
	}))

	// Act
	require.NoError(t, repo.Reserve(ctx, decimal.NewFromInt(20)))

	// Assert
	snap, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Available.Equal(decimal.NewFromInt(80)))
	assert.True(t, snap.Reserved.Equal(decimal.NewFromInt(20)))

	// Release restores the prior state
	require.NoError(t, repo.Release(ctx, decimal.NewFromInt(20)))
	snap, err = repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Available.Equal(decimal.NewFromInt(100)))
	assert.True(t, snap.Reserved.IsZero())
}

func TestWalletRepository_ReserveInsufficientFunds(t *testing.T) {
	// Arrange
	repo := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.SetSnapshot(ctx, &models.AccountBalance{
		Available: decimal.NewFromInt(10),
		Reserved:  decimal.Zero,
	}))

	// Act
	err := repo.Reserve(ctx, decimal.NewFromInt(11))

	// Assert: balance untouched on failure
	assert.ErrorIs(t, err, wallet.ErrInsufficientFunds)
	snap, snapErr := repo.Snapshot(ctx)
	require.NoError(t, snapErr)
	assert.True(t, snap.Available.Equal(decimal.NewFromInt(10)))
	assert.True(t, snap.Reserved.IsZero())
}

func TestWalletRepository_ReleaseExceedingReserved(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.SetSnapshot(ctx, &models.AccountBalance{
		Available: decimal.NewFromInt(10),
		Reserved:  decimal.NewFromInt(5),
	}))

	err := repo.Release(ctx, decimal.NewFromInt(6))

	assert.ErrorIs(t, err, wallet.ErrInsufficientReserved)
}

func TestWalletRepository_ApplyOfflineSpendDebitsReserved(t *testing.T) {
	// Arrange
	repo := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.SetSnapshot(ctx, &models.AccountBalance{
		Available: decimal.NewFromInt(100),
		Reserved:  decimal.Zero,
	}))
	require.NoError(t, repo.Reserve(ctx, decimal.NewFromInt(20)))

	// Act
	require.NoError(t, repo.ApplyOfflineSpend(ctx, decimal.NewFromInt(15)))

	// Assert: the spend comes out of the reserved bucket only
	snap, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Available.Equal(decimal.NewFromInt(80)))
	assert.True(t, snap.Reserved.Equal(decimal.NewFromInt(5)))
}

func TestWalletRepository_ApplyOfflineSpendClampsAtZero(t *testing.T) {
	// Arrange
	repo := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.SetSnapshot(ctx, &models.AccountBalance{
		Available: decimal.NewFromInt(10),
		Reserved:  decimal.NewFromInt(5),
	}))

	// Act: spend exceeds the stale mirror
	require.NoError(t, repo.ApplyOfflineSpend(ctx, decimal.NewFromInt(8)))

	// Assert
	snap, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Reserved.IsZero())
	assert.True(t, snap.Available.Equal(decimal.NewFromInt(10)))
}

func TestWalletRepository_ApplyOfflineCredit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.ApplyOfflineCredit(ctx, decimal.RequireFromString("12.50")))

	snap, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Available.Equal(decimal.RequireFromString("12.50")))
}

func TestWalletRepository_ConnStatusDefaultsToOnline(t *testing.T) {
	// Arrange
	repo := newTestRepo(t)
	ctx := context.Background()

	// Act / Assert: nothing recorded yet
	status, err := repo.LastConnStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ConnOnline, status)

	require.NoError(t, repo.SetLastConnStatus(ctx, models.ConnOffline))

	status, err = repo.LastConnStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ConnOffline, status)
}
