package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-launch-backtest/internal/domain"
	"solana-launch-backtest/internal/storage"
)

func TestReputationStore_InsertAndGetByWallet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewReputationStore(pool)
	ctx := context.Background()

	rep := &domain.WalletReputation{
		Wallet:      "WalletAddress123",
		NetPnLSOL:   12.5,
		CreateCount: 2,
		WinRate:     0.72,
		TradeCount:  60,
		ProfitScore: 88,
	}

	require.NoError(t, store.Insert(ctx, rep))

	retrieved, err := store.GetByWallet(ctx, "WalletAddress123")
	require.NoError(t, err)

	assert.Equal(t, rep.Wallet, retrieved.Wallet)
	assert.Equal(t, rep.NetPnLSOL, retrieved.NetPnLSOL)
	assert.Equal(t, rep.WinRate, retrieved.WinRate)
	assert.Equal(t, rep.TradeCount, retrieved.TradeCount)
	assert.Equal(t, domain.TierS, retrieved.Tier())
}

func TestReputationStore_InsertDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewReputationStore(pool)
	ctx := context.Background()

	rep := &domain.WalletReputation{Wallet: "WalletDup"}
	require.NoError(t, store.Insert(ctx, rep))

	err := store.Insert(ctx, rep)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestReputationStore_GetByWalletNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewReputationStore(pool)

	_, err := store.GetByWallet(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
