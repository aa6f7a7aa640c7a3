package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-launch-backtest/internal/domain"
	"solana-launch-backtest/internal/storage"
)

func TestLaunchStore_InsertAndGetByAsset(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewLaunchStore(pool)
	ctx := context.Background()

	launch := &domain.LaunchRecord{
		Asset:               "MintAddress123",
		LaunchTime:          1700000000,
		Creator:             "CreatorAddress123",
		InitialLiquiditySOL: 30.5,
	}

	err := store.Insert(ctx, launch)
	require.NoError(t, err)

	retrieved, err := store.GetByAsset(ctx, "MintAddress123")
	require.NoError(t, err)

	assert.Equal(t, launch.Asset, retrieved.Asset)
	assert.Equal(t, launch.LaunchTime, retrieved.LaunchTime)
	assert.Equal(t, launch.Creator, retrieved.Creator)
	assert.Equal(t, launch.InitialLiquiditySOL, retrieved.InitialLiquiditySOL)
}

func TestLaunchStore_InsertDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewLaunchStore(pool)
	ctx := context.Background()

	launch := &domain.LaunchRecord{Asset: "MintDup", LaunchTime: 1700000000, Creator: "c"}

	require.NoError(t, store.Insert(ctx, launch))

	err := store.Insert(ctx, launch)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestLaunchStore_GetByAssetNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewLaunchStore(pool)

	_, err := store.GetByAsset(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLaunchStore_LaunchesSince(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewLaunchStore(pool)
	ctx := context.Background()

	launches := []*domain.LaunchRecord{
		{Asset: "MintC", LaunchTime: 1700003000, Creator: "c"},
		{Asset: "MintA", LaunchTime: 1700001000, Creator: "c"},
		{Asset: "MintB", LaunchTime: 1700002000, Creator: "c"},
	}
	require.NoError(t, store.InsertBulk(ctx, launches))

	result, err := store.LaunchesSince(ctx, 1700002000)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "MintB", result[0].Asset)
	assert.Equal(t, "MintC", result[1].Asset)
}

func TestLaunchStore_InsertBulkRollsBackOnDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewLaunchStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, &domain.LaunchRecord{Asset: "MintA", LaunchTime: 1700001000, Creator: "c"}))

	batch := []*domain.LaunchRecord{
		{Asset: "MintB", LaunchTime: 1700002000, Creator: "c"},
		{Asset: "MintA", LaunchTime: 1700001000, Creator: "c"}, // duplicate
	}
	err := store.InsertBulk(ctx, batch)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	_, err = store.GetByAsset(ctx, "MintB")
	assert.ErrorIs(t, err, storage.ErrNotFound, "batch must roll back entirely")
}
