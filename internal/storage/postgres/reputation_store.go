package postgres

import (
	"context"
	"fmt"

	"solana-launch-backtest/internal/domain"
	"solana-launch-backtest/internal/storage"
)

// ReputationStore implements storage.ReputationStore using PostgreSQL.
type ReputationStore struct {
	pool *Pool
}

// NewReputationStore creates a new ReputationStore.
func NewReputationStore(pool *Pool) *ReputationStore {
	return &ReputationStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ReputationStore = (*ReputationStore)(nil)

// Insert adds a reputation record. Returns ErrDuplicateKey if the wallet exists.
func (s *ReputationStore) Insert(ctx context.Context, r *domain.WalletReputation) error {
	if r == nil || r.Wallet == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO wallet_reputation (
			wallet, net_pnl_sol, create_count, win_rate, trade_count, profit_score
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.pool.Exec(ctx, query,
		r.Wallet, r.NetPnLSOL, r.CreateCount, r.WinRate, r.TradeCount, r.ProfitScore)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert reputation: %w", err)
	}
	return nil
}

// GetByWallet retrieves the reputation for a wallet.
// Returns ErrNotFound when the wallet has no record.
func (s *ReputationStore) GetByWallet(ctx context.Context, wallet string) (*domain.WalletReputation, error) {
	query := `
		SELECT wallet, net_pnl_sol, create_count, win_rate, trade_count, profit_score
		FROM wallet_reputation
		WHERE wallet = $1
	`

	var r domain.WalletReputation
	err := s.pool.QueryRow(ctx, query, wallet).Scan(
		&r.Wallet, &r.NetPnLSOL, &r.CreateCount, &r.WinRate, &r.TradeCount, &r.ProfitScore)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get reputation by wallet: %w", err)
	}
	return &r, nil
}
