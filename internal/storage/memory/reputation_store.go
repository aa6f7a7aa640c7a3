package memory

import (
	"context"
	"sync"

	"solana-launch-backtest/internal/domain"
	"solana-launch-backtest/internal/storage"
)

// ReputationStore is an in-memory implementation of storage.ReputationStore.
type ReputationStore struct {
	mu   sync.RWMutex
	data map[string]*domain.WalletReputation // keyed by wallet
}

// NewReputationStore creates a new in-memory reputation store.
func NewReputationStore() *ReputationStore {
	return &ReputationStore{
		data: make(map[string]*domain.WalletReputation),
	}
}

// Insert adds a reputation record. Returns ErrDuplicateKey if the wallet exists.
func (s *ReputationStore) Insert(_ context.Context, r *domain.WalletReputation) error {
	if r == nil || r.Wallet == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[r.Wallet]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *r
	s.data[r.Wallet] = &copy
	return nil
}

// GetByWallet retrieves the reputation for a wallet.
// Returns ErrNotFound when the wallet has no record.
func (s *ReputationStore) GetByWallet(_ context.Context, wallet string) (*domain.WalletReputation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, exists := s.data[wallet]
	if !exists {
		return nil, storage.ErrNotFound
	}

	copy := *r
	return &copy, nil
}

var _ storage.ReputationStore = (*ReputationStore)(nil)
