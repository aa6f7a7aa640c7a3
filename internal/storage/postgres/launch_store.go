package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"solana-launch-backtest/internal/domain"
	"solana-launch-backtest/internal/storage"
)

// LaunchStore implements storage.LaunchStore using PostgreSQL.
type LaunchStore struct {
	pool *Pool
}

// NewLaunchStore creates a new LaunchStore.
func NewLaunchStore(pool *Pool) *LaunchStore {
	return &LaunchStore{pool: pool}
}

// Compile-time interface check.
var _ storage.LaunchStore = (*LaunchStore)(nil)

// Insert adds a new launch. Returns ErrDuplicateKey if the asset exists.
func (s *LaunchStore) Insert(ctx context.Context, l *domain.LaunchRecord) error {
	if l == nil || l.Asset == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO launch_records (
			asset, launch_time, creator, initial_liquidity_sol
		) VALUES ($1, $2, $3, $4)
	`

	_, err := s.pool.Exec(ctx, query, l.Asset, l.LaunchTime, l.Creator, l.InitialLiquiditySOL)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert launch: %w", err)
	}
	return nil
}

// InsertBulk adds multiple launches atomically. Fails entire batch on any duplicate.
func (s *LaunchStore) InsertBulk(ctx context.Context, launches []*domain.LaunchRecord) error {
	if len(launches) == 0 {
		return nil
	}

	query := `
		INSERT INTO launch_records (
			asset, launch_time, creator, initial_liquidity_sol
		) VALUES ($1, $2, $3, $4)
	`

	return s.pool.inTx(ctx, func(tx pgx.Tx) error {
		for _, l := range launches {
			if l == nil || l.Asset == "" {
				return storage.ErrInvalidInput
			}
			if _, err := tx.Exec(ctx, query, l.Asset, l.LaunchTime, l.Creator, l.InitialLiquiditySOL); err != nil {
				if isDuplicateKeyError(err) {
					return storage.ErrDuplicateKey
				}
				return fmt.Errorf("insert launch %s: %w", l.Asset, err)
			}
		}
		return nil
	})
}

// GetByAsset retrieves the launch for an asset. Returns ErrNotFound if not exists.
func (s *LaunchStore) GetByAsset(ctx context.Context, asset string) (*domain.LaunchRecord, error) {
	query := `
		SELECT asset, launch_time, creator, initial_liquidity_sol
		FROM launch_records
		WHERE asset = $1
	`

	l, err := scanLaunch(s.pool.QueryRow(ctx, query, asset))
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get launch by asset: %w", err)
	}
	return l, nil
}

// LaunchesSince retrieves launches with LaunchTime >= cutoff, ordered by launch time ASC.
func (s *LaunchStore) LaunchesSince(ctx context.Context, cutoff int64) ([]*domain.LaunchRecord, error) {
	query := `
		SELECT asset, launch_time, creator, initial_liquidity_sol
		FROM launch_records
		WHERE launch_time >= $1
		ORDER BY launch_time ASC, asset ASC
	`

	rows, err := s.pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("get launches since: %w", err)
	}
	defer rows.Close()

	var launches []*domain.LaunchRecord
	for rows.Next() {
		l, err := scanLaunch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan launch: %w", err)
		}
		launches = append(launches, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate launches: %w", err)
	}
	return launches, nil
}

// scanLaunch scans a single row into a LaunchRecord.
func scanLaunch(row pgx.Row) (*domain.LaunchRecord, error) {
	var l domain.LaunchRecord
	if err := row.Scan(&l.Asset, &l.LaunchTime, &l.Creator, &l.InitialLiquiditySOL); err != nil {
		return nil, err
	}
	return &l, nil
}
