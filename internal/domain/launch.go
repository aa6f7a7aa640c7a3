package domain

import (
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// Validation errors for launch records.
var (
	ErrEmptyAsset       = errors.New("asset identifier is empty")
	ErrInvalidAsset     = errors.New("asset identifier is not a valid base58 pubkey")
	ErrInvalidCreator   = errors.New("creator wallet is not a valid base58 pubkey")
	ErrInvalidLaunchAt  = errors.New("launch time must be positive")
	ErrNegativeLiquidty = errors.New("initial liquidity must not be negative")
)

// solanaPubkeyLen is the decoded byte length of a Solana address.
const solanaPubkeyLen = 32

// LaunchRecord describes a newly tradable asset. One per asset, immutable.
type LaunchRecord struct {
	Asset               string  // mint address (base58)
	LaunchTime          int64   // Unix seconds at which the asset became tradable
	Creator             string  // creator wallet (base58)
	InitialLiquiditySOL float64 // liquidity seeded at launch
}

// Validate checks identifier shape and temporal sanity.
func (l *LaunchRecord) Validate() error {
	if l.Asset == "" {
		return ErrEmptyAsset
	}
	if !validPubkey(l.Asset) {
		return fmt.Errorf("%w: %q", ErrInvalidAsset, l.Asset)
	}
	if l.Creator != "" && !validPubkey(l.Creator) {
		return fmt.Errorf("%w: %q", ErrInvalidCreator, l.Creator)
	}
	if l.LaunchTime <= 0 {
		return ErrInvalidLaunchAt
	}
	if l.InitialLiquiditySOL < 0 {
		return ErrNegativeLiquidty
	}
	return nil
}

// validPubkey reports whether s decodes to a 32-byte Solana pubkey.
func validPubkey(s string) bool {
	raw, err := base58.Decode(s)
	if err != nil {
		return false
	}
	return len(raw) == solanaPubkeyLen
}
