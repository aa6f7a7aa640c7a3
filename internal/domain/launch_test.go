package domain

import (
	"errors"
	"testing"
)

const (
	validMint    = "So11111111111111111111111111111111111111112"
	validCreator = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
)

func validLaunch() *LaunchRecord {
	return &LaunchRecord{
		Asset:               validMint,
		LaunchTime:          1_700_000_000,
		Creator:             validCreator,
		InitialLiquiditySOL: 30,
	}
}

func TestLaunchRecord_Validate(t *testing.T) {
	if err := validLaunch().Validate(); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}
}

func TestLaunchRecord_ValidateEmptyCreatorAllowed(t *testing.T) {
	l := validLaunch()
	l.Creator = ""
	if err := l.Validate(); err != nil {
		t.Errorf("record without creator rejected: %v", err)
	}
}

func TestLaunchRecord_ValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*LaunchRecord)
		want   error
	}{
		{"empty asset", func(l *LaunchRecord) { l.Asset = "" }, ErrEmptyAsset},
		{"non-base58 asset", func(l *LaunchRecord) { l.Asset = "not-base58-0OIl" }, ErrInvalidAsset},
		{"short asset", func(l *LaunchRecord) { l.Asset = "abc" }, ErrInvalidAsset},
		{"bad creator", func(l *LaunchRecord) { l.Creator = "abc" }, ErrInvalidCreator},
		{"zero launch time", func(l *LaunchRecord) { l.LaunchTime = 0 }, ErrInvalidLaunchAt},
		{"negative launch time", func(l *LaunchRecord) { l.LaunchTime = -5 }, ErrInvalidLaunchAt},
		{"negative liquidity", func(l *LaunchRecord) { l.InitialLiquiditySOL = -1 }, ErrNegativeLiquidty},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := validLaunch()
			tc.mutate(l)
			err := l.Validate()
			if !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestLaunchRecord_ValidateZeroLiquidityAllowed(t *testing.T) {
	l := validLaunch()
	l.InitialLiquiditySOL = 0
	if err := l.Validate(); err != nil {
		t.Errorf("zero liquidity rejected: %v", err)
	}
}
