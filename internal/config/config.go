package config

import (
	"errors"
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Configuration errors are fatal at startup, before any asset is processed.
var (
	ErrInvalidSpotRate    = errors.New("spot rate must be positive")
	ErrInvalidSupply      = errors.New("token supply must be positive")
	ErrInvalidHorizon     = errors.New("replay horizon must be positive")
	ErrInvalidEntryWindow = errors.New("entry window start must not exceed end")
	ErrInvalidExitBounds  = errors.New("target multiplier must exceed 1 and stop multiplier must be in (0,1)")
	ErrInvalidHold        = errors.New("max hold duration must be positive")
	ErrInvalidSize        = errors.New("position size must be positive")
	ErrInvalidBrackets    = errors.New("score bracket sizing must be positive and within the strategy maximum")
)

// Config is the single configuration object passed by reference into the
// scoring engine, strategy simulators, and aggregator. No package-level
// mutable state.
type Config struct {
	// SpotRateUSD converts SOL-denominated P&L to quote currency.
	SpotRateUSD float64 `envconfig:"SPOT_RATE_USD" default:"186.0"`

	// TokenSupply is the assumed circulating supply used to derive
	// market cap from price.
	TokenSupply float64 `envconfig:"TOKEN_SUPPLY" default:"1000000000"`

	// HorizonSec bounds how far past launch windows and trades are read.
	HorizonSec int64 `envconfig:"HORIZON_SEC" default:"1800"`

	// EvalOffsetSec is the post-launch instant at which the composite
	// score is computed for score-gated entry and bracket reporting.
	EvalOffsetSec int64 `envconfig:"EVAL_OFFSET_SEC" default:"120"`

	Scoring    Scoring    `envconfig:"SCORING"`
	Strategies Strategies `envconfig:"STRATEGY"`

	Logging Logging `envconfig:"LOG"`
}

// Scoring holds signal engine parameters.
type Scoring struct {
	// EarlyWindowSec is the early-buyer window after launch.
	EarlyWindowSec int64 `envconfig:"EARLY_WINDOW_SEC" default:"60"`

	// MinVolumeFloorSOL is the minimum per-side buy volume below which
	// the acceleration ratio is undefined.
	MinVolumeFloorSOL float64 `envconfig:"MIN_VOLUME_FLOOR_SOL" default:"0.5"`

	// VelocityLookbackSec is how far behind the evaluation instant the
	// market-cap velocity baseline is taken.
	VelocityLookbackSec int64 `envconfig:"VELOCITY_LOOKBACK_SEC" default:"30"`
}

// Strategies carries the parameter set of every variant.
type Strategies struct {
	QuickScalp      QuickScalp      `envconfig:"QUICK_SCALP"`
	RankBased       RankBased       `envconfig:"RANK_BASED"`
	Momentum        Momentum        `envconfig:"MOMENTUM"`
	CopyTrade       CopyTrade       `envconfig:"COPY_TRADE"`
	LateOpportunity LateOpportunity `envconfig:"LATE_OPPORTUNITY"`
	ScoreGated      ScoreGated      `envconfig:"SCORE_GATED"`
}

// QuickScalp enters early on every asset and exits on small moves.
type QuickScalp struct {
	EntryStartSec int64   `envconfig:"ENTRY_START_SEC" default:"30"`
	EntryEndSec   int64   `envconfig:"ENTRY_END_SEC" default:"60"`
	PositionUSD   float64 `envconfig:"POSITION_USD" default:"1.0"`
	TargetMult    float64 `envconfig:"TARGET_MULT" default:"1.03"`
	StopMult      float64 `envconfig:"STOP_MULT" default:"0.98"`
	MaxHoldSec    int64   `envconfig:"MAX_HOLD_SEC" default:"20"`
}

// RankBased qualifies on aggregate 5-minute launch volume.
type RankBased struct {
	EntryStartSec    int64   `envconfig:"ENTRY_START_SEC" default:"60"`
	EntryEndSec      int64   `envconfig:"ENTRY_END_SEC" default:"120"`
	MinVolume5MinSOL float64 `envconfig:"MIN_VOLUME_5MIN_SOL" default:"20.0"`
	PositionUSD      float64 `envconfig:"POSITION_USD" default:"5.0"`
	TargetMult       float64 `envconfig:"TARGET_MULT" default:"1.30"`
	StopMult         float64 `envconfig:"STOP_MULT" default:"0.80"`
	MaxHoldSec       int64   `envconfig:"MAX_HOLD_SEC" default:"30"`
}

// Momentum qualifies on buyer count and buy volume inside a lookback window.
type Momentum struct {
	EntryStartSec   int64   `envconfig:"ENTRY_START_SEC" default:"120"`
	EntryEndSec     int64   `envconfig:"ENTRY_END_SEC" default:"130"`
	QualifyStartSec int64   `envconfig:"QUALIFY_START_SEC" default:"60"`
	QualifyEndSec   int64   `envconfig:"QUALIFY_END_SEC" default:"120"`
	MinTrades       int     `envconfig:"MIN_TRADES" default:"5"`
	MinBuyers       int     `envconfig:"MIN_BUYERS" default:"3"`
	MinBuyVolumeSOL float64 `envconfig:"MIN_BUY_VOLUME_SOL" default:"4.0"`
	PositionUSD     float64 `envconfig:"POSITION_USD" default:"3.0"`
	TargetMult      float64 `envconfig:"TARGET_MULT" default:"1.50"`
	StopMult        float64 `envconfig:"STOP_MULT" default:"0.85"`
	MaxHoldSec      int64   `envconfig:"MAX_HOLD_SEC" default:"120"`
}

// CopyTrade follows the first reputable buy within the copy window.
type CopyTrade struct {
	CopyWindowSec     int64   `envconfig:"COPY_WINDOW_SEC" default:"60"`
	AlignToleranceSec int64   `envconfig:"ALIGN_TOLERANCE_SEC" default:"10"`
	MinCopySOL        float64 `envconfig:"MIN_COPY_SOL" default:"0.25"`
	MinTier           string  `envconfig:"MIN_TIER" default:"C"`
	PositionUSD       float64 `envconfig:"POSITION_USD" default:"2.0"`
	TargetMult        float64 `envconfig:"TARGET_MULT" default:"1.20"`
	StopMult          float64 `envconfig:"STOP_MULT" default:"0.90"`
	MaxHoldSec        int64   `envconfig:"MAX_HOLD_SEC" default:"15"`
}

// LateOpportunity qualifies on sustained buyer activity 20 minutes in.
type LateOpportunity struct {
	EntryStartSec   int64   `envconfig:"ENTRY_START_SEC" default:"1200"`
	EntryEndSec     int64   `envconfig:"ENTRY_END_SEC" default:"1260"`
	MinBuyers       int     `envconfig:"MIN_BUYERS" default:"10"`
	MinBuyVolumeSOL float64 `envconfig:"MIN_BUY_VOLUME_SOL" default:"10.0"`
	PositionUSD     float64 `envconfig:"POSITION_USD" default:"1.0"`
	TargetMult      float64 `envconfig:"TARGET_MULT" default:"1.25"`
	StopMult        float64 `envconfig:"STOP_MULT" default:"0.80"`
	MaxHoldSec      int64   `envconfig:"MAX_HOLD_SEC" default:"300"`
}

// BracketSizing is the position size and exit pair for one score bracket.
type BracketSizing struct {
	SizeSOL    float64 `envconfig:"SIZE_SOL"`
	TargetMult float64 `envconfig:"TARGET_MULT"`
	StopMult   float64 `envconfig:"STOP_MULT"`
}

// ScoreGated gates entry on the composite score and sizes by bracket.
type ScoreGated struct {
	EntryStartSec int64   `envconfig:"ENTRY_START_SEC" default:"120"`
	EntryEndSec   int64   `envconfig:"ENTRY_END_SEC" default:"130"`
	MinScore      float64 `envconfig:"MIN_SCORE" default:"6.0"`

	// ThresholdMarketCapSOL is the absolute market-cap exit, checked
	// before target and stop.
	ThresholdMarketCapSOL float64 `envconfig:"THRESHOLD_MC_SOL" default:"1000000"`
	MaxHoldSec            int64   `envconfig:"MAX_HOLD_SEC" default:"420"`
	MaxSizeSOL            float64 `envconfig:"MAX_SIZE_SOL" default:"1.0"`

	Bracket6 BracketSizing `envconfig:"BRACKET6"`
	Bracket7 BracketSizing `envconfig:"BRACKET7"`
	Bracket8 BracketSizing `envconfig:"BRACKET8"`
	Bracket9 BracketSizing `envconfig:"BRACKET9"`
}

// Logging controls the zap bootstrap.
type Logging struct {
	Level string `envconfig:"LEVEL" default:"info"`
	File  string `envconfig:"FILE" default:""`
}

// Load reads configuration from the environment and validates it.
// Any failure here is fatal: the engine must never start a batch with a
// half-parsed configuration.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("BACKTEST", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	applyBracketDefaults(&cfg.Strategies.ScoreGated)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the reference configuration without touching the
// environment. Used by tests and fixtures.
func Default() *Config {
	cfg := &Config{
		SpotRateUSD:   186.0,
		TokenSupply:   1e9,
		HorizonSec:    1800,
		EvalOffsetSec: 120,
		Scoring: Scoring{
			EarlyWindowSec:      60,
			MinVolumeFloorSOL:   0.5,
			VelocityLookbackSec: 30,
		},
		Strategies: Strategies{
			QuickScalp: QuickScalp{
				EntryStartSec: 30, EntryEndSec: 60,
				PositionUSD: 1.0, TargetMult: 1.03, StopMult: 0.98, MaxHoldSec: 20,
			},
			RankBased: RankBased{
				EntryStartSec: 60, EntryEndSec: 120, MinVolume5MinSOL: 20.0,
				PositionUSD: 5.0, TargetMult: 1.30, StopMult: 0.80, MaxHoldSec: 30,
			},
			Momentum: Momentum{
				EntryStartSec: 120, EntryEndSec: 130,
				QualifyStartSec: 60, QualifyEndSec: 120,
				MinTrades: 5, MinBuyers: 3, MinBuyVolumeSOL: 4.0,
				PositionUSD: 3.0, TargetMult: 1.50, StopMult: 0.85, MaxHoldSec: 120,
			},
			CopyTrade: CopyTrade{
				CopyWindowSec: 60, AlignToleranceSec: 10,
				MinCopySOL: 0.25, MinTier: "C",
				PositionUSD: 2.0, TargetMult: 1.20, StopMult: 0.90, MaxHoldSec: 15,
			},
			LateOpportunity: LateOpportunity{
				EntryStartSec: 1200, EntryEndSec: 1260,
				MinBuyers: 10, MinBuyVolumeSOL: 10.0,
				PositionUSD: 1.0, TargetMult: 1.25, StopMult: 0.80, MaxHoldSec: 300,
			},
			ScoreGated: ScoreGated{
				EntryStartSec: 120, EntryEndSec: 130, MinScore: 6.0,
				ThresholdMarketCapSOL: 1_000_000, MaxHoldSec: 420, MaxSizeSOL: 1.0,
			},
		},
		Logging: Logging{Level: "info"},
	}
	applyBracketDefaults(&cfg.Strategies.ScoreGated)
	return cfg
}

// applyBracketDefaults fills in the reference bracket sizing table when no
// explicit overrides were provided.
func applyBracketDefaults(sg *ScoreGated) {
	if sg.Bracket6.SizeSOL == 0 {
		sg.Bracket6 = BracketSizing{SizeSOL: 0.30, TargetMult: 1.30, StopMult: 0.80}
	}
	if sg.Bracket7.SizeSOL == 0 {
		sg.Bracket7 = BracketSizing{SizeSOL: 0.50, TargetMult: 1.30, StopMult: 0.80}
	}
	if sg.Bracket8.SizeSOL == 0 {
		sg.Bracket8 = BracketSizing{SizeSOL: 0.75, TargetMult: 1.50, StopMult: 0.85}
	}
	if sg.Bracket9.SizeSOL == 0 {
		sg.Bracket9 = BracketSizing{SizeSOL: 1.00, TargetMult: 1.50, StopMult: 0.80}
	}
}

// Validate checks every parameter the engine depends on.
func (c *Config) Validate() error {
	if c.SpotRateUSD <= 0 {
		return ErrInvalidSpotRate
	}
	if c.TokenSupply <= 0 {
		return ErrInvalidSupply
	}
	if c.HorizonSec <= 0 || c.EvalOffsetSec <= 0 || c.EvalOffsetSec > c.HorizonSec {
		return ErrInvalidHorizon
	}
	if c.Scoring.EarlyWindowSec <= 0 || c.Scoring.VelocityLookbackSec <= 0 {
		return fmt.Errorf("scoring: %w", ErrInvalidHorizon)
	}

	s := c.Strategies
	if err := validatePercentExit(s.QuickScalp.EntryStartSec, s.QuickScalp.EntryEndSec,
		s.QuickScalp.PositionUSD, s.QuickScalp.TargetMult, s.QuickScalp.StopMult, s.QuickScalp.MaxHoldSec); err != nil {
		return fmt.Errorf("quick_scalp: %w", err)
	}
	if err := validatePercentExit(s.RankBased.EntryStartSec, s.RankBased.EntryEndSec,
		s.RankBased.PositionUSD, s.RankBased.TargetMult, s.RankBased.StopMult, s.RankBased.MaxHoldSec); err != nil {
		return fmt.Errorf("rank_based: %w", err)
	}
	if err := validatePercentExit(s.Momentum.EntryStartSec, s.Momentum.EntryEndSec,
		s.Momentum.PositionUSD, s.Momentum.TargetMult, s.Momentum.StopMult, s.Momentum.MaxHoldSec); err != nil {
		return fmt.Errorf("momentum: %w", err)
	}
	if err := validatePercentExit(s.LateOpportunity.EntryStartSec, s.LateOpportunity.EntryEndSec,
		s.LateOpportunity.PositionUSD, s.LateOpportunity.TargetMult, s.LateOpportunity.StopMult, s.LateOpportunity.MaxHoldSec); err != nil {
		return fmt.Errorf("late_opportunity: %w", err)
	}

	ct := s.CopyTrade
	if ct.CopyWindowSec <= 0 || ct.AlignToleranceSec <= 0 {
		return fmt.Errorf("copy_trade: %w", ErrInvalidEntryWindow)
	}
	if err := validatePercentExit(0, ct.CopyWindowSec, ct.PositionUSD, ct.TargetMult, ct.StopMult, ct.MaxHoldSec); err != nil {
		return fmt.Errorf("copy_trade: %w", err)
	}

	sg := s.ScoreGated
	if sg.EntryStartSec < 0 || sg.EntryStartSec > sg.EntryEndSec {
		return fmt.Errorf("score_gated: %w", ErrInvalidEntryWindow)
	}
	if sg.MaxHoldSec <= 0 {
		return fmt.Errorf("score_gated: %w", ErrInvalidHold)
	}
	for _, b := range []BracketSizing{sg.Bracket6, sg.Bracket7, sg.Bracket8, sg.Bracket9} {
		if b.SizeSOL <= 0 || b.SizeSOL > sg.MaxSizeSOL {
			return ErrInvalidBrackets
		}
		if b.TargetMult <= 1 || b.StopMult <= 0 || b.StopMult >= 1 {
			return ErrInvalidBrackets
		}
	}

	return nil
}

func validatePercentExit(entryStart, entryEnd int64, positionUSD, targetMult, stopMult float64, maxHoldSec int64) error {
	if entryStart < 0 || entryStart > entryEnd {
		return ErrInvalidEntryWindow
	}
	if positionUSD <= 0 {
		return ErrInvalidSize
	}
	if targetMult <= 1 || stopMult <= 0 || stopMult >= 1 {
		return ErrInvalidExitBounds
	}
	if maxHoldSec <= 0 {
		return ErrInvalidHold
	}
	return nil
}

// BracketFor returns the sizing entry for a qualifying score.
// The boolean is false for scores below MinScore.
func (sg ScoreGated) BracketFor(score float64) (BracketSizing, bool) {
	switch {
	case score < sg.MinScore:
		return BracketSizing{}, false
	case score >= 9.0:
		return sg.Bracket9, true
	case score >= 8.0:
		return sg.Bracket8, true
	case score >= 7.0:
		return sg.Bracket7, true
	default:
		return sg.Bracket6, true
	}
}
