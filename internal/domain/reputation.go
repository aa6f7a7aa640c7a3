package domain

// WalletReputation is the externally maintained performance record of a
// trading identity. Read-only from the engine's perspective.
type WalletReputation struct {
	Wallet      string  // wallet address (base58)
	NetPnLSOL   float64 // aggregate realized P&L
	CreateCount int     // number of assets this wallet launched
	WinRate     float64 // [0,1]
	TradeCount  int
	ProfitScore float64 // composite score maintained by the wallet miner
}

// WalletTier grades a wallet's historical performance, best to worst.
type WalletTier string

// Wallet tiers, five grades plus unknown.
const (
	TierS       WalletTier = "S" // elite
	TierA       WalletTier = "A" // excellent
	TierB       WalletTier = "B" // good
	TierC       WalletTier = "C" // acceptable
	TierD       WalletTier = "D" // unproven
	TierUnknown WalletTier = "UNKNOWN"
)

// Tier derives the grade from the reputation record.
func (r *WalletReputation) Tier() WalletTier {
	switch {
	case r.ProfitScore >= 85 && r.WinRate >= 0.70 && r.TradeCount >= 50:
		return TierS
	case r.ProfitScore >= 75 && r.WinRate >= 0.60 && r.TradeCount >= 20:
		return TierA
	case r.ProfitScore >= 65 && r.WinRate >= 0.50 && r.TradeCount >= 10:
		return TierB
	case r.ProfitScore >= 50 && r.TradeCount >= 5:
		return TierC
	default:
		return TierD
	}
}

// AtLeast reports whether the tier is t or better.
func (t WalletTier) AtLeast(min WalletTier) bool {
	return tierRank(t) >= tierRank(min)
}

func tierRank(t WalletTier) int {
	switch t {
	case TierS:
		return 5
	case TierA:
		return 4
	case TierB:
		return 3
	case TierC:
		return 2
	case TierD:
		return 1
	default:
		return 0
	}
}
