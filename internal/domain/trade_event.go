package domain

// Side identifies the direction of a trade.
type Side string

// Trade sides.
const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// TradeEvent is a single historical trade tick. Immutable, ordered by
// BlockTime within an asset; many per asset.
type TradeEvent struct {
	Asset     string  // mint address
	Trader    string  // trading wallet (base58)
	Side      Side    // buy or sell
	AmountSOL float64 // trade size in SOL
	BlockTime int64   // Unix seconds
}

// IsBuy reports whether the event is a buy.
func (t *TradeEvent) IsBuy() bool {
	return t.Side == SideBuy
}
