package domain

// Canonical window granularity in seconds.
const WindowSec1Min = 60

// PriceWindow is a fixed-length OHLCV bucket for one asset. Windows of the
// same granularity are totally ordered by StartTime and never overlap;
// gaps (intervals with no trades) are expected, not an error.
type PriceWindow struct {
	Asset        string  // mint address
	WindowSec    int     // bucket length in seconds (canonical 60)
	StartTime    int64   // Unix seconds, inclusive
	EndTime      int64   // Unix seconds, exclusive
	Open         float64
	High         float64
	Low          float64
	Close        float64
	VolumeSOL    float64 // total traded volume in the bucket
	BuyVolumeSOL float64 // buy-side volume in the bucket
	TradeCount   int
	VWAP         float64 // volume-weighted average price
	Volatility   float64 // (high-low)/open, 0 when open is 0
}

// Offset returns the window start offset from a launch instant, in seconds.
func (w *PriceWindow) Offset(launchTime int64) int64 {
	return w.StartTime - launchTime
}
