// Package idhash derives deterministic identifiers so that re-running a
// backtest over the same input yields byte-identical output.
package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComputePositionID computes a deterministic position identifier.
// Formula: SHA256(strategy_id|asset|entry_time), hex-encoded (64 chars).
func ComputePositionID(strategyID, asset string, entryTime int64) string {
	data := fmt.Sprintf("%s|%s|%d", strategyID, asset, entryTime)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
