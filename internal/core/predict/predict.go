package predict

import (
	"time"

	"github.com/claudewatch/claudewatch/internal/core/constants"
)

// BurnRate is the consumption velocity within the active block, derived
// from real-accounting totals.
type BurnRate struct {
	TokensPerMinute float64 `json:"tokens_per_minute"`
	CostPerMinute   float64 `json:"cost_per_minute"`
	CostPerHour     float64 `json:"cost_per_hour"`
	ActiveMinutes   float64 `json:"active_minutes"`
}

// ComputeBurnRate derives per-minute rates from a block's real totals.
// Active minutes run from the block's start to its most recent event,
// floored at a minimum so a single-event block cannot divide by zero.
func ComputeBurnRate(realTokens int, realCost float64, blockStart, lastEvent time.Time) BurnRate {
	minutes := lastEvent.Sub(blockStart).Minutes()
	if minutes < constants.MinActiveMinutes {
		minutes = constants.MinActiveMinutes
	}
	return BurnRate{
		TokensPerMinute: float64(realTokens) / minutes,
		CostPerMinute:   realCost / minutes,
		CostPerHour:     realCost / minutes * 60,
		ActiveMinutes:   minutes,
	}
}

// Exhaustion extrapolates when consuming at ratePerMin would carry
// limitTotal up to limit. The second return is false ("safe") when no
// exhaustion is predicted within the current window: the rate is zero
// (no further consumption is occurring), the limit is already met or
// exceeded, or the extrapolated instant falls at or past the reset time.
//
// Reporting an already-exceeded limit as safe is the documented behavior,
// favoring optimistic display over false alarms once the window's usage
// can no longer grow meaningfully; callers surface overage through the
// percentage fields instead.
func Exhaustion(limitTotal, limit, ratePerMin float64, now, resetTime time.Time) (time.Time, bool) {
	if ratePerMin <= 0 || limitTotal >= limit {
		return time.Time{}, false
	}
	minutes := (limit - limitTotal) / ratePerMin
	instant := now.Add(time.Duration(minutes * float64(time.Minute)))
	if !instant.Before(resetTime) {
		return time.Time{}, false
	}
	return instant, true
}
