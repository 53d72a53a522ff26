package constants

import "time"

const (
	// Rate-limit window duration
	BlockDuration = 5 * time.Hour

	// Minimum active minutes used for burn-rate division
	MinActiveMinutes = 1.0

	// Warning thresholds (percent of a plan limit)
	NearLimitThreshold = 90.0
	OverLimitThreshold = 100.0
)
