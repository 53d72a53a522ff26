package util

import (
	"fmt"
	"time"
)

// FormatNumber renders a token count with K/M suffixes.
func FormatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	} else if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	} else {
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	}
}

// FormatDuration renders a duration as "3h 12m" or "45m".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatBurnRate renders a tokens-per-minute rate.
func FormatBurnRate(rate float64) string {
	if rate < 1000 {
		return fmt.Sprintf("%.1f tokens/min", rate)
	} else if rate < 1000000 {
		return fmt.Sprintf("%.1fK tokens/min", rate/1000)
	} else {
		return fmt.Sprintf("%.1fM tokens/min", rate/1000000)
	}
}

// FormatCost renders a dollar amount with precision scaled to magnitude.
func FormatCost(cost float64) string {
	if cost >= 100 {
		return fmt.Sprintf("$%.0f", cost)
	} else if cost >= 10 {
		return fmt.Sprintf("$%.1f", cost)
	}
	return fmt.Sprintf("$%.2f", cost)
}

// ClampPercent caps a percentage into [0,100] for display. Stored
// percentages stay unclamped so overage remains detectable.
func ClampPercent(p float64) float64 {
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}
