package predict

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(ts string) time.Time {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return t
}

func TestComputeBurnRate(t *testing.T) {
	blockStart := mustParse("2025-06-15T14:00:00Z")

	t.Run("steady_consumption", func(t *testing.T) {
		lastEvent := mustParse("2025-06-15T14:50:00Z")
		rate := ComputeBurnRate(5000, 1.25, blockStart, lastEvent)

		assert.InDelta(t, 50.0, rate.ActiveMinutes, 1e-9)
		assert.InDelta(t, 100.0, rate.TokensPerMinute, 1e-9)
		assert.InDelta(t, 0.025, rate.CostPerMinute, 1e-9)
		assert.InDelta(t, 1.5, rate.CostPerHour, 1e-9)
	})

	t.Run("minutes_floored_for_instant_burst", func(t *testing.T) {
		// Single event right at block start would otherwise divide by
		// zero.
		rate := ComputeBurnRate(1000, 0.5, blockStart, blockStart)
		assert.InDelta(t, 1.0, rate.ActiveMinutes, 1e-9)
		assert.InDelta(t, 1000.0, rate.TokensPerMinute, 1e-9)
	})

	t.Run("zero_usage", func(t *testing.T) {
		lastEvent := mustParse("2025-06-15T14:30:00Z")
		rate := ComputeBurnRate(0, 0, blockStart, lastEvent)
		assert.Zero(t, rate.TokensPerMinute)
		assert.Zero(t, rate.CostPerMinute)
	})
}

func TestExhaustion(t *testing.T) {
	now := mustParse("2025-06-15T15:00:00Z")
	reset := mustParse("2025-06-15T19:00:00Z")

	t.Run("predicted_within_window", func(t *testing.T) {
		// 1000 remaining at 100/min -> exhausted in 10 minutes.
		instant, exhausts := Exhaustion(18_000, 19_000, 100, now, reset)
		require.True(t, exhausts)
		assert.Equal(t, "2025-06-15T15:10:00Z", instant.UTC().Format(time.RFC3339))
	})

	t.Run("safe_when_instant_past_reset", func(t *testing.T) {
		// 18000 remaining at 10/min lands long after the window resets.
		_, exhausts := Exhaustion(1_000, 19_000, 10, now, reset)
		assert.False(t, exhausts)
	})

	t.Run("safe_when_instant_exactly_at_reset", func(t *testing.T) {
		// 240 minutes to reset; 2400 remaining at 10/min hits exactly
		// the reset instant, which counts as safe.
		_, exhausts := Exhaustion(16_600, 19_000, 10, now, reset)
		assert.False(t, exhausts)
	})

	t.Run("safe_when_rate_zero", func(t *testing.T) {
		_, exhausts := Exhaustion(18_000, 19_000, 0, now, reset)
		assert.False(t, exhausts)
	})

	t.Run("already_exceeded_reports_safe", func(t *testing.T) {
		// Over-limit blocks report no exhaustion instant; overage is
		// surfaced through the percentage fields instead.
		_, exhausts := Exhaustion(25_000, 19_000, 100, now, reset)
		assert.False(t, exhausts)

		_, exhausts = Exhaustion(19_000, 19_000, 100, now, reset)
		assert.False(t, exhausts)
	})
}
