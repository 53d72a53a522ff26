package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claudewatch/claudewatch/internal/core/model"
)

func eventAt(ts string) model.UsageEvent {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return model.UsageEvent{
		Timestamp:    t.UTC(),
		SessionID:    "session-1",
		Model:        "claude-sonnet-4-20250514",
		OutputTokens: 100,
	}
}

func TestTruncateToHour(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "mid_hour",
			input:    "2025-06-15T14:37:21Z",
			expected: "2025-06-15T14:00:00Z",
		},
		{
			name:     "already_on_hour",
			input:    "2025-06-15T14:00:00Z",
			expected: "2025-06-15T14:00:00Z",
		},
		{
			name:     "non_utc_converted",
			input:    "2025-06-15T22:37:21+08:00",
			expected: "2025-06-15T14:00:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, _ := time.Parse(time.RFC3339, tt.input)
			expected, _ := time.Parse(time.RFC3339, tt.expected)

			got := TruncateToHour(input)
			assert.True(t, got.Equal(expected), "got %v, want %v", got, expected)
			assert.Equal(t, time.UTC, got.Location())

			// Idempotent
			assert.True(t, TruncateToHour(got).Equal(got))
		})
	}
}

func TestPartitionSingleBlock(t *testing.T) {
	// Two events inside the same 5h window form one block starting at
	// the first event's hour.
	events := []model.UsageEvent{
		eventAt("2025-06-15T14:37:00Z"),
		eventAt("2025-06-15T14:50:00Z"),
	}
	now, _ := time.Parse(time.RFC3339, "2025-06-15T15:00:00Z")

	blocks := Partition(events, now)
	require.Len(t, blocks, 1)

	block := blocks[0]
	assert.Equal(t, "2025-06-15T14:00:00Z", block.StartTime.Format(time.RFC3339))
	assert.Equal(t, "2025-06-15T19:00:00Z", block.EndTime.Format(time.RFC3339))
	assert.Len(t, block.Events, 2)
	assert.True(t, block.IsActive)
}

func TestPartitionRollsOverPastEnd(t *testing.T) {
	// Second event lands past the first block's end, opening a new
	// hour-aligned block.
	events := []model.UsageEvent{
		eventAt("2025-06-15T14:37:00Z"),
		eventAt("2025-06-15T20:10:00Z"),
	}
	now, _ := time.Parse(time.RFC3339, "2025-06-15T20:30:00Z")

	blocks := Partition(events, now)
	require.Len(t, blocks, 2)

	assert.Equal(t, "2025-06-15T14:00:00Z", blocks[0].StartTime.Format(time.RFC3339))
	assert.False(t, blocks[0].IsActive)

	assert.Equal(t, "2025-06-15T20:00:00Z", blocks[1].StartTime.Format(time.RFC3339))
	assert.Equal(t, "2025-06-16T01:00:00Z", blocks[1].EndTime.Format(time.RFC3339))
	assert.True(t, blocks[1].IsActive)
}

func TestPartitionSplitsOnExactFiveHourGap(t *testing.T) {
	// The gap condition is inclusive: events exactly 5h apart land in
	// separate blocks.
	events := []model.UsageEvent{
		eventAt("2025-06-15T08:55:00Z"),
		eventAt("2025-06-15T13:55:00Z"),
	}
	now, _ := time.Parse(time.RFC3339, "2025-06-15T14:00:00Z")

	blocks := Partition(events, now)
	require.Len(t, blocks, 2)
	assert.Equal(t, "2025-06-15T08:00:00Z", blocks[0].StartTime.Format(time.RFC3339))
	assert.Equal(t, "2025-06-15T13:00:00Z", blocks[1].StartTime.Format(time.RFC3339))
}

func TestPartitionGapJustUnderFiveHours(t *testing.T) {
	// 4h59m apart inside the same window stays one block.
	events := []model.UsageEvent{
		eventAt("2025-06-15T09:00:00Z"),
		eventAt("2025-06-15T13:59:00Z"),
	}
	now, _ := time.Parse(time.RFC3339, "2025-06-15T13:59:30Z")

	blocks := Partition(events, now)
	require.Len(t, blocks, 1)
	assert.Len(t, blocks[0].Events, 2)
}

func TestPartitionEventExactlyAtEnd(t *testing.T) {
	// An event landing exactly on a block's end belongs to the next
	// block, never the closing one.
	events := []model.UsageEvent{
		eventAt("2025-06-15T09:00:00Z"),
		eventAt("2025-06-15T14:00:00Z"),
	}
	now, _ := time.Parse(time.RFC3339, "2025-06-15T14:05:00Z")

	blocks := Partition(events, now)
	require.Len(t, blocks, 2)
	assert.Len(t, blocks[0].Events, 1)
	assert.Len(t, blocks[1].Events, 1)
	assert.Equal(t, "2025-06-15T14:00:00Z", blocks[1].StartTime.Format(time.RFC3339))
}

func TestPartitionCoversEveryEvent(t *testing.T) {
	events := []model.UsageEvent{
		eventAt("2025-06-15T00:10:00Z"),
		eventAt("2025-06-15T01:30:00Z"),
		eventAt("2025-06-15T04:59:00Z"),
		eventAt("2025-06-15T05:00:00Z"),
		eventAt("2025-06-15T12:00:00Z"),
		eventAt("2025-06-15T18:00:00Z"),
	}
	now, _ := time.Parse(time.RFC3339, "2025-06-15T19:00:00Z")

	blocks := Partition(events, now)

	total := 0
	for _, block := range blocks {
		total += len(block.Events)
		for _, e := range block.Events {
			assert.False(t, e.Timestamp.Before(block.StartTime),
				"event %v before block start %v", e.Timestamp, block.StartTime)
			assert.True(t, e.Timestamp.Before(block.EndTime),
				"event %v at or past block end %v", e.Timestamp, block.EndTime)
		}
	}
	assert.Equal(t, len(events), total, "every event belongs to exactly one block")

	for i := 1; i < len(blocks); i++ {
		assert.True(t, blocks[i].StartTime.After(blocks[i-1].StartTime), "blocks out of order")
		assert.False(t, blocks[i].FirstEventTime().Before(blocks[i-1].LastEventTime()),
			"event order broken across blocks")
	}
}

func TestPartitionActiveClassification(t *testing.T) {
	tests := []struct {
		name     string
		lastSeen string
		now      string
		active   bool
	}{
		{
			name:     "recent_activity_inside_window",
			lastSeen: "2025-06-15T14:30:00Z",
			now:      "2025-06-15T15:00:00Z",
			active:   true,
		},
		{
			name:     "window_elapsed",
			lastSeen: "2025-06-15T14:30:00Z",
			now:      "2025-06-15T19:00:00Z",
			active:   false,
		},
		{
			name:     "idle_for_five_hours",
			lastSeen: "2025-06-15T14:05:00Z",
			now:      "2025-06-15T19:05:00Z",
			active:   false,
		},
		{
			name:     "now_exactly_at_end",
			lastSeen: "2025-06-15T14:30:00Z",
			now:      "2025-06-15T19:00:00Z",
			active:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now, _ := time.Parse(time.RFC3339, tt.now)
			blocks := Partition([]model.UsageEvent{eventAt(tt.lastSeen)}, now)
			require.Len(t, blocks, 1)
			assert.Equal(t, tt.active, blocks[0].IsActive)
		})
	}
}

func TestPartitionEmpty(t *testing.T) {
	assert.Nil(t, Partition(nil, time.Now()))
}

func TestActiveBlock(t *testing.T) {
	now, _ := time.Parse(time.RFC3339, "2025-06-15T15:00:00Z")

	t.Run("returns_latest_when_active", func(t *testing.T) {
		blocks := Partition([]model.UsageEvent{
			eventAt("2025-06-15T02:00:00Z"),
			eventAt("2025-06-15T14:30:00Z"),
		}, now)
		active := ActiveBlock(blocks)
		require.NotNil(t, active)
		assert.Equal(t, "2025-06-15T14:00:00Z", active.StartTime.Format(time.RFC3339))
	})

	t.Run("nil_when_latest_expired", func(t *testing.T) {
		blocks := Partition([]model.UsageEvent{eventAt("2025-06-15T02:00:00Z")}, now)
		assert.Nil(t, ActiveBlock(blocks))
	})

	t.Run("nil_for_empty_history", func(t *testing.T) {
		assert.Nil(t, ActiveBlock(nil))
	})
}
