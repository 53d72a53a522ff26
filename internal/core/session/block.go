package session

import (
	"time"

	"github.com/claudewatch/claudewatch/internal/core/constants"
	"github.com/claudewatch/claudewatch/internal/core/model"
)

// Block is a 5-hour rate-limit accounting window.
//
// StartTime is the first event's timestamp truncated to the top of its
// hour (UTC); EndTime is StartTime + 5h and is the rate-limit reset
// instant. Events are in timestamp order and each input event belongs to
// exactly one block. Blocks are rebuilt from scratch on every
// computation pass and never mutated afterwards.
type Block struct {
	StartTime time.Time
	EndTime   time.Time
	Events    []model.UsageEvent
	IsActive  bool
}

// FirstEventTime returns the timestamp of the block's first event.
func (b *Block) FirstEventTime() time.Time {
	return b.Events[0].Timestamp
}

// LastEventTime returns the timestamp of the block's most recent event.
func (b *Block) LastEventTime() time.Time {
	return b.Events[len(b.Events)-1].Timestamp
}

// TruncateToHour zeroes minutes, seconds and sub-second precision in UTC.
// Idempotent.
func TruncateToHour(t time.Time) time.Time {
	return t.UTC().Truncate(time.Hour)
}

// Partition groups a timestamp-sorted event sequence into
// non-overlapping blocks.
//
// A new block opens on the first event, and thereafter whenever an event
// lands at or past the open block's end (the window rolled over), or
// arrives 5h or more after the previous event (the provider resets after
// a long gap even mid-window, so a block can close before its nominal
// end). An event exactly at EndTime starts the next block.
//
// The most recent block is classified active when now is before its end
// and the gap since its last event is under 5h; everything else is
// expired. An empty input yields no blocks.
func Partition(events []model.UsageEvent, now time.Time) []*Block {
	if len(events) == 0 {
		return nil
	}

	var blocks []*Block
	for _, e := range events {
		needNewBlock := len(blocks) == 0
		if !needNewBlock {
			current := blocks[len(blocks)-1]
			lastEvent := current.Events[len(current.Events)-1]
			if !e.Timestamp.Before(current.EndTime) ||
				e.Timestamp.Sub(lastEvent.Timestamp) >= constants.BlockDuration {
				needNewBlock = true
			}
		}

		if needNewBlock {
			start := TruncateToHour(e.Timestamp)
			blocks = append(blocks, &Block{
				StartTime: start,
				EndTime:   start.Add(constants.BlockDuration),
			})
		}

		current := blocks[len(blocks)-1]
		current.Events = append(current.Events, e)
	}

	latest := blocks[len(blocks)-1]
	latest.IsActive = now.Before(latest.EndTime) &&
		now.Sub(latest.LastEventTime()) < constants.BlockDuration

	return blocks
}

// ActiveBlock returns the currently active block, or nil when the most
// recent block has expired (the rate limit implicitly reset and the new
// window has no events yet). Nil is a valid state, not an error.
func ActiveBlock(blocks []*Block) *Block {
	if len(blocks) == 0 {
		return nil
	}
	if latest := blocks[len(blocks)-1]; latest.IsActive {
		return latest
	}
	return nil
}
