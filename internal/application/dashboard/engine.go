package dashboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/claudewatch/claudewatch/internal/core/constants"
	"github.com/claudewatch/claudewatch/internal/core/model"
	"github.com/claudewatch/claudewatch/internal/core/predict"
	"github.com/claudewatch/claudewatch/internal/core/pricing"
	"github.com/claudewatch/claudewatch/internal/core/session"
	"github.com/claudewatch/claudewatch/internal/data/aggregator"
)

// Engine turns an event history into one dashboard snapshot per refresh
// cycle. Each pass is pure given its inputs: the same events, plan,
// location and instant always produce the same snapshot, so the engine
// can be re-invoked on a timer or on demand without locks. The engine
// performs no I/O and issues no timers.
type Engine struct {
	plan pricing.Plan
	loc  *time.Location
}

// NewEngine creates an engine for the selected plan. Calendar periods
// (today/week/month) are resolved in loc; block arithmetic is always
// hour-aligned UTC and unaffected by it.
func NewEngine(plan pricing.Plan, loc *time.Location) *Engine {
	if loc == nil {
		loc = time.Local
	}
	return &Engine{plan: plan, loc: loc}
}

// Plan returns the engine's selected plan.
func (e *Engine) Plan() pricing.Plan {
	return e.plan
}

// Compute runs one full pass: sort, partition, aggregate, predict. The
// input slice is not mutated; sorting is stable so equal timestamps keep
// input order. An empty history is a valid terminal state and yields a
// snapshot with no active block.
func (e *Engine) Compute(events []model.UsageEvent, now time.Time) *Snapshot {
	sorted := make([]model.UsageEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	blocks := session.Partition(sorted, now)
	active := session.ActiveBlock(blocks)

	snapshot := &Snapshot{
		GeneratedAt:      now,
		Plan:             e.plan,
		CurrentBlock:     e.currentBlockInfo(active, now),
		Today:            aggregator.Aggregate(aggregator.FilterToday(sorted, now, e.loc), "Today"),
		Week:             aggregator.Aggregate(aggregator.FilterThisWeek(sorted, now, e.loc), "This Week"),
		Month:            aggregator.Aggregate(aggregator.FilterThisMonth(sorted, now, e.loc), "This Month"),
		Distribution:     aggregator.TierDistribution(active),
		LimitTokenPolicy: pricing.LimitTokenPolicyDescription,
		LimitCostPolicy:  pricing.LimitCostPolicyDescription,
	}
	snapshot.Warnings = buildWarnings(snapshot.CurrentBlock)

	return snapshot
}

// currentBlockInfo computes the active block's dual totals, percentages,
// burn rate and exhaustion predictions. A nil block yields the zero
// "reset, no usage yet" state.
func (e *Engine) currentBlockInfo(block *session.Block, now time.Time) CurrentBlockInfo {
	if block == nil {
		return CurrentBlockInfo{}
	}

	usage := aggregator.AggregateBlock(block)
	info := CurrentBlockInfo{
		HasActiveBlock: true,
		BlockStart:     block.StartTime,
		ResetTime:      block.EndTime,
		LimitTokens:    usage.LimitTokens,
		LimitCost:      usage.LimitCost,
		LimitMessages:  usage.LimitMessages,
		RealTokens:     usage.RealTokens,
		RealCost:       usage.RealCost,
	}

	if secs := int64(block.EndTime.Sub(now).Seconds()); secs > 0 {
		info.SecsUntilReset = secs
	}

	if e.plan.TokenLimit > 0 {
		info.TokenPercent = float64(usage.LimitTokens) / float64(e.plan.TokenLimit) * 100
	}
	if e.plan.CostLimit > 0 {
		info.CostPercent = usage.LimitCost / e.plan.CostLimit * 100
	}
	if e.plan.MessageLimit > 0 {
		info.MessagePercent = float64(usage.LimitMessages) / float64(e.plan.MessageLimit) * 100
	}

	info.BurnRate = predict.ComputeBurnRate(usage.RealTokens, usage.RealCost,
		block.StartTime, block.LastEventTime())

	if at, ok := predict.Exhaustion(float64(usage.LimitTokens), float64(e.plan.TokenLimit),
		info.BurnRate.TokensPerMinute, now, block.EndTime); ok {
		info.TokensExhaustedAt = &at
	}
	if at, ok := predict.Exhaustion(usage.LimitCost, e.plan.CostLimit,
		info.BurnRate.CostPerMinute, now, block.EndTime); ok {
		info.CostExhaustedAt = &at
	}

	return info
}

// buildWarnings derives human-readable notices from the unclamped
// percentages.
func buildWarnings(info CurrentBlockInfo) []string {
	if !info.HasActiveBlock {
		return nil
	}

	var warnings []string
	near := func(name string, percent float64) {
		if percent >= constants.NearLimitThreshold && percent < constants.OverLimitThreshold {
			warnings = append(warnings, fmt.Sprintf("%s limit nearly exhausted (%.0f%%)", name, percent))
		}
	}
	near("Cost", info.CostPercent)
	near("Token", info.TokenPercent)
	near("Message", info.MessagePercent)

	if info.CostPercent >= constants.OverLimitThreshold ||
		info.TokenPercent >= constants.OverLimitThreshold ||
		info.MessagePercent >= constants.OverLimitThreshold {
		warnings = append(warnings, "RATE LIMITED - wait for reset")
	}

	return warnings
}
