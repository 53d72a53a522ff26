package aggregator

import (
	"sort"
	"time"

	"github.com/claudewatch/claudewatch/internal/core/model"
	"github.com/claudewatch/claudewatch/internal/core/pricing"
	"github.com/claudewatch/claudewatch/internal/core/session"
)

// BlockUsage holds both accounting totals for one block.
//
// Limit totals use only the token kinds the provider counts toward its
// rate limit (see the policy constants in the pricing package); real
// totals count every token kind and represent actual spend including
// cache overhead. Real tokens are always >= limit tokens.
type BlockUsage struct {
	LimitTokens   int
	LimitCost     float64
	LimitMessages int
	RealTokens    int
	RealCost      float64
}

// AggregateBlock folds a block's events into its dual accounting totals.
func AggregateBlock(b *session.Block) BlockUsage {
	var usage BlockUsage
	for _, e := range b.Events {
		usage.LimitTokens += pricing.LimitTokens(e)
		usage.LimitCost += pricing.EventLimitCost(e)
		usage.RealTokens += e.TotalTokens()
		usage.RealCost += pricing.EventCost(e)
	}
	usage.LimitMessages = len(b.Events)
	return usage
}

// PeriodStats aggregates a set of events over a calendar window. All
// token and cost totals use real accounting.
type PeriodStats struct {
	Label        string             `json:"label"`
	Models       []model.ModelStats `json:"models"`
	TotalTokens  int                `json:"total_tokens"`
	TotalCost    float64            `json:"total_cost"`
	TotalCalls   int                `json:"total_calls"`
	SessionCount int                `json:"session_count"`
}

// ModelCost returns the real cost of a per-model accumulation at that
// model's tier rates.
func ModelCost(s model.ModelStats) float64 {
	p := pricing.PricingFor(s.Model)
	return float64(s.InputTokens)/1_000_000*p.Input +
		float64(s.OutputTokens)/1_000_000*p.Output +
		float64(s.CacheCreationTokens)/1_000_000*p.CacheCreation +
		float64(s.CacheReadTokens)/1_000_000*p.CacheRead
}

// Aggregate folds events into period totals with a per-model breakdown.
// Models are sorted by cost descending; distinct session IDs are counted
// as sessions.
func Aggregate(events []model.UsageEvent, label string) PeriodStats {
	modelsMap := make(map[string]*model.ModelStats)
	sessions := make(map[string]struct{})

	for _, e := range events {
		sessions[e.SessionID] = struct{}{}

		stats, ok := modelsMap[e.Model]
		if !ok {
			stats = &model.ModelStats{Model: e.Model}
			modelsMap[e.Model] = stats
		}
		stats.Add(e)
	}

	models := make([]model.ModelStats, 0, len(modelsMap))
	for _, stats := range modelsMap {
		models = append(models, *stats)
	}
	sort.Slice(models, func(i, j int) bool {
		ci, cj := ModelCost(models[i]), ModelCost(models[j])
		if ci != cj {
			return ci > cj
		}
		return models[i].Model < models[j].Model
	})

	stats := PeriodStats{
		Label:        label,
		Models:       models,
		SessionCount: len(sessions),
	}
	for _, m := range models {
		stats.TotalTokens += m.TotalTokens()
		stats.TotalCalls += m.CallCount
		stats.TotalCost += ModelCost(m)
	}
	return stats
}

// FilterToday returns the events falling on now's calendar date in loc.
func FilterToday(events []model.UsageEvent, now time.Time, loc *time.Location) []model.UsageEvent {
	y, m, d := now.In(loc).Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)
	return filterRange(events, dayStart, dayEnd, loc)
}

// FilterThisWeek returns the events from Monday 00:00 of now's week in
// loc through now's day.
func FilterThisWeek(events []model.UsageEvent, now time.Time, loc *time.Location) []model.UsageEvent {
	local := now.In(loc)
	y, m, d := local.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, loc)

	daysSinceMonday := (int(local.Weekday()) + 6) % 7
	monday := dayStart.AddDate(0, 0, -daysSinceMonday)
	return filterRange(events, monday, dayStart.AddDate(0, 0, 1), loc)
}

// FilterThisMonth returns the events from now's calendar month in loc.
func FilterThisMonth(events []model.UsageEvent, now time.Time, loc *time.Location) []model.UsageEvent {
	local := now.In(loc)
	monthStart := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	return filterRange(events, monthStart, monthStart.AddDate(0, 1, 0), loc)
}

func filterRange(events []model.UsageEvent, start, end time.Time, loc *time.Location) []model.UsageEvent {
	var filtered []model.UsageEvent
	for _, e := range events {
		local := e.Timestamp.In(loc)
		if !local.Before(start) && local.Before(end) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// TierShare is the per-tier slice of the active block's consumption,
// built from limit-accounting values since it sits next to the limit
// gauges on the dashboard.
type TierShare struct {
	Tier    string  `json:"tier"`
	Calls   int     `json:"calls"`
	Tokens  int     `json:"tokens"`
	Cost    float64 `json:"cost"`
	Percent float64 `json:"percent"`
}

// TierDistribution groups a block's events by pricing tier. Percent is
// each tier's share of the block's limit cost, sorted by cost descending.
func TierDistribution(b *session.Block) []TierShare {
	if b == nil {
		return nil
	}

	shareMap := make(map[pricing.Tier]*TierShare)
	var totalCost float64
	for _, e := range b.Events {
		tier := pricing.ClassifyModel(e.Model)
		share, ok := shareMap[tier]
		if !ok {
			share = &TierShare{Tier: tier.String()}
			shareMap[tier] = share
		}
		cost := pricing.EventLimitCost(e)
		share.Calls++
		share.Tokens += pricing.LimitTokens(e)
		share.Cost += cost
		totalCost += cost
	}

	shares := make([]TierShare, 0, len(shareMap))
	for _, share := range shareMap {
		if totalCost > 0 {
			share.Percent = share.Cost / totalCost * 100
		}
		shares = append(shares, *share)
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Cost != shares[j].Cost {
			return shares[i].Cost > shares[j].Cost
		}
		return shares[i].Tier < shares[j].Tier
	})
	return shares
}
