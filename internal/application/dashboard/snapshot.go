package dashboard

import (
	"time"

	"github.com/claudewatch/claudewatch/internal/core/predict"
	"github.com/claudewatch/claudewatch/internal/core/pricing"
	"github.com/claudewatch/claudewatch/internal/data/aggregator"
)

// CurrentBlockInfo is the computed view of the active block. When
// HasActiveBlock is false every total is zero and the zero state means
// "rate limit reset, nothing consumed in the new window yet", so callers
// can distinguish that from a zero-usage active block.
type CurrentBlockInfo struct {
	HasActiveBlock bool      `json:"has_active_block"`
	BlockStart     time.Time `json:"block_start,omitempty"`
	ResetTime      time.Time `json:"reset_time,omitempty"`
	SecsUntilReset int64     `json:"secs_until_reset"`

	// Limit accounting: what counts toward the provider's rate limit.
	LimitTokens   int     `json:"limit_tokens"`
	LimitCost     float64 `json:"limit_cost"`
	LimitMessages int     `json:"limit_messages"`

	// Real accounting: actual spend including cache overhead.
	RealTokens int     `json:"real_tokens"`
	RealCost   float64 `json:"real_cost"`

	// Percentages against the selected plan's limits. Unclamped so
	// overage stays representable; clamping is a display concern.
	TokenPercent   float64 `json:"token_percent"`
	CostPercent    float64 `json:"cost_percent"`
	MessagePercent float64 `json:"message_percent"`

	BurnRate predict.BurnRate `json:"burn_rate"`

	// Predicted exhaustion instants; nil means "safe" within this window.
	TokensExhaustedAt *time.Time `json:"tokens_exhausted_at,omitempty"`
	CostExhaustedAt   *time.Time `json:"cost_exhausted_at,omitempty"`
}

// Snapshot is the engine's entire contract with the presentation layer;
// the presentation layer never re-derives totals from events.
type Snapshot struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Plan        pricing.Plan `json:"plan"`

	CurrentBlock CurrentBlockInfo       `json:"current_block"`
	Today        aggregator.PeriodStats `json:"today"`
	Week         aggregator.PeriodStats `json:"week"`
	Month        aggregator.PeriodStats `json:"month"`

	Distribution []aggregator.TierShare `json:"model_distribution"`
	Warnings     []string               `json:"warnings"`

	// Count of undecodable log lines skipped during loading.
	MalformedLines int `json:"malformed_lines,omitempty"`

	// The accounting policy in effect, carried so displays document it
	// instead of hard-coding an interpretation.
	LimitTokenPolicy string `json:"limit_token_policy"`
	LimitCostPolicy  string `json:"limit_cost_policy"`
}
