package pricing

import (
	"strings"

	"github.com/claudewatch/claudewatch/internal/core/model"
)

// Tier is the pricing class of a model. The set is closed: every model
// identifier maps to exactly one of the three tiers.
type Tier int

const (
	TierSonnet Tier = iota
	TierOpus
	TierHaiku
)

func (t Tier) String() string {
	switch t {
	case TierOpus:
		return "Opus"
	case TierHaiku:
		return "Haiku"
	default:
		return "Sonnet"
	}
}

// TierPricing defines per-million-token rates for one tier.
type TierPricing struct {
	Input         float64 // Per million tokens
	Output        float64 // Per million tokens
	CacheCreation float64 // Per million tokens
	CacheRead     float64 // Per million tokens
}

// tierPricingMap stores the published per-tier rates.
var tierPricingMap = map[Tier]TierPricing{
	TierOpus: {
		Input:         15.00, // $15 per million tokens
		Output:        75.00, // $75 per million tokens
		CacheCreation: 18.75, // $18.75 per million tokens
		CacheRead:     1.50,  // $1.5 per million tokens
	},
	TierSonnet: {
		Input:         3.00,  // $3 per million tokens
		Output:        15.00, // $15 per million tokens
		CacheCreation: 3.75,  // $3.75 per million tokens
		CacheRead:     0.30,  // $0.30 per million tokens
	},
	TierHaiku: {
		Input:         0.25, // $0.25 per million tokens
		Output:        1.25, // $1.25 per million tokens
		CacheCreation: 0.30, // $0.30 per million tokens
		CacheRead:     0.03, // $0.03 per million tokens
	},
}

// ClassifyModel maps a model identifier to its tier. The substring rule
// is deliberately permissive so new model names keep classifying without
// a table update; anything that is neither opus nor haiku is Sonnet.
func ClassifyModel(modelName string) Tier {
	lower := strings.ToLower(modelName)
	if strings.Contains(lower, "opus") {
		return TierOpus
	}
	if strings.Contains(lower, "haiku") {
		return TierHaiku
	}
	return TierSonnet
}

// GetPricing returns the rate table for a tier.
func GetPricing(tier Tier) TierPricing {
	return tierPricingMap[tier]
}

// PricingFor returns the rate table for a model identifier.
func PricingFor(modelName string) TierPricing {
	return tierPricingMap[ClassifyModel(modelName)]
}

const million = 1_000_000.0

// Limit accounting policy. The provider's exact rate-limit accounting is
// empirically observed, not documented, and two reference layers disagree
// on it. It therefore lives here as one named definition: LimitTokens and
// EventLimitCost below are the only places that encode it, and the
// descriptions travel with every snapshot so the display never hard-codes
// an interpretation.
const (
	LimitTokenPolicyDescription = "output tokens only"
	LimitCostPolicyDescription  = "input + output + cache-creation cost"
)

// EventCost returns the full cost of an event: all four token kinds at
// the event model's tier rates. No rounding; rounding is a presentation
// concern.
func EventCost(e model.UsageEvent) float64 {
	p := PricingFor(e.Model)
	return float64(e.InputTokens)/million*p.Input +
		float64(e.OutputTokens)/million*p.Output +
		float64(e.CacheCreationTokens)/million*p.CacheCreation +
		float64(e.CacheReadTokens)/million*p.CacheRead
}

// EventLimitCost returns the cost that counts toward the rate limit.
// Cache reads do not count: they are already-cached content served at a
// discount. Cache creation does.
func EventLimitCost(e model.UsageEvent) float64 {
	p := PricingFor(e.Model)
	return float64(e.InputTokens)/million*p.Input +
		float64(e.OutputTokens)/million*p.Output +
		float64(e.CacheCreationTokens)/million*p.CacheCreation
}

// LimitTokens returns the token count that counts toward the rate limit.
func LimitTokens(e model.UsageEvent) int {
	return e.OutputTokens
}
