package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claudewatch/claudewatch/internal/core/model"
)

func TestClassifyModel(t *testing.T) {
	tests := []struct {
		name      string
		modelName string
		expected  Tier
	}{
		{"opus_model", "claude-opus-4-20250514", TierOpus},
		{"sonnet_model", "claude-sonnet-4-20250514", TierSonnet},
		{"haiku_model", "claude-3-5-haiku-20241022", TierHaiku},
		{"case_insensitive", "CLAUDE-OPUS-4", TierOpus},
		{"unknown_defaults_to_sonnet", "some-future-model", TierSonnet},
		{"empty_defaults_to_sonnet", "", TierSonnet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyModel(tt.modelName))
		})
	}
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "Opus", TierOpus.String())
	assert.Equal(t, "Sonnet", TierSonnet.String())
	assert.Equal(t, "Haiku", TierHaiku.String())
}

func TestGetPricingRates(t *testing.T) {
	opus := GetPricing(TierOpus)
	assert.Equal(t, 15.00, opus.Input)
	assert.Equal(t, 75.00, opus.Output)
	assert.Equal(t, 18.75, opus.CacheCreation)
	assert.Equal(t, 1.50, opus.CacheRead)

	sonnet := GetPricing(TierSonnet)
	assert.Equal(t, 3.00, sonnet.Input)
	assert.Equal(t, 15.00, sonnet.Output)
	assert.Equal(t, 3.75, sonnet.CacheCreation)
	assert.Equal(t, 0.30, sonnet.CacheRead)

	haiku := GetPricing(TierHaiku)
	assert.Equal(t, 0.25, haiku.Input)
	assert.Equal(t, 1.25, haiku.Output)
	assert.Equal(t, 0.30, haiku.CacheCreation)
	assert.Equal(t, 0.03, haiku.CacheRead)
}

func TestEventCost(t *testing.T) {
	// 1500/1e6*3 + 800/1e6*15 + 0 + 500/1e6*0.3 = 0.01665
	event := model.UsageEvent{
		Model:           "claude-sonnet-4-20250514",
		InputTokens:     1500,
		OutputTokens:    800,
		CacheReadTokens: 500,
	}
	assert.InDelta(t, 0.01665, EventCost(event), 1e-9)
}

func TestEventLimitCostExcludesCacheReads(t *testing.T) {
	event := model.UsageEvent{
		Model:               "claude-sonnet-4-20250514",
		InputTokens:         1500,
		OutputTokens:        800,
		CacheCreationTokens: 1000,
		CacheReadTokens:     500_000,
	}

	// input + output + cache-creation only
	expected := 1500.0/1e6*3 + 800.0/1e6*15 + 1000.0/1e6*3.75
	assert.InDelta(t, expected, EventLimitCost(event), 1e-9)
	assert.Less(t, EventLimitCost(event), EventCost(event))
}

func TestLimitTokensCountsOutputOnly(t *testing.T) {
	event := model.UsageEvent{
		Model:               "claude-opus-4-20250514",
		InputTokens:         10_000,
		OutputTokens:        800,
		CacheCreationTokens: 5_000,
		CacheReadTokens:     50_000,
	}
	assert.Equal(t, 800, LimitTokens(event))
}

func TestPlans(t *testing.T) {
	plans := Plans()
	require.Len(t, plans, 3)

	assert.Equal(t, "Pro", plans[0].Name)
	assert.Equal(t, 19_000, plans[0].TokenLimit)
	assert.Equal(t, 18.00, plans[0].CostLimit)
	assert.Equal(t, 250, plans[0].MessageLimit)

	assert.Equal(t, "Max5", plans[1].Name)
	assert.Equal(t, 88_000, plans[1].TokenLimit)
	assert.Equal(t, 35.00, plans[1].CostLimit)
	assert.Equal(t, 1_000, plans[1].MessageLimit)

	assert.Equal(t, "Max20", plans[2].Name)
	assert.Equal(t, 220_000, plans[2].TokenLimit)
	assert.Equal(t, 140.00, plans[2].CostLimit)
	assert.Equal(t, 2_000, plans[2].MessageLimit)
}

func TestPlansReturnsCopy(t *testing.T) {
	plans := Plans()
	plans[0].TokenLimit = 1

	fresh := Plans()
	assert.Equal(t, 19_000, fresh[0].TokenLimit)
}

func TestPlanByName(t *testing.T) {
	t.Run("exact", func(t *testing.T) {
		plan, err := PlanByName("Max5")
		require.NoError(t, err)
		assert.Equal(t, "Max5", plan.Name)
	})

	t.Run("case_insensitive", func(t *testing.T) {
		plan, err := PlanByName("max20")
		require.NoError(t, err)
		assert.Equal(t, "Max20", plan.Name)
	})

	t.Run("unknown_lists_available", func(t *testing.T) {
		_, err := PlanByName("enterprise")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Pro")
	})
}

func TestPlanByIndex(t *testing.T) {
	plan, err := PlanByIndex(0)
	require.NoError(t, err)
	assert.Equal(t, "Pro", plan.Name)

	_, err = PlanByIndex(3)
	assert.Error(t, err)

	_, err = PlanByIndex(-1)
	assert.Error(t, err)
}
