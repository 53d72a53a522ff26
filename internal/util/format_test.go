package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		input    int
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0K"},
		{19000, "19.0K"},
		{999999, "1000.0K"},
		{1000000, "1.0M"},
		{2500000, "2.5M"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatNumber(tt.input), "input %d", tt.input)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected string
	}{
		{0, "0m"},
		{45 * time.Minute, "45m"},
		{time.Hour, "1h 0m"},
		{3*time.Hour + 12*time.Minute, "3h 12m"},
		{-5 * time.Minute, "0m"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatDuration(tt.input), "input %v", tt.input)
	}
}

func TestFormatCost(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "$0.00"},
		{0.01665, "$0.02"},
		{9.99, "$9.99"},
		{10, "$10.0"},
		{35, "$35.0"},
		{100, "$100"},
		{140, "$140"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatCost(tt.input), "input %f", tt.input)
	}
}

func TestFormatBurnRate(t *testing.T) {
	assert.Equal(t, "44.0 tokens/min", FormatBurnRate(44))
	assert.Equal(t, "1.5K tokens/min", FormatBurnRate(1500))
	assert.Equal(t, "2.0M tokens/min", FormatBurnRate(2_000_000))
}

func TestClampPercent(t *testing.T) {
	assert.Equal(t, 0.0, ClampPercent(-5))
	assert.Equal(t, 42.5, ClampPercent(42.5))
	assert.Equal(t, 100.0, ClampPercent(100))
	assert.Equal(t, 100.0, ClampPercent(131.6))
}

func TestSimplifyModelName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"claude-opus-4-20250514", "Opus-4"},
		{"claude-3-5-haiku-20241022", "3-5-haiku"},
		{"gpt-4", "gpt-4"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SimplifyModelName(tt.input), "input %q", tt.input)
	}
}

func TestSortModels(t *testing.T) {
	models := []string{
		"claude-3-5-haiku-20241022",
		"claude-sonnet-4-20250514",
		"claude-opus-4-20250514",
		"unknown-model",
	}

	sorted := SortModels(models)
	assert.Equal(t, []string{
		"claude-opus-4-20250514",
		"claude-sonnet-4-20250514",
		"claude-3-5-haiku-20241022",
		"unknown-model",
	}, sorted)

	// Input untouched
	assert.Equal(t, "claude-3-5-haiku-20241022", models[0])
}
