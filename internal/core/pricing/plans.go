package pricing

import (
	"fmt"
	"strings"
)

// Plan represents a subscription plan with per-window limits.
type Plan struct {
	Name         string  `json:"name"`
	TokenLimit   int     `json:"token_limit"`
	CostLimit    float64 `json:"cost_limit"`
	MessageLimit int     `json:"message_limit"`
}

// planCatalog lists the selectable plans in display order. Limits are
// best-effort estimates of observed provider behavior, not published
// quotas.
var planCatalog = []Plan{
	{Name: "Pro", TokenLimit: 19_000, CostLimit: 18.00, MessageLimit: 250},
	{Name: "Max5", TokenLimit: 88_000, CostLimit: 35.00, MessageLimit: 1_000},
	{Name: "Max20", TokenLimit: 220_000, CostLimit: 140.00, MessageLimit: 2_000},
}

// Plans returns a copy of the plan catalog to prevent external
// modification.
func Plans() []Plan {
	plans := make([]Plan, len(planCatalog))
	copy(plans, planCatalog)
	return plans
}

// PlanByIndex returns the plan at the given catalog position.
func PlanByIndex(index int) (Plan, error) {
	if index < 0 || index >= len(planCatalog) {
		return Plan{}, fmt.Errorf("plan index %d out of range [0,%d)", index, len(planCatalog))
	}
	return planCatalog[index], nil
}

// PlanByName returns the plan with the given name, case-insensitively.
func PlanByName(name string) (Plan, error) {
	for _, plan := range planCatalog {
		if strings.EqualFold(plan.Name, name) {
			return plan, nil
		}
	}
	names := make([]string, len(planCatalog))
	for i, plan := range planCatalog {
		names[i] = plan.Name
	}
	return Plan{}, fmt.Errorf("unknown plan %q (available: %s)", name, strings.Join(names, ", "))
}
