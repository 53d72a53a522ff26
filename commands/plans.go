package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/claudewatch/claudewatch/internal/core/pricing"
	"github.com/claudewatch/claudewatch/internal/util"
)

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "Show the subscription plan catalog",
	Run: func(cmd *cobra.Command, args []string) {
		headers := []string{"Plan", "Tokens/window", "Cost/window", "Messages/window"}
		widths := []int{8, 15, 13, 17}

		var b strings.Builder
		for i, h := range headers {
			if i == 0 {
				b.WriteString(util.PadRight(h, widths[i]))
			} else {
				b.WriteString(util.PadLeft(h, widths[i]))
			}
		}
		b.WriteString("\n")

		for _, plan := range pricing.Plans() {
			cells := []string{
				plan.Name,
				util.FormatNumber(plan.TokenLimit),
				util.FormatCost(plan.CostLimit),
				fmt.Sprintf("%d", plan.MessageLimit),
			}
			for i, cell := range cells {
				if i == 0 {
					b.WriteString(util.PadRight(cell, widths[i]))
				} else {
					b.WriteString(util.PadLeft(cell, widths[i]))
				}
			}
			b.WriteString("\n")
		}

		fmt.Print(b.String())
	},
}

func init() {
	rootCmd.AddCommand(plansCmd)
}
