package formatter

import (
	"fmt"
	"strings"

	"github.com/claudewatch/claudewatch/internal/core/session"
	"github.com/claudewatch/claudewatch/internal/data/aggregator"
	"github.com/claudewatch/claudewatch/internal/util"
)

// FormatBlocks renders the partitioned block history, newest last.
func FormatBlocks(blocks []*session.Block, opts Options) error {
	if len(blocks) == 0 {
		fmt.Println("No usage history found")
		return nil
	}

	tp := util.GetTimeProvider()
	layout := "2006-01-02 " + timeLayout(opts)

	headers := []string{"Start", "End", "State", "Msgs", "Limit Tokens", "Real Tokens", "Cost"}
	widths := []int{18, 18, 8, 6, 13, 12, 9}

	var b strings.Builder
	for i, h := range headers {
		if i < 3 {
			b.WriteString(util.PadRight(h, widths[i]))
		} else {
			b.WriteString(util.PadLeft(h, widths[i]))
		}
	}
	b.WriteString("\n")

	for _, block := range blocks {
		usage := aggregator.AggregateBlock(block)
		state := "expired"
		if block.IsActive {
			state = "active"
		}
		cells := []string{
			tp.Format(block.StartTime, layout),
			tp.Format(block.EndTime, layout),
			state,
			fmt.Sprintf("%d", usage.LimitMessages),
			util.FormatNumber(usage.LimitTokens),
			util.FormatNumber(usage.RealTokens),
			util.FormatCost(usage.RealCost),
		}
		for i, cell := range cells {
			if i < 3 {
				b.WriteString(util.PadRight(cell, widths[i]))
			} else {
				b.WriteString(util.PadLeft(cell, widths[i]))
			}
		}
		b.WriteString("\n")
	}

	_, err := fmt.Print(b.String())
	return err
}
