package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/claudewatch/claudewatch/internal/application/dashboard"
	"github.com/claudewatch/claudewatch/internal/util"
)

// SummaryFormatter renders a one-glance plain-text summary, suitable for
// status bars and scripts.
type SummaryFormatter struct {
	opts Options
}

func NewSummaryFormatter(opts Options) *SummaryFormatter {
	return &SummaryFormatter{opts: opts}
}

func (f *SummaryFormatter) Format(s *dashboard.Snapshot) error {
	var b strings.Builder

	block := s.CurrentBlock
	if !block.HasActiveBlock {
		b.WriteString(fmt.Sprintf("%s plan: no active block (window reset)\n", s.Plan.Name))
	} else {
		resetIn := util.FormatDuration(time.Duration(block.SecsUntilReset) * time.Second)
		b.WriteString(fmt.Sprintf("%s plan: %.1f%% tokens, %.1f%% cost, %.1f%% messages, resets in %s\n",
			s.Plan.Name,
			util.ClampPercent(block.TokenPercent),
			util.ClampPercent(block.CostPercent),
			util.ClampPercent(block.MessagePercent),
			resetIn))
	}

	b.WriteString(fmt.Sprintf("today %s tokens %s | week %s tokens %s | month %s tokens %s\n",
		util.FormatNumber(s.Today.TotalTokens), util.FormatCost(s.Today.TotalCost),
		util.FormatNumber(s.Week.TotalTokens), util.FormatCost(s.Week.TotalCost),
		util.FormatNumber(s.Month.TotalTokens), util.FormatCost(s.Month.TotalCost)))

	for _, warning := range s.Warnings {
		b.WriteString("! " + warning + "\n")
	}

	_, err := fmt.Print(b.String())
	return err
}
