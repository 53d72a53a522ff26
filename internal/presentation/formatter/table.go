package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/claudewatch/claudewatch/internal/application/dashboard"
	"github.com/claudewatch/claudewatch/internal/core/model"
	"github.com/claudewatch/claudewatch/internal/data/aggregator"
	"github.com/claudewatch/claudewatch/internal/util"
)

// TableFormatter renders the full dashboard view.
type TableFormatter struct {
	opts Options
}

func NewTableFormatter(opts Options) *TableFormatter {
	if opts.Width <= 0 {
		opts.Width = 74
	}
	return &TableFormatter{opts: opts}
}

func (f *TableFormatter) Format(s *dashboard.Snapshot) error {
	var b strings.Builder

	f.writeHeader(&b, s)
	f.writeCurrentBlock(&b, s)
	f.writePeriods(&b, s)
	f.writeModels(&b, s)
	f.writeDistribution(&b, s)
	f.writeWarnings(&b, s)

	_, err := fmt.Print(b.String())
	return err
}

func (f *TableFormatter) separator() string {
	return util.ColorCyan + strings.Repeat("─", f.opts.Width) + util.ColorReset + "\n"
}

func (f *TableFormatter) writeHeader(b *strings.Builder, s *dashboard.Snapshot) {
	title := fmt.Sprintf("Claude Usage - %s plan (%s tokens / %s / %d messages per window)",
		s.Plan.Name,
		util.FormatNumber(s.Plan.TokenLimit),
		util.FormatCost(s.Plan.CostLimit),
		s.Plan.MessageLimit)
	b.WriteString(util.ColorBold + util.ColorMagenta + title + util.ColorReset + "\n")
	b.WriteString(f.separator())
}

func (f *TableFormatter) writeCurrentBlock(b *strings.Builder, s *dashboard.Snapshot) {
	block := s.CurrentBlock
	tp := util.GetTimeProvider()
	layout := timeLayout(f.opts)

	if !block.HasActiveBlock {
		b.WriteString("No active block - rate limit window has reset, no usage yet\n")
		b.WriteString(f.separator())
		return
	}

	resetIn := util.FormatDuration(time.Duration(block.SecsUntilReset) * time.Second)
	b.WriteString(fmt.Sprintf("%s  started %s, resets %s (in %s)\n",
		util.ColorBold+"Current Block"+util.ColorReset,
		tp.Format(block.BlockStart, layout),
		tp.Format(block.ResetTime, layout),
		resetIn))

	f.writeGauge(b, "Tokens", block.TokenPercent,
		fmt.Sprintf("%s / %s (%s)", util.FormatNumber(block.LimitTokens),
			util.FormatNumber(s.Plan.TokenLimit), s.LimitTokenPolicy))
	f.writeGauge(b, "Cost", block.CostPercent,
		fmt.Sprintf("%s / %s (%s)", util.FormatCost(block.LimitCost),
			util.FormatCost(s.Plan.CostLimit), s.LimitCostPolicy))
	f.writeGauge(b, "Messages", block.MessagePercent,
		fmt.Sprintf("%d / %d", block.LimitMessages, s.Plan.MessageLimit))

	b.WriteString(fmt.Sprintf("  Real usage: %s tokens, %s (including cache)\n",
		util.FormatNumber(block.RealTokens), util.FormatCost(block.RealCost)))
	b.WriteString(fmt.Sprintf("  Burn rate:  %s, %s/min (active %.0f min)\n",
		util.FormatBurnRate(block.BurnRate.TokensPerMinute),
		util.FormatCost(block.BurnRate.CostPerMinute),
		block.BurnRate.ActiveMinutes))

	b.WriteString("  Runs out:   tokens " + f.exhaustion(block.TokensExhaustedAt) +
		", cost " + f.exhaustion(block.CostExhaustedAt) + "\n")
	b.WriteString(f.separator())
}

func (f *TableFormatter) writeGauge(b *strings.Builder, name string, percent float64, detail string) {
	display := util.ClampPercent(percent)
	bar := util.CreateProgressBar(display, 22)
	color := util.PercentColor(percent)
	b.WriteString(fmt.Sprintf("  %s %s%s %5.1f%%%s %s\n",
		util.PadRight(name, 9), color, bar, display, util.ColorReset, detail))
}

func (f *TableFormatter) exhaustion(at *time.Time) string {
	if at == nil {
		return util.ColorGreen + "safe" + util.ColorReset
	}
	return util.ColorRed + util.GetTimeProvider().Format(*at, timeLayout(f.opts)) + util.ColorReset
}

func (f *TableFormatter) writePeriods(b *strings.Builder, s *dashboard.Snapshot) {
	headers := []string{"Period", "Tokens", "Cost", "Calls", "Sessions"}
	widths := []int{12, 12, 10, 8, 8}

	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i == 0 {
				b.WriteString(util.PadRight(cell, widths[i]))
			} else {
				b.WriteString(util.PadLeft(cell, widths[i]))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers)
	for _, period := range []aggregator.PeriodStats{s.Today, s.Week, s.Month} {
		writeRow([]string{
			period.Label,
			util.FormatNumber(period.TotalTokens),
			util.FormatCost(period.TotalCost),
			fmt.Sprintf("%d", period.TotalCalls),
			fmt.Sprintf("%d", period.SessionCount),
		})
	}
	b.WriteString(f.separator())
}

// writeModels renders today's per-model rows in tier order with
// simplified model names.
func (f *TableFormatter) writeModels(b *strings.Builder, s *dashboard.Snapshot) {
	if len(s.Today.Models) == 0 {
		return
	}

	byName := make(map[string]model.ModelStats, len(s.Today.Models))
	names := make([]string, 0, len(s.Today.Models))
	for _, m := range s.Today.Models {
		byName[m.Model] = m
		names = append(names, m.Model)
	}

	b.WriteString(util.ColorBold + "Models (today)" + util.ColorReset + "\n")
	for _, name := range util.SortModels(names) {
		m := byName[name]
		b.WriteString(fmt.Sprintf("  %s %s calls %s tokens %s\n",
			util.PadRight(util.SimplifyModelName(name), 16),
			util.PadLeft(fmt.Sprintf("%d", m.CallCount), 6),
			util.PadLeft(util.FormatNumber(m.TotalTokens()), 8),
			util.PadLeft(util.FormatCost(aggregator.ModelCost(m)), 8)))
	}
	b.WriteString(f.separator())
}

func (f *TableFormatter) writeDistribution(b *strings.Builder, s *dashboard.Snapshot) {
	if len(s.Distribution) == 0 {
		return
	}

	b.WriteString(util.ColorBold + "Model distribution (current block)" + util.ColorReset + "\n")
	for _, share := range s.Distribution {
		b.WriteString(fmt.Sprintf("  %s %s %5.1f%%  %d calls, %s tokens, %s\n",
			util.PadRight(share.Tier, 8),
			util.CreateProgressBar(share.Percent, 16),
			share.Percent,
			share.Calls,
			util.FormatNumber(share.Tokens),
			util.FormatCost(share.Cost)))
	}
	b.WriteString(f.separator())
}

func (f *TableFormatter) writeWarnings(b *strings.Builder, s *dashboard.Snapshot) {
	for _, warning := range s.Warnings {
		b.WriteString(util.ColorRed + util.ColorBold + "! " + warning + util.ColorReset + "\n")
	}
	if s.MalformedLines > 0 {
		b.WriteString(fmt.Sprintf("%d malformed log lines skipped\n", s.MalformedLines))
	}
}
