package formatter

import (
	"fmt"

	"github.com/claudewatch/claudewatch/internal/application/dashboard"
)

// Formatter renders one snapshot to stdout.
type Formatter interface {
	Format(snapshot *dashboard.Snapshot) error
}

// Options carries display-level settings shared by the formatters.
type Options struct {
	TimeFormat string // "12h" or "24h"
	Width      int    // target display width, 0 for default
}

// New returns the formatter for the requested output format.
func New(format string, opts Options) (Formatter, error) {
	switch format {
	case "table", "":
		return NewTableFormatter(opts), nil
	case "json":
		return NewJSONFormatter(), nil
	case "summary":
		return NewSummaryFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (available: table, json, summary)", format)
	}
}

func timeLayout(opts Options) string {
	if opts.TimeFormat == "12h" {
		return "3:04 PM"
	}
	return "15:04"
}
