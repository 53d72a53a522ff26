package dashboard

import (
	"fmt"
	"sort"

	"github.com/claudewatch/claudewatch/internal/core/model"
	"github.com/claudewatch/claudewatch/internal/data/parser"
	"github.com/claudewatch/claudewatch/internal/data/scanner"
	"github.com/claudewatch/claudewatch/internal/util"
)

// Loader materializes the event history for one pass: discover log
// files, parse them concurrently, merge and globally sort. Partitioning
// is order-dependent, so the merged stream is always sorted before it
// reaches the engine.
type Loader struct {
	scanner *scanner.FileScanner
	parser  *parser.Parser
}

// NewLoader creates a loader over the given data directory.
func NewLoader(dataDir string, concurrency int) *Loader {
	return &Loader{
		scanner: scanner.NewFileScanner(dataDir),
		parser:  parser.NewParser(concurrency),
	}
}

// Load returns the full merged event history and the count of malformed
// lines skipped along the way. A single unreadable file is logged and
// skipped; only an unreadable data directory fails the pass.
func (l *Loader) Load() ([]model.UsageEvent, int, error) {
	files, err := l.scanner.Scan()
	if err != nil {
		return nil, 0, fmt.Errorf("scan data directory: %w", err)
	}
	if len(files) == 0 {
		return nil, 0, nil
	}

	var events []model.UsageEvent
	malformed := 0
	for result := range l.parser.ParseFiles(files) {
		if result.Error != nil {
			util.LogWarn(fmt.Sprintf("Skipping unreadable file %s: %v", result.File, result.Error))
			continue
		}
		events = append(events, result.Events...)
		malformed += result.Malformed
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	util.LogDebug(fmt.Sprintf("Loaded %d events from %d files (%d malformed lines skipped)",
		len(events), len(files), malformed))

	return events, malformed, nil
}
