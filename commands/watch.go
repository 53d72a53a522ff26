package commands

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/claudewatch/claudewatch/internal/application/dashboard"
	"github.com/claudewatch/claudewatch/internal/config"
	"github.com/claudewatch/claudewatch/internal/core/model"
	"github.com/claudewatch/claudewatch/internal/core/pricing"
	"github.com/claudewatch/claudewatch/internal/data/watcher"
	"github.com/claudewatch/claudewatch/internal/presentation/display"
	"github.com/claudewatch/claudewatch/internal/presentation/formatter"
	"github.com/claudewatch/claudewatch/internal/presentation/interaction"
	"github.com/claudewatch/claudewatch/internal/util"
)

var (
	refreshInterval int

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Live dashboard that refreshes as logs change",
		Long: `Runs the dashboard in the alternate screen buffer, recomputing on a
fixed interval and whenever the Claude project directory changes.

Keys:
  q, Ctrl+C, ESC   quit
  p                cycle through plans
  r                force a refresh`,
		RunE: runWatch,
	}
)

func init() {
	watchCmd.Flags().IntVar(&refreshInterval, "interval", 10,
		"Refresh interval in seconds")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, plan, err := setup(cmd)
	if err != nil {
		return err
	}

	dataDir := expandPath(cfg.DataDir)
	loader := dashboard.NewLoader(dataDir, runtime.NumCPU())

	var fileEvents <-chan model.FileEvent
	fw, err := watcher.NewFileWatcher([]string{dataDir})
	if err != nil {
		util.LogWarn(fmt.Sprintf("File watching unavailable, interval refresh only: %v", err))
	} else {
		defer fw.Close()
		fileEvents = fw.Events()
	}

	term := display.NewTerminal()
	term.EnterAlternateScreen()
	defer term.ExitAlternateScreen()

	view := &watchView{
		loader:     loader,
		term:       term,
		timeFormat: cfg.TimeFormat,
		plans:      pricing.Plans(),
	}
	for i, p := range view.plans {
		if strings.EqualFold(p.Name, plan.Name) {
			view.planIdx = i
		}
	}

	rc := dashboard.NewRefreshController(time.Duration(refreshInterval)*time.Second, fileEvents)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	kb, err := interaction.NewKeyboardReader()
	if err != nil {
		util.LogWarn(fmt.Sprintf("Keyboard input unavailable: %v", err))
	} else {
		defer kb.Close()
		go func() {
			for ev := range kb.Events() {
				switch ev.Key {
				case 'q', 'Q', 3, 27:
					cancel()
					return
				case 'p', 'P':
					// Cycled plan selection sticks across runs.
					cfg.Plan = view.cyclePlan().Name
					if err := config.Save(cfg); err != nil {
						util.LogWarn(fmt.Sprintf("Failed to save plan selection: %v", err))
					}
					rc.ForceRefresh()
				case 'r', 'R':
					rc.ForceRefresh()
				}
			}
		}()
	}

	err = rc.Run(ctx, view.refresh)
	if err == context.Canceled {
		return nil
	}
	return err
}

// watchView holds the mutable state of live mode. refresh runs on the
// controller goroutine, cyclePlan on the keyboard goroutine.
type watchView struct {
	mu         sync.Mutex
	loader     *dashboard.Loader
	term       *display.Terminal
	timeFormat string
	plans      []pricing.Plan
	planIdx    int
}

func (v *watchView) cyclePlan() pricing.Plan {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.planIdx = (v.planIdx + 1) % len(v.plans)
	return v.plans[v.planIdx]
}

func (v *watchView) refresh() error {
	v.mu.Lock()
	plan := v.plans[v.planIdx]
	v.mu.Unlock()

	events, malformed, err := v.loader.Load()
	if err != nil {
		return err
	}

	engine := dashboard.NewEngine(plan, util.GetTimeProvider().Location())
	snapshot := engine.Compute(events, time.Now().UTC())
	snapshot.MalformedLines = malformed

	f := formatter.NewTableFormatter(formatter.Options{
		TimeFormat: v.timeFormat,
		Width:      v.term.Width(),
	})

	v.term.Clear()
	if err := f.Format(snapshot); err != nil {
		return err
	}
	fmt.Println("\n[q] quit  [p] cycle plan  [r] refresh")
	return nil
}
