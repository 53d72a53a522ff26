package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/claudewatch/claudewatch/internal/application/dashboard"
	"github.com/claudewatch/claudewatch/internal/config"
	"github.com/claudewatch/claudewatch/internal/core/pricing"
	"github.com/claudewatch/claudewatch/internal/presentation/formatter"
	"github.com/claudewatch/claudewatch/internal/util"
)

var (
	// Logging related
	debug bool

	// Data path
	dataDir string

	// Plan and display
	planName     string
	timezone     string
	timeFormat   string
	outputFormat string

	rootCmd = &cobra.Command{
		Use:   "claudewatch",
		Short: "Claude Code usage dashboard",
		Long: `claudewatch aggregates local Claude Code usage logs into a live view of
consumption against the subscription's rolling 5-hour rate-limit window.

It reads JSONL logs from the Claude project directory, groups API calls
into hour-aligned 5-hour blocks, tracks both rate-limit and real spend
accounting, and extrapolates when the current window's limits would run
out at the observed burn rate.

Examples:
  claudewatch                        # One-shot dashboard with defaults
  claudewatch --plan max5            # Report against the Max5 plan
  claudewatch --output json          # Machine-readable snapshot
  claudewatch watch                  # Live dashboard, refreshes on log changes
  claudewatch blocks                 # List all 5-hour blocks in the history
  claudewatch plans                  # Show the plan catalog`,
		RunE: runDashboard,
	}
)

const (
	defaultLogFile = "~/.claudewatch/logs/app.log"
	defaultDataDir = "~/.claude/projects"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", defaultDataDir,
		"Claude project directory path")
	rootCmd.PersistentFlags().StringVar(&planName, "plan", "",
		"Subscription plan (Pro, Max5, Max20)")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "",
		"Timezone for calendar periods and display (e.g. UTC, Asia/Shanghai)")
	rootCmd.PersistentFlags().StringVar(&timeFormat, "time-format", "",
		"Time format (12h or 24h)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")

	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, summary)")
}

// loadSettings merges the config file with command-line flags; flags win.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		util.LogWarn(fmt.Sprintf("Failed to load config, using defaults: %v", err))
		cfg = config.Default()
	}

	if planName != "" {
		cfg.Plan = planName
	}
	if timezone != "" {
		cfg.Timezone = timezone
	}
	if timeFormat != "" {
		cfg.TimeFormat = timeFormat
	}
	if cmd.Flags().Changed("dir") {
		cfg.DataDir = dataDir
	}

	return cfg, nil
}

// setup initializes logging and the time provider, and resolves the
// plan. Shared by every command.
func setup(cmd *cobra.Command) (*config.Config, pricing.Plan, error) {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := expandPath(defaultLogFile)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return nil, pricing.Plan{}, fmt.Errorf("failed to create log directory: %w", err)
	}
	util.InitLogger(logLevel, logFile, debug)

	cfg, err := loadSettings(cmd)
	if err != nil {
		return nil, pricing.Plan{}, err
	}

	if err := util.InitializeTimeProvider(cfg.Timezone); err != nil {
		return nil, pricing.Plan{}, err
	}

	// Plan selection is validated here, before any aggregation runs.
	plan, err := pricing.PlanByName(cfg.Plan)
	if err != nil {
		return nil, pricing.Plan{}, err
	}

	return cfg, plan, nil
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, plan, err := setup(cmd)
	if err != nil {
		return err
	}

	loader := dashboard.NewLoader(expandPath(cfg.DataDir), runtime.NumCPU())
	events, malformed, err := loader.Load()
	if err != nil {
		return err
	}

	engine := dashboard.NewEngine(plan, util.GetTimeProvider().Location())
	snapshot := engine.Compute(events, time.Now().UTC())
	snapshot.MalformedLines = malformed

	f, err := formatter.New(outputFormat, formatter.Options{TimeFormat: cfg.TimeFormat})
	if err != nil {
		return err
	}
	return f.Format(snapshot)
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
