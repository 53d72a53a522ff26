package commands

import (
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/claudewatch/claudewatch/internal/application/dashboard"
	"github.com/claudewatch/claudewatch/internal/core/session"
	"github.com/claudewatch/claudewatch/internal/presentation/formatter"
)

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "List every 5-hour block in the usage history",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup(cmd)
		if err != nil {
			return err
		}

		loader := dashboard.NewLoader(expandPath(cfg.DataDir), runtime.NumCPU())
		events, _, err := loader.Load()
		if err != nil {
			return err
		}

		blocks := session.Partition(events, time.Now().UTC())

		return formatter.FormatBlocks(blocks, formatter.Options{TimeFormat: cfg.TimeFormat})
	},
}

func init() {
	rootCmd.AddCommand(blocksCmd)
}
