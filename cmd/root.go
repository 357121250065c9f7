package cmd

import (
	"fmt"
	"os"

	"ruleset-combiner/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "ruleset-combiner",
	Short: "Ruleset Combiner",
	Long: `Ruleset Combiner merges the ruleset mods in an input directory into a single
combined ruleset: one consolidated building, improvement and unit per base entity,
a combined nation, and an asset manifest.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format at debug level gives readable ISO8601 timestamps for CLI users.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
