package cmd

import (
	"fmt"
	"os"

	"record-compactor/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "record-compactor",
	Short: "Columnar compactor for typed resource records",
	Long: `Record Compactor turns documents of typed, flat resource records into
columnar artifacts with deduplicated URL and string dictionaries, and rebuilds
the records from them. It runs as a CLI or as an HTTP service, publishes
artifacts to S3/MinIO and keeps an optional history of runs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Debug level gives ISO8601 timestamps for CLI output.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
