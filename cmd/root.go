package cmd

import (
	"fmt"
	"os"

	"github.com/harked/alfresco-bulk-import/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "alfresco-bulk-import",
	Short: "Bulk Filesystem Import Service",
	Long: `Bulk filesystem importer for Alfresco-style repositories.
It scans a source directory, folds content files and metadata sidecars
into versioned items and streams them into the node index and content store.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting.
		// Console format matches CLI expectations, and "debug" level
		// gives ISO8601 timestamps instead of epoch.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
