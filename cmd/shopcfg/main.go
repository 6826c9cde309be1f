package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/mark3labs/shopcfg/internal/logger"
	"github.com/spf13/cobra"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shopcfg",
	Short: "Terminal product configurator with review and save",
	Long: `shopcfg walks a customer through a product catalog in the terminal.

Each category is a tab; one product is chosen per category. The choices are
captured in a snapshot, compared side by side on a review screen and finally
posted to the shop's save endpoint. Snapshots persist between runs in a local
file or an embedded NATS JetStream key-value bucket.`,
	SilenceUsage: true,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.store, "store", "", "Snapshot store: file, nats or memory")
	f.StringVar(&rootFlags.dataDir, "data-dir", "", "Directory for snapshot files and NATS storage")
	f.StringVar(&rootFlags.endpoint, "endpoint", "", "Save endpoint URL")
	f.StringVar(&rootFlags.locale, "locale", "", "Message language (de, en)")
	f.StringVar(&rootFlags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	f.StringVar(&rootFlags.logFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(submitCmd)
}
