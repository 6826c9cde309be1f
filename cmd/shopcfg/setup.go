package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/shopcfg/internal/config"
	"github.com/spf13/cobra"
)

var setupFlags struct {
	project bool
	force   bool
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create shopcfg configuration file",
	Long: `Create a shopcfg configuration file with sensible defaults.

By default, creates a global config at ~/.config/shopcfg/shopcfg.yml.
Use --project to create a project-local config in the current directory.
Values given with --store, --endpoint, --data-dir and --locale are written
into the file.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
}

func runSetup(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	if !setupFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	cfg := config.Default()
	override(&cfg.Store, rootFlags.store)
	override(&cfg.DataDir, rootFlags.dataDir)
	override(&cfg.Endpoint, rootFlags.endpoint)
	override(&cfg.Locale, rootFlags.locale)
	override(&cfg.LogLevel, rootFlags.logLevel)
	override(&cfg.LogFile, rootFlags.logFile)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	var err error
	if setupFlags.project {
		err = config.WriteProject(cfg)
	} else {
		err = config.WriteGlobal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Config written to: %s\n\n", targetPath)
	fmt.Println("Run 'shopcfg run' to get started.")
	return nil
}

// fileExists checks if a file exists (helper for setup command).
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
