package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reelworks/reel-api/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "reel-api",
	Short: "Reel revision API server",
	Long: `Reel Revision API - versioned metadata and transcript editing for machining reels

This API keeps an append-only revision history for every reel's metadata,
stores editable transcripts with wholesale replacement semantics, and runs
background jobs that re-derive video attributes.

Features:
  • Optimistic-concurrency metadata commits with full version history
  • Rollback that appends a restoring version instead of rewriting history
  • Transcript editing with ordering and overlap validation
  • Polling reprocess jobs executed by a background worker pool`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
}

// loadConfig loads the configuration when a command needs it
func loadConfig() {
	// The version command works without any config
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && (cmd.Name() == "version" || cmd.Name() == "help") {
		return
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}
