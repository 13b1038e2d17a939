// Package cmd holds the mazegen command line.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mazegen",
	Short: "Generate and serve procedural mazes",
	Long: `mazegen carves perfect mazes with a randomized depth-first search and
opens extra passages as the difficulty drops.

Use "mazegen gen" to write a maze document to disk or "mazegen serve" to
run the HTTP API.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
