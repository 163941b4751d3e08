// Package cli implements the Vita command-line interface using Cobra.
// Each subcommand maps to one tracker operation (log, achievements, stats,
// reset, serve).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vita",
	Short: "Vita — local-first health tracking",
	Long: `Vita tracks water, sleep, mood, workouts and nutrition on your machine
and unlocks achievements as your habits build up. All state stays local.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
