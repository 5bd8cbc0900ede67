package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "marquee",
	Short: "Marquee scrolls text across a tiny display, one chunk at a time",
	Long: `Marquee splits free-form text into fixed-size chunks (a few short lines each)
and cycles through them on a small display at a configurable interval.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Host config file (YAML)")
	rootCmd.PersistentFlags().String("backend", "", "Store backend: file, memory, redis or sqlite (overrides config)")
	rootCmd.PersistentFlags().String("store-path", "", "Settings file (file backend) or database path (sqlite backend)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("log-file", "", "Also write JSON logs to this file")
}
