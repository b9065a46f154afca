// Package cmd implements the CLI commands for ThemePipe using Cobra.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var flagVerbose bool

var rootCmd = &cobra.Command{
	Use:   "themepipe",
	Short: "ThemePipe — restyle WordPress Elementor exports with an LLM",
	Long: `ThemePipe extracts text and color values from WordPress Elementor
export XML, restyles them through an LLM according to a free-text style
description, and splices the results back into the original document.

Usage:
  themepipe extract <export.xml> [flags]
  themepipe transform <catalogue.json> --style "..." [flags]
  themepipe replace <export.xml> <transformed.json> [flags]
  themepipe restyle <export.xml|url> --style "..." [flags]`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
