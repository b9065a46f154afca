// Package cmd — restyle command.
// This is the main command that orchestrates the full pipeline:
// load → extract → transform → replace → serialize.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/themepipe/core/fetch"
	"github.com/gaurav-prasanna/themepipe/core/llm"
	"github.com/gaurav-prasanna/themepipe/core/output"
	"github.com/gaurav-prasanna/themepipe/core/pipeline"
)

var (
	flagRestyleStyle string
	flagRestyleOut   string
)

var restyleCmd = &cobra.Command{
	Use:   "restyle <export.xml|url>",
	Short: "Run the full restyle pipeline on an export",
	Long: `Restyle runs extract, transform, and replace end to end and publishes
the restyled export atomically. The input may be a local file or an HTTP(S)
URL pointing at the export XML.

Examples:
  themepipe restyle theme.xml --style "dark, minimalist, tech startup"
  themepipe restyle https://example.com/theme.xml --style "warm bakery" --out restyled.xml`,
	Args: cobra.ExactArgs(1),
	RunE: runRestyle,
}

func init() {
	rootCmd.AddCommand(restyleCmd)
	restyleCmd.Flags().StringVar(&flagRestyleStyle, "style", "", "Style description (required)")
	restyleCmd.Flags().StringVar(&flagRestyleOut, "out", "restyled.xml", "Output XML path")
	restyleCmd.Flags().StringVar(&flagConfig, "config", "", "YAML configuration file")
	restyleCmd.Flags().StringVar(&flagEndpoint, "endpoint", "", "LLM endpoint base URL")
	restyleCmd.Flags().StringVar(&flagModel, "model", "", "LLM model name")
	restyleCmd.MarkFlagRequired("style")
}

func runRestyle(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	inputPath := args[0]
	if strings.HasPrefix(inputPath, "http://") || strings.HasPrefix(inputPath, "https://") {
		inputPath, err = downloadExport(cmd, inputPath)
		if err != nil {
			return err
		}
		defer os.Remove(inputPath)
	}

	pipe := pipeline.New(llm.New(cfg.LLMConfig()), pipelineConfig(cfg))
	job := pipe.Run(cmd.Context(), inputPath, flagRestyleStyle, flagRestyleOut)
	if job.Failed() {
		return fmt.Errorf("restyle: %w", job.Err)
	}

	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", flagRestyleOut)
	return nil
}

// downloadExport fetches a remote export to a temporary file so the
// pipeline can re-read the original during replacement.
func downloadExport(cmd *cobra.Command, url string) (string, error) {
	fmt.Fprintf(os.Stdout, "Downloading %s...\n", url)

	data, err := fetch.New().Fetch(cmd.Context(), url)
	if err != nil {
		return "", fmt.Errorf("downloading export: %w", err)
	}

	path := filepath.Join(os.TempDir(), "themepipe-input.xml")
	if err := output.WriteAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}
