// Package cmd — transform command.
// Restyles an extraction catalogue through the configured LLM.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/themepipe/core/llm"
	"github.com/gaurav-prasanna/themepipe/core/pipeline"
)

var (
	flagStyle        string
	flagTransformOut string
	flagBatchSize    int
	flagConcurrency  int
)

var transformCmd = &cobra.Command{
	Use:   "transform <catalogue.json>",
	Short: "Restyle an extracted catalogue with the LLM",
	Long: `Transform reads an extraction catalogue, rewrites its texts and colors
to match the given style description, and writes the transformed catalogue.
Failed batches keep their original content.

Examples:
  themepipe transform catalogue.json --style "dark, minimalist, tech startup"
  themepipe transform catalogue.json --style "warm bakery" --out transformed.json`,
	Args: cobra.ExactArgs(1),
	RunE: runTransform,
}

func init() {
	rootCmd.AddCommand(transformCmd)
	transformCmd.Flags().StringVar(&flagStyle, "style", "", "Style description (required)")
	transformCmd.Flags().StringVar(&flagTransformOut, "out", "transformed.json", "Output path")
	transformCmd.Flags().StringVar(&flagConfig, "config", "", "YAML configuration file")
	transformCmd.Flags().StringVar(&flagEndpoint, "endpoint", "", "LLM endpoint base URL")
	transformCmd.Flags().StringVar(&flagModel, "model", "", "LLM model name")
	transformCmd.Flags().IntVar(&flagBatchSize, "batch_size", 0, "Text records per LLM request")
	transformCmd.Flags().IntVar(&flagConcurrency, "concurrency", 0, "Concurrent batch requests")
	transformCmd.MarkFlagRequired("style")
}

func runTransform(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagBatchSize > 0 {
		cfg.Transform.BatchSize = flagBatchSize
	}
	if flagConcurrency > 0 {
		cfg.Transform.Concurrency = flagConcurrency
	}

	cat, err := readCatalogue(args[0])
	if err != nil {
		return err
	}

	pipe := pipeline.New(llm.New(cfg.LLMConfig()), pipelineConfig(cfg))
	transformed := pipe.Transform(cmd.Context(), cat, flagStyle)

	if err := writeJSON(flagTransformOut, transformed); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Transformed %d texts and %d colors to %s\n",
		len(transformed.Texts), len(transformed.Colors), flagTransformOut)
	return nil
}
