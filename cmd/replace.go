// Package cmd — replace command.
// Applies a transformed catalogue back onto the original export.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/themepipe/core/output"
	"github.com/gaurav-prasanna/themepipe/core/pipeline"
)

var (
	flagReplaceOut     string
	flagNoProtectWhite bool
)

var replaceCmd = &cobra.Command{
	Use:   "replace <export.xml> <transformed.json>",
	Short: "Splice transformed content back into the export",
	Long: `Replace re-reads the original export, overwrites every matched widget
setting with its transformed value, and writes the modified document.
White backgrounds are protected from color substitution unless disabled.

Examples:
  themepipe replace theme.xml transformed.json
  themepipe replace theme.xml transformed.json --out restyled.xml --no_protect_white`,
	Args: cobra.ExactArgs(2),
	RunE: runReplace,
}

func init() {
	rootCmd.AddCommand(replaceCmd)
	replaceCmd.Flags().StringVar(&flagReplaceOut, "out", "restyled.xml", "Output XML path")
	replaceCmd.Flags().StringVar(&flagConfig, "config", "", "YAML configuration file")
	replaceCmd.Flags().BoolVar(&flagNoProtectWhite, "no_protect_white", false, "Allow color substitution on white backgrounds")
}

func runReplace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagNoProtectWhite {
		cfg.Replace.ProtectWhite = false
	}

	transformed, err := readTransformed(args[1])
	if err != nil {
		return err
	}

	pipe := pipeline.New(nil, pipelineConfig(cfg))
	data, err := pipe.Replace(args[0], transformed)
	if err != nil {
		return fmt.Errorf("replace: %w", err)
	}

	if err := output.WriteAtomic(flagReplaceOut, data); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", flagReplaceOut)
	return nil
}
