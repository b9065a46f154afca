// Package cmd — report command.
// Renders a Markdown or PDF digest of an export for review.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/themepipe/core"
	"github.com/gaurav-prasanna/themepipe/core/output"
	"github.com/gaurav-prasanna/themepipe/core/pipeline"
	"github.com/gaurav-prasanna/themepipe/core/report"
	"github.com/gaurav-prasanna/themepipe/core/wpxml"
)

var (
	flagReportMarkdown bool
	flagReportPDF      bool
	flagOutputDir      string
)

var reportCmd = &cobra.Command{
	Use:   "report <export.xml>",
	Short: "Render a digest of an export's posts and catalogue",
	Long: `Report parses an export, extracts its catalogue, and renders a digest
of every post (body converted to Markdown) plus extraction statistics.

Examples:
  themepipe report theme.xml --markdown
  themepipe report theme.xml --pdf --output_dir ./out`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().BoolVar(&flagReportMarkdown, "markdown", false, "Output Markdown")
	reportCmd.Flags().BoolVar(&flagReportPDF, "pdf", false, "Output PDF")
	reportCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
	reportCmd.Flags().StringVar(&flagConfig, "config", "", "YAML configuration file")
}

func runReport(cmd *cobra.Command, args []string) error {
	reporter, err := selectReporter()
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	doc, err := wpxml.Parse(args[0])
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}

	pipe := pipeline.New(nil, pipelineConfig(cfg))
	cat := pipe.ExtractDocument(doc)

	digest := report.Build(doc, cat, filepath.Base(args[0]))
	data, err := reporter.Render(digest)
	if err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	path, err := writer.Write(name+"_digest", data, reporter.Extension())
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

// selectReporter checks that exactly one output format is chosen.
func selectReporter() (core.Reporter, error) {
	switch {
	case flagReportMarkdown && flagReportPDF:
		return nil, fmt.Errorf("--markdown and --pdf are mutually exclusive")
	case flagReportPDF:
		return report.NewPDFReporter(), nil
	case flagReportMarkdown:
		return report.NewMarkdownReporter(), nil
	default:
		return nil, fmt.Errorf("exactly one output format is required: --markdown or --pdf")
	}
}
