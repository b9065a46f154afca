package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gaurav-prasanna/themepipe/core"
	"github.com/gaurav-prasanna/themepipe/core/config"
	"github.com/gaurav-prasanna/themepipe/core/output"
	"github.com/gaurav-prasanna/themepipe/core/pipeline"
)

// Shared flags for commands that load the pipeline configuration.
var (
	flagConfig   string
	flagEndpoint string
	flagModel    string
)

// loadConfig reads the YAML config and applies flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagEndpoint != "" {
		cfg.LLM.Endpoint = flagEndpoint
	}
	if flagModel != "" {
		cfg.LLM.Model = flagModel
	}
	return cfg, nil
}

// pipelineConfig maps the loaded configuration onto the pipeline.
func pipelineConfig(cfg config.Config) pipeline.Config {
	return pipeline.Config{
		MinTextLength: cfg.Extract.MinTextLength,
		Transform:     cfg.Transform,
		Replace:       cfg.Replace,
	}
}

// writeJSON marshals v with indentation and publishes it atomically.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return output.WriteAtomic(path, append(data, '\n'))
}

// readCatalogue loads an extraction catalogue JSON file.
func readCatalogue(path string) (core.Catalogue, error) {
	var cat core.Catalogue
	data, err := os.ReadFile(path)
	if err != nil {
		return cat, fmt.Errorf("reading catalogue %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cat); err != nil {
		return cat, fmt.Errorf("parsing catalogue %s: %w", path, err)
	}
	return cat, nil
}

// readTransformed loads a transformed catalogue JSON file.
func readTransformed(path string) (core.TransformedCatalogue, error) {
	var cat core.TransformedCatalogue
	data, err := os.ReadFile(path)
	if err != nil {
		return cat, fmt.Errorf("reading transformed catalogue %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cat); err != nil {
		return cat, fmt.Errorf("parsing transformed catalogue %s: %w", path, err)
	}
	return cat, nil
}
