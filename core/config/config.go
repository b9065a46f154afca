// Package config loads ThemePipe's pipeline configuration from YAML.
// Credentials never live in the file itself: the llm section names an
// environment variable and the key is resolved at load time.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/themepipe/core/llm"
	"github.com/gaurav-prasanna/themepipe/core/replace"
	"github.com/gaurav-prasanna/themepipe/core/transform"
)

const defaultAPIKeyEnv = "OPENAI_API_KEY"

// LLM configures the chat-completions endpoint.
type LLM struct {
	Endpoint       string  `yaml:"endpoint"`
	Model          string  `yaml:"model"`
	APIKeyEnv      string  `yaml:"api_key_env"`
	Temperature    float32 `yaml:"temperature"`
	MaxTokens      int     `yaml:"max_tokens"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

// Extract configures the extractor.
type Extract struct {
	MinTextLength int `yaml:"min_text_length"`
}

// Config is the full pipeline configuration.
type Config struct {
	LLM       LLM              `yaml:"llm"`
	Extract   Extract          `yaml:"extract"`
	Transform transform.Config `yaml:"transform"`
	Replace   replace.Config   `yaml:"replace"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LLM: LLM{
			Endpoint:       "https://api.openai.com",
			Model:          "gpt-4o-mini",
			APIKeyEnv:      defaultAPIKeyEnv,
			Temperature:    0.7,
			MaxTokens:      4096,
			TimeoutSeconds: 60,
		},
		Extract: Extract{MinTextLength: 4},
		Transform: transform.Config{
			BatchSize:   5,
			Concurrency: 1,
		},
		Replace: replace.Config{
			ProtectWhite: true,
		},
	}
}

// Load reads a YAML configuration file over the defaults. An empty
// path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// LLMConfig resolves the llm section into a client config, reading the
// API key from the named environment variable.
func (c Config) LLMConfig() llm.Config {
	env := c.LLM.APIKeyEnv
	if env == "" {
		env = defaultAPIKeyEnv
	}
	// The config layer always carries an explicit temperature (the
	// default or the YAML value), so zero passes through as written.
	temperature := c.LLM.Temperature
	return llm.Config{
		Endpoint:    c.LLM.Endpoint,
		APIKey:      os.Getenv(env),
		Model:       c.LLM.Model,
		Temperature: &temperature,
		MaxTokens:   c.LLM.MaxTokens,
		Timeout:     time.Duration(c.LLM.TimeoutSeconds) * time.Second,
	}
}
