// Package config defines the sessionmd configuration.
package config

//go:generate go run ../tools/schema-generator

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RedactionConfig controls the email allow-lists applied during import.
type RedactionConfig struct {
	// ProtectedAddresses survive redaction exactly as written.
	ProtectedAddresses []string `yaml:"protected_addresses,omitempty"`

	// AllowedDomains exempt any address whose domain part starts with
	// one of these literals.
	AllowedDomains []string `yaml:"allowed_domains,omitempty"`
}

// SessionsConfig controls where import mode looks for transcripts.
type SessionsConfig struct {
	// SearchDirs is an ordered list of project directories searched for
	// <session-id>.jsonl. Empty means every directory under
	// ~/.claude/projects.
	SearchDirs []string `yaml:"search_dirs,omitempty"`
}

// ImportConfig controls where import mode writes Markdown.
type ImportConfig struct {
	// OutputDir overrides the default md/ directory next to the
	// executable.
	OutputDir string `yaml:"output_dir,omitempty"`
}

// Config is the top-level configuration structure for sessionmd.
type Config struct {
	Redaction RedactionConfig `yaml:"redaction,omitempty"`
	Sessions  SessionsConfig  `yaml:"sessions,omitempty"`
	Import    ImportConfig    `yaml:"import,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Redaction: RedactionConfig{
			ProtectedAddresses: []string{"noreply@anthropic.com"},
			AllowedDomains:     []string{"example.com", "domain.com", "test.com"},
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}
