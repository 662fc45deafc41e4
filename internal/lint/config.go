package lint

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds per-rule severity overrides loaded from a .sqllint.yaml file.
type Config struct {
	Rules map[string]string `yaml:"rules"` // ruleID → "off"/"error"/"warning"/"info"
}

// LoadConfig reads and parses a .sqllint.yaml configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by the caller (CLI flag or test)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate rejects unknown rule IDs and severity names.
func (c *Config) Validate() error {
	known := map[string]bool{}
	for _, r := range registry {
		known[r.ID()] = true
	}
	for id, sev := range c.Rules {
		if !known[id] {
			return fmt.Errorf("unknown rule %q", id)
		}
		if sev == "off" {
			continue
		}
		if _, err := ParseSeverity(sev); err != nil {
			return fmt.Errorf("rule %s: %w", id, err)
		}
	}
	return nil
}

// effectiveSeverity returns the severity to use for a rule, considering config overrides.
// Returns "" (empty) if the rule is turned off.
func effectiveSeverity(cfg *Config, r Rule) Severity {
	if cfg != nil && cfg.Rules != nil {
		if override, ok := cfg.Rules[r.ID()]; ok {
			if override == "off" {
				return ""
			}
			return Severity(override)
		}
	}
	return r.DefaultSeverity()
}
