// Package config loads the jsonnorm rules file, a small YAML document
// that maps field-key patterns to coercion targets.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonflex/internal/errors"
)

// Coercion targets a rule may name.
const (
	TargetString  = "string"
	TargetInt64   = "int64"
	TargetUint64  = "uint64"
	TargetFloat64 = "float64"
)

// Config represents the complete configuration for jsonnorm
type Config struct {
	Rules               []Rule       `yaml:"rules"`
	MatchNormalizedKeys bool         `yaml:"match_normalized_keys"`
	Strict              bool         `yaml:"strict"`
	Output              OutputConfig `yaml:"output"`
}

// Rule maps a field-key pattern to a coercion target
type Rule struct {
	Pattern string `yaml:"pattern"`
	To      string `yaml:"to"`
	Comment string `yaml:"comment,omitempty"`

	// compiled regex (not serialized)
	regex *regexp.Regexp
}

// OutputConfig controls how the normalized document is written
type OutputConfig struct {
	Compact bool `yaml:"compact"`
	Indent  int  `yaml:"indent"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Rules:               []Rule{},
		MatchNormalizedKeys: false,
		Strict:              false,
		Output: OutputConfig{
			Compact: false,
			Indent:  2,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file '%s'", path), err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("failed to parse config file", err)
	}

	if err := cfg.Compile(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a rules file in the current directory and
// its parents
func FindConfigFile() string {
	configNames := []string{".jsonnorm.yml", ".jsonnorm.yaml", "jsonnorm.yml", "jsonnorm.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Compile validates every rule's target and compiles its pattern. It must
// be called before MatchesKey; LoadConfig does so itself.
func (c *Config) Compile() error {
	for i := range c.Rules {
		rule := &c.Rules[i]
		if !validTarget(rule.To) {
			return errors.NewConfigError(
				fmt.Sprintf("rule %d ('%s') targets '%s'", i+1, rule.Pattern, rule.To),
				errors.ErrUnknownTarget,
			)
		}
		regex, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return errors.NewConfigError(fmt.Sprintf("invalid rule pattern '%s'", rule.Pattern), err)
		}
		rule.regex = regex
	}
	return nil
}

func validTarget(to string) bool {
	switch to {
	case TargetString, TargetInt64, TargetUint64, TargetFloat64:
		return true
	}
	return false
}

// MatchesKey checks whether this rule matches the given object key. When
// normalized matching is on, the snake_case form of the key is tried as
// well, so one rule covers userId, user_id and UserID spellings.
func (r *Rule) MatchesKey(key string, matchNormalized bool) bool {
	if r.regex == nil {
		// Try to compile if not already compiled (fallback)
		regex, err := regexp.Compile(r.Pattern)
		if err != nil {
			return false
		}
		r.regex = regex
	}
	if r.regex.MatchString(key) {
		return true
	}
	if matchNormalized {
		return r.regex.MatchString(strcase.ToSnake(key))
	}
	return false
}

// FindRule finds the first rule matching the given object key
func (c *Config) FindRule(key string) (Rule, bool) {
	for _, rule := range c.Rules {
		if rule.MatchesKey(key, c.MatchNormalizedKeys) {
			return rule, true
		}
	}
	return Rule{}, false
}

// IndentString returns the indent to encode output with, empty for
// compact output
func (c *Config) IndentString() string {
	if c.Output.Compact || c.Output.Indent <= 0 {
		return ""
	}
	return strings.Repeat(" ", c.Output.Indent)
}
