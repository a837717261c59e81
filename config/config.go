// Package config loads the evaluator configuration from YAML or JSON files
// with optional environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	coremetrics "github.com/kilianp07/rcpsp-inv/core/metrics"
	"github.com/kilianp07/rcpsp-inv/core/rcpsp"
	"github.com/kilianp07/rcpsp-inv/internal/bench"
)

type Config struct {
	Evaluator rcpsp.Config       `json:"evaluator"`
	Metrics   coremetrics.Config `json:"metrics"`
	Bench     bench.Config       `json:"bench"`
	Logging   LoggingConfig      `json:"logging"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.Evaluator.SetDefaults()
	cfg.Bench.SetDefaults()
	cfg.Logging.SetDefaults()
	return cfg
}

// Load reads the config file at path. The format follows the file extension;
// environment variables prefixed with K_ override file values, with __
// separating nesting levels.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Evaluator.SetDefaults()
	cfg.Bench.SetDefaults()
	cfg.Logging.SetDefaults()
	if err := cfg.Evaluator.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Bench.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
