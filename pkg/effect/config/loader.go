package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvPrefix marks environment variables that override configuration keys.
// EFFECT_MAX_DEPTH=50 overrides the max_depth key.
const EnvPrefix = "EFFECT_"

// FromFile loads configuration from a YAML or JSON file, selected by
// extension, and lays any EFFECT_* environment overrides on top.
// Supported extensions: .yaml, .yml, .json
func FromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		cfg, err = FromYAML(data)
	case ".json":
		cfg, err = FromJSON(data)
	default:
		return Config{}, fmt.Errorf("unsupported config file extension: %s", ext)
	}
	if err != nil {
		return Config{}, err
	}
	return cfg.MergeEnv(os.Environ()), nil
}

// FromYAML parses YAML data into a Config.
func FromYAML(data []byte) (Config, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	return New(m), nil
}

// FromJSON parses JSON data into a Config.
func FromJSON(data []byte) (Config, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse json: %w", err)
	}
	return New(m), nil
}

// FromEnv builds a Config from EFFECT_* environment variables alone, for
// running without a config file.
func FromEnv() Config {
	return New(nil).MergeEnv(os.Environ())
}

// MergeEnv returns a copy of the Config with prefixed entries from environ
// laid over it. The variable name after the prefix is lowercased to form
// the key, so EFFECT_MAX_DEPTH sets max_depth. Values that parse as
// integers or booleans are stored typed; everything else stays a string.
func (c Config) MergeEnv(environ []string) Config {
	merged := make(map[string]any, len(c.data))
	for k, v := range c.data {
		merged[k] = v
	}
	for _, entry := range environ {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
		if key == "" {
			continue
		}
		merged[key] = coerce(value)
	}
	return New(merged)
}

// coerce converts an environment value into its closest typed form.
func coerce(value string) any {
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return value
}
