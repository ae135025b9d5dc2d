// Package config provides typed access to loosely-structured configuration
// maps, loaded from YAML or JSON files with EFFECT_* environment overrides.
//
// It is used to drive perform options (see effect.FromConfig) but carries no
// dependency on the engine itself.
package config
