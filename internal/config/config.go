// Package config loads the tool-wide YAML defaults shared by every
// owgterrain subcommand (§0 of SPEC_FULL.md): worker count, verbosity,
// locking behavior, and the default data root. Per-layer settings are
// a separate concern, handled by internal/layerconfig.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults is the shape of the optional owgterrain.yaml config file.
// Any field a CLI invocation doesn't set explicitly falls back to
// these values, which themselves fall back to the zero-value defaults
// below when no file is present.
type Defaults struct {
	DataRoot   string `yaml:"dataroot"`
	NumThreads int    `yaml:"numthreads"`
	Verbose    bool   `yaml:"verbose"`
	NoLock     bool   `yaml:"nolock"`
	MaxPoints  int    `yaml:"maxpoints"`
	MinPoints  int    `yaml:"minpoints"`
}

// Default returns the built-in defaults used when no config file is
// present or a field is left unset.
func Default() Defaults {
	return Defaults{
		DataRoot:   ".",
		NumThreads: 4,
		Verbose:    false,
		NoLock:     false,
		MaxPoints:  2048,
		MinPoints:  512,
	}
}

// Load reads a YAML config file at path and overlays it onto
// Default(). A missing file is not an error — the built-in defaults
// are returned unchanged, mirroring the rest of the pipeline's
// "missing input is treated as empty" recovery policy (spec.md §7.3).
func Load(path string) (Defaults, error) {
	d := Default()
	if path == "" {
		return d, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return d, nil
		}
		return d, err
	}
	if err := yaml.Unmarshal(data, &d); err != nil {
		return d, err
	}
	return d, nil
}

// Save writes d to path as YAML, creating the file at the default
// permission set used throughout the tile store (0644).
func Save(path string, d Defaults) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
