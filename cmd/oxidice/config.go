package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// oxidiceConfig is the flat table of defaults an oxidice.toml supplies
// (spec.md §6's "optional config file for default limits and RNG
// seed"), mirroring the teacher's project-manifest TOML shape but as a
// single flat table rather than a project graph.
type oxidiceConfig struct {
	RecursionLimit int64 `toml:"recursion_limit"`
	DiceCountLimit int64 `toml:"dice_count_limit"`
	Seed           int64 `toml:"seed"`
	Color          string `toml:"color"`
}

// findConfig looks for oxidice.toml in the current directory when path
// is empty, following the teacher's findSurgeToml search-from-cwd
// pattern (simplified to a single directory: an expression evaluator has
// no project tree to walk upward through).
func findConfig(path string) (string, bool, error) {
	if path != "" {
		return path, true, nil
	}
	candidate := "oxidice.toml"
	if _, err := os.Stat(candidate); err == nil {
		abs, err := filepath.Abs(candidate)
		if err != nil {
			return "", false, err
		}
		return abs, true, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", false, err
	}
	return "", false, nil
}

// loadConfig reads and decodes an oxidice.toml, or returns a zero-value
// config if none is found and configPath was not explicitly set.
func loadConfig(configPath string) (oxidiceConfig, error) {
	path, ok, err := findConfig(configPath)
	if err != nil {
		return oxidiceConfig{}, err
	}
	if !ok {
		return oxidiceConfig{}, nil
	}
	var cfg oxidiceConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return oxidiceConfig{}, err
	}
	return cfg, nil
}
