package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileReturnsZeroValue(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	defer os.Chdir(cwd)
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg != (oxidiceConfig{}) {
		t.Fatalf("cfg = %+v, want zero value", cfg)
	}
}

func TestLoadConfigDecodesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	data := `
recursion_limit = 500
dice_count_limit = 2000
seed = 42
color = "on"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.RecursionLimit != 500 || cfg.DiceCountLimit != 2000 || cfg.Seed != 42 || cfg.Color != "on" {
		t.Fatalf("cfg = %+v, want {500 2000 42 on}", cfg)
	}
}

func TestResolveColor(t *testing.T) {
	if !resolveColor("on") {
		t.Fatalf("resolveColor(on) = false, want true")
	}
	if resolveColor("off") {
		t.Fatalf("resolveColor(off) = true, want false")
	}
}
