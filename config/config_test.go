package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Extract.CharThreshold != 500 {
		t.Errorf("Extract.CharThreshold = %d, want 500", cfg.Extract.CharThreshold)
	}
	if cfg.Extract.DefaultFormat != "html" {
		t.Errorf("Extract.DefaultFormat = %q, want html", cfg.Extract.DefaultFormat)
	}
	if !cfg.Auth.Enabled {
		t.Error("Auth.Enabled should default to true")
	}
	if cfg.Cache.TTL != time.Hour {
		t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("READABILITY_PORT", "9090")
	t.Setenv("READABILITY_CHAR_THRESHOLD", "1200")
	t.Setenv("READABILITY_KEEP_CLASSES", "true")
	t.Setenv("READABILITY_PRESERVE_CLASSES", "page, hero , caption")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Extract.CharThreshold != 1200 {
		t.Errorf("Extract.CharThreshold = %d, want 1200", cfg.Extract.CharThreshold)
	}
	if !cfg.Extract.KeepClasses {
		t.Error("Extract.KeepClasses should be true")
	}
	want := []string{"page", "hero", "caption"}
	if len(cfg.Extract.ClassesToPreserve) != len(want) {
		t.Fatalf("ClassesToPreserve = %v, want %v", cfg.Extract.ClassesToPreserve, want)
	}
	for i, c := range want {
		if cfg.Extract.ClassesToPreserve[i] != c {
			t.Errorf("ClassesToPreserve[%d] = %q, want %q", i, cfg.Extract.ClassesToPreserve[i], c)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/config.yaml"
	yamlContent := "server:\n  port: 7070\nextract:\n  char_threshold: 800\n  default_format: markdown\n"
	if err := os.WriteFile(path, []byte(yamlContent), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Extract.CharThreshold != 800 {
		t.Errorf("Extract.CharThreshold = %d, want 800", cfg.Extract.CharThreshold)
	}
	if cfg.Extract.DefaultFormat != "markdown" {
		t.Errorf("Extract.DefaultFormat = %q, want markdown", cfg.Extract.DefaultFormat)
	}
}

func TestLoadFileEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/config.yaml"
	if err := os.WriteFile(path, []byte("server:\n  port: 7070\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("READABILITY_PORT", "6060")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Server.Port != 6060 {
		t.Errorf("Server.Port = %d, want 6060 (env should win over file)", cfg.Server.Port)
	}
}

func TestExtractConfigToOptions(t *testing.T) {
	c := ExtractConfig{
		NbTopCandidates:     3,
		CharThreshold:       900,
		ClassesToPreserve:   []string{"page", "caption"},
		KeepClasses:         true,
		DisableJSONLD:       true,
		LinkDensityModifier: -0.1,
	}
	opts := c.ToOptions()

	if opts.NbTopCandidates != 3 {
		t.Errorf("NbTopCandidates = %d, want 3", opts.NbTopCandidates)
	}
	if opts.CharThreshold != 900 {
		t.Errorf("CharThreshold = %d, want 900", opts.CharThreshold)
	}
	if !opts.KeepClasses || !opts.DisableJSONLD {
		t.Error("KeepClasses and DisableJSONLD should carry through")
	}
	if opts.LinkDensityModifier != -0.1 {
		t.Errorf("LinkDensityModifier = %v, want -0.1", opts.LinkDensityModifier)
	}
	if opts.AllowedVideoRegex == nil {
		t.Error("ToOptions should leave the default video regex in place")
	}
}
