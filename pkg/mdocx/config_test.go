package mdocx

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.BodyFont != "Calibri" || cfg.BodySizePt != 11 {
		t.Errorf("body defaults: %s %d", cfg.BodyFont, cfg.BodySizePt)
	}
	if cfg.CodeFont != "Consolas" || cfg.CodeSizePt != 9 {
		t.Errorf("code defaults: %s %d", cfg.CodeFont, cfg.CodeSizePt)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(*Config) {}, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, false},
		{"empty body font", func(c *Config) { c.BodyFont = "" }, false},
		{"zero code size", func(c *Config) { c.CodeSizePt = 0 }, false},
		{"negative body size", func(c *Config) { c.BodySizePt = -1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("MDOCX_BODY_FONT", "Arial")
	t.Setenv("MDOCX_BODY_SIZE_PT", "13")
	t.Setenv("MDOCX_CODE_SIZE_PT", "not-a-number")

	cfg := ConfigFromEnvironment()
	if cfg.BodyFont != "Arial" {
		t.Errorf("body font: %s", cfg.BodyFont)
	}
	if cfg.BodySizePt != 13 {
		t.Errorf("body size: %d", cfg.BodySizePt)
	}
	if cfg.CodeSizePt != 9 {
		t.Errorf("unparsable size must keep default, got %d", cfg.CodeSizePt)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mdocx.yaml")
	data := "body_font: Georgia\ncode_shading: EEEEEE\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BodyFont != "Georgia" {
		t.Errorf("body font: %s", cfg.BodyFont)
	}
	if cfg.CodeShading != "EEEEEE" {
		t.Errorf("code shading: %s", cfg.CodeShading)
	}
	// Unset keys keep their defaults.
	if cfg.CodeFont != "Consolas" {
		t.Errorf("code font: %s", cfg.CodeFont)
	}
}

func TestLoadConfigFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("log_level: shout\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfigFile(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error")
	}
}
