package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mesh-intelligence/txlens/pkg/types"
)

func TestLoadConfig(t *testing.T) {
	t.Run("missing config.yaml yields defaults", func(t *testing.T) {
		cfg, err := loadConfig(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		if cfg != types.DefaultConfig() {
			t.Fatalf("expected defaults, got %+v", cfg)
		}
	})

	t.Run("partial config overrides only named keys", func(t *testing.T) {
		dir := t.TempDir()
		yaml := "sampler:\n  max_nodes: 99\n"
		if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg, err := loadConfig(dir)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.MaxSampleNodes != 99 {
			t.Fatalf("max_nodes = %d, want 99", cfg.MaxSampleNodes)
		}
		if cfg.MaxInputSizeBytes != types.DefaultMaxInputSizeBytes {
			t.Fatalf("unnamed key lost its default: %d", cfg.MaxInputSizeBytes)
		}
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		dir := t.TempDir()
		yaml := "sampler:\n  proportions:\n    illicit: 1.5\n"
		if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := loadConfig(dir)
		if !errors.Is(err, types.ErrProportionRange) {
			t.Fatalf("expected ErrProportionRange, got %v", err)
		}
	})
}

func TestEnsureDefaultConfigFile(t *testing.T) {
	t.Run("creates default on first run", func(t *testing.T) {
		dir := t.TempDir()
		if err := ensureDefaultConfigFile(dir); err != nil {
			t.Fatal(err)
		}
		cfg, err := loadConfig(dir)
		if err != nil {
			t.Fatal(err)
		}
		if err := cfg.Validate(); err != nil {
			t.Fatalf("default config.yaml must validate: %v", err)
		}
	})

	t.Run("does not overwrite an existing file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		if err := os.WriteFile(path, []byte("sampler:\n  max_nodes: 7\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := ensureDefaultConfigFile(dir); err != nil {
			t.Fatal(err)
		}
		cfg, err := loadConfig(dir)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.MaxSampleNodes != 7 {
			t.Fatalf("existing config was overwritten: %+v", cfg)
		}
	})
}
