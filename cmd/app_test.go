package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.User != "trader" || cfg.DataDir != ".mct" || cfg.Model == "" {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mct.yaml")
	raw := "user: nik\ndata_dir: /tmp/mct\nmodel: gemini-2.5-pro\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.User != "nik" || cfg.DataDir != "/tmp/mct" || cfg.Model != "gemini-2.5-pro" {
		t.Errorf("config = %+v", cfg)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mct.yaml")
	if err := os.WriteFile(path, []byte("user: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("invalid yaml accepted")
	}
}
