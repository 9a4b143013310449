package config

import (
	"os"
	"path/filepath"
	"testing"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldWD)
	})
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	cfg := Load()
	if cfg.Server.Port != "8080" {
		t.Fatalf("default port want 8080 got %s", cfg.Server.Port)
	}
	if cfg.Settlement.DefaultSizeUpcharge != 20000 {
		t.Fatalf("default size upcharge want 20000 got %d", cfg.Settlement.DefaultSizeUpcharge)
	}
	if !cfg.Settlement.RequireFactorySettled {
		t.Fatalf("close should require factory settlement by default")
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("default driver want sqlite got %s", cfg.Database.Driver)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SETTLEMENT_DEFAULT_SIZE_UPCHARGE", "25000")
	cfg := Load()
	if cfg.Server.Port != "9090" {
		t.Fatalf("env port want 9090 got %s", cfg.Server.Port)
	}
	if cfg.Settlement.DefaultSizeUpcharge != 25000 {
		t.Fatalf("env upcharge want 25000 got %d", cfg.Settlement.DefaultSizeUpcharge)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	content := []byte("server:\n  port: \"7000\"\nimport:\n  max_rows: 0\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), content, 0o644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}
	cfg := Load()
	if cfg.Server.Port != "7000" {
		t.Fatalf("file port want 7000 got %s", cfg.Server.Port)
	}
	if cfg.Import.MaxRows != 5000 {
		t.Fatalf("invalid max_rows should normalize to 5000, got %d", cfg.Import.MaxRows)
	}
}
