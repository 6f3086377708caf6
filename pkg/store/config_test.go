package store

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
)

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	t.Setenv("DAYBOOK_CONFIG_PATH", dir)
	chdir(t, dir)

	s, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if s.Path != filepath.Join(dir, ".daybook.db") {
		t.Fatalf("unexpected path %q", s.Path)
	}
	if s.Driver() != DriverDiskv || s.MinWindowDays != 30 || s.MarginDays != 14 {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if s.RefreshEvery != "1m" || s.LogLevel != slog.LevelWarn {
		t.Fatalf("unexpected defaults: %+v", s)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DAYBOOK_CONFIG_PATH", dir)
	chdir(t, dir)
	yaml := "path: " + filepath.Join(dir, "data") + "\ndriver: sqlite\ntimeline:\n  margin: 1w\n"
	if err := os.WriteFile(filepath.Join(dir, ".daybook.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("DAYBOOK_LOG_LEVEL", "debug")

	s, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if s.Driver() != DriverSQLite || s.BasePath() != filepath.Join(dir, "data") {
		t.Fatalf("expected file settings, got %+v", s)
	}
	if s.MarginDays != 7 {
		t.Fatalf("expected 7 day margin, got %d", s.MarginDays)
	}
	if s.LogLevel != slog.LevelDebug {
		t.Fatalf("expected env override, got %v", s.LogLevel)
	}
}

func TestLoadConfigRejectsBadDriver(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DAYBOOK_CONFIG_PATH", dir)
	t.Setenv("DAYBOOK_DRIVER", "postgres")
	chdir(t, dir)

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected unknown driver error")
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
