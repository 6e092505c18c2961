package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppliesDefaultsWhenFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if cfg.History.Backend != "json" {
		t.Fatalf("expected json backend default, got %q", cfg.History.Backend)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	path := writeConfig(t, `
[paths]
target_dir = "~/inbox"

[history]
backend = "SQLite"

[extensions]
"JPG" = "images"
".Log" = "logs"

[[rules]]
pattern = '\.bak$'
category = "backups"
`)

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if cfg.History.Backend != "sqlite" {
		t.Fatalf("expected normalized backend, got %q", cfg.History.Backend)
	}
	if !filepath.IsAbs(cfg.Paths.TargetDir) || strings.Contains(cfg.Paths.TargetDir, "~") {
		t.Fatalf("expected expanded target dir, got %q", cfg.Paths.TargetDir)
	}
	if cfg.Extensions[".jpg"] != "images" || cfg.Extensions[".log"] != "logs" {
		t.Fatalf("expected normalized extension keys, got %v", cfg.Extensions)
	}
	if len(cfg.Rules) != 1 || cfg.Rules[0].Category != "backups" {
		t.Fatalf("unexpected rules: %v", cfg.Rules)
	}
}

func TestLoadRejectsInvalidBackend(t *testing.T) {
	path := writeConfig(t, `
[history]
backend = "csv"
`)
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected error for unsupported backend")
	}
}

func TestLoadRejectsInvalidRulePattern(t *testing.T) {
	path := writeConfig(t, `
[[rules]]
pattern = '('
category = "broken"
`)
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid regex")
	}
}

func TestHistoryPath(t *testing.T) {
	cfg := Default()
	target := "/data/inbox"

	if got := cfg.HistoryPath(target); got != filepath.Join(target, HistoryDirName, "history.json") {
		t.Fatalf("unexpected default history path: %q", got)
	}

	cfg.History.Backend = "sqlite"
	if got := cfg.HistoryPath(target); got != filepath.Join(target, HistoryDirName, "history.db") {
		t.Fatalf("unexpected sqlite history path: %q", got)
	}

	cfg.History.File = "custom/history.json"
	if got := cfg.HistoryPath(target); got != filepath.Join(target, "custom/history.json") {
		t.Fatalf("unexpected relative override: %q", got)
	}

	cfg.History.File = "/var/lib/tidy/history.json"
	if got := cfg.HistoryPath(target); got != "/var/lib/tidy/history.json" {
		t.Fatalf("unexpected absolute override: %q", got)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Extensions = map[string]string{".log": "logs"}
	cfg.Rules = append(cfg.Rules, Rule{Pattern: `^report`, Category: "reports"})

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected saved file to exist")
	}
	if loaded.Extensions[".log"] != "logs" {
		t.Fatalf("extension lost in round trip: %v", loaded.Extensions)
	}
	if len(loaded.Rules) != 1 || loaded.Rules[0].Pattern != "^report" {
		t.Fatalf("rule lost in round trip: %v", loaded.Rules)
	}
}

func TestNormalizeExtension(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"jpg", ".jpg"},
		{".JPG", ".jpg"},
		{"  .Pdf ", ".pdf"},
		{"..gz", ".gz"},
	}
	for _, tc := range cases {
		got, err := NormalizeExtension(tc.input)
		if err != nil {
			t.Fatalf("NormalizeExtension(%q) failed: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("NormalizeExtension(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
	if _, err := NormalizeExtension("   "); err == nil {
		t.Fatal("expected error for empty extension")
	}
	if _, err := NormalizeExtension("..."); err == nil {
		t.Fatal("expected error for dots-only extension")
	}
}
