package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dkoval/ctxpress/internal/model"
)

func TestReadInputFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conv.txt")
	if err := os.WriteFile(path, []byte("**A:** hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	text, err := readInputFile(path, model.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if text != "**A:** hello" {
		t.Errorf("unexpected content %q", text)
	}
}

func TestReadInputFile_Missing(t *testing.T) {
	if _, err := readInputFile("/nonexistent/conv.txt", model.DefaultConfig()); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadInputFile_Directory(t *testing.T) {
	if _, err := readInputFile(t.TempDir(), model.DefaultConfig()); err == nil {
		t.Error("expected error for directory path")
	}
}

func TestReadInputFile_TooLarge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.txt")
	if err := os.WriteFile(path, []byte(strings.Repeat("x", 64)), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := model.DefaultConfig()
	cfg.Limits.MaxFileBytes = 10
	if _, err := readInputFile(path, cfg); err == nil {
		t.Error("expected error for oversized file")
	}
}

func TestValidateQuery(t *testing.T) {
	cfg := model.DefaultConfig()

	if err := validateQuery("short query", cfg); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := validateQuery(strings.Repeat("q", cfg.Limits.MaxQueryLen+1), cfg); err == nil {
		t.Error("expected error for oversized query")
	}
}

func TestCacheDir_ConfiguredDirWins(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Cache.Dir = "/var/cache/ctxpress"

	if got := cacheDir(cfg); got != "/var/cache/ctxpress" {
		t.Errorf("expected configured dir, got %s", got)
	}
}

func TestReportFilename(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/logs/standup 2026-01-24.txt", "standup_2026-01-24.json"},
		{"conv.md", "conv.json"},
		{"no-extension", "no-extension.json"},
		{"/data/отчет.txt", "_____.json"},
	}

	for _, tt := range tests {
		if got := reportFilename(tt.path); got != tt.want {
			t.Errorf("reportFilename(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestRosterOf(t *testing.T) {
	report := &model.GroupReport{
		ParticipantContexts: map[string]model.ParticipantContext{
			"CAROL": {}, "ALICE": {}, "BOB": {},
		},
	}

	roster := rosterOf(report)
	want := []string{"ALICE", "BOB", "CAROL"}
	for i, name := range want {
		if roster[i] != name {
			t.Fatalf("expected sorted roster %v, got %v", want, roster)
		}
	}
}
