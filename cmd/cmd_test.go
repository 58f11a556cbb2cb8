package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const calendarYAML = `terms:
  - id: fa2025
    name: Fall 2025
    type: semester
    start_date: "2025-08-25"
    end_date: "2025-12-21"
    sessions:
      - id: full
        name: Full Term
        weeks: 17
        method: FULL_TERM
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cal := filepath.Join(dir, "calendar.yaml")
	if err := os.WriteFile(cal, []byte(calendarYAML), 0o644); err != nil {
		t.Fatalf("write calendar: %v", err)
	}
	cfg := filepath.Join(dir, "config.yaml")
	data := "calendar:\n  source:\n    type: file\n    conf:\n      path: " + cal + "\nstorage:\n  backend: sqlite\n  path: " + filepath.Join(dir, "sections.db") + "\n"
	if err := os.WriteFile(cfg, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfg
}

func TestEndtimeCommand(t *testing.T) {
	out, err := execute(t, "endtime", "--units", "3", "--days", "3", "--weeks", "17", "--start", "08:00")
	if err != nil {
		t.Fatalf("endtime: %v", err)
	}
	if strings.TrimSpace(out) != "09:05" {
		t.Fatalf("unexpected end time %q", out)
	}
}

func TestGenerateCommand(t *testing.T) {
	cfg := writeConfig(t)
	out, err := execute(t, "generate", "-c", cfg,
		"--lecture-units", "3", "--lecture-days", "Mon,Wed,Fri",
		"--lab-units", "1", "--lab-days", "Tue,Thu",
		"--term", "fa2025", "--session", "full", "--format", "simple", "--time-format", "24h")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := "Lecture: Mon/Wed/Fri (08:00 - 09:05)\nLab: Tue/Thu (08:00 - 09:20)"
	if !strings.Contains(out, want) {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestExportCommandEmpty(t *testing.T) {
	cfg := writeConfig(t)
	out, err := execute(t, "export", "-c", cfg, "--format", "bulk")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if strings.TrimSpace(out) != "" {
		t.Fatalf("expected empty export, got %q", out)
	}
}
