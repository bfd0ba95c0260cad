package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ccollicutt/pidshare/pkg/extractor"
)

func TestNewDiagnoseCommand(t *testing.T) {
	cmd := NewDiagnoseCommand(&GlobalOptions{})

	if cmd.Use != "diagnose" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}
	for _, flag := range []string{"sample", "process"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("Missing flag: %s", flag)
		}
	}
}

func TestCheckConfigExists_NotFound(t *testing.T) {
	result := checkConfigExists("/nonexistent/config.yaml")

	if result.Status != "error" {
		t.Errorf("Expected error status, got %s", result.Status)
	}
	if !strings.Contains(result.Message, "not found") {
		t.Errorf("Expected 'not found' in message, got: %s", result.Message)
	}
}

func TestCheckConfigExists_Empty(t *testing.T) {
	configPath := writeFile(t, "empty.yaml", "")

	result := checkConfigExists(configPath)

	if result.Status != "error" {
		t.Errorf("Expected error status, got %s", result.Status)
	}
	if !strings.Contains(result.Message, "empty") {
		t.Errorf("Expected 'empty' in message, got: %s", result.Message)
	}
}

func TestCheckConfigExists_Directory(t *testing.T) {
	result := checkConfigExists(t.TempDir())

	if result.Status != "error" {
		t.Errorf("Expected error status, got %s", result.Status)
	}
	if !strings.Contains(result.Message, "directory") {
		t.Errorf("Expected 'directory' in message, got: %s", result.Message)
	}
}

func TestCheckConfigParseable_InvalidYAML(t *testing.T) {
	configPath := writeFile(t, "invalid.yaml", "invalid: yaml: content: bad")

	_, result := checkConfigParseable(context.Background(), configPath)

	if result.Status != "error" {
		t.Errorf("Expected error status, got %s", result.Status)
	}
}

func TestCheckConfigParseable_Valid(t *testing.T) {
	configPath := writeFile(t, "valid.yaml", "log_file: app.log\nextractor:\n  strategy: split\n")

	cfg, result := checkConfigParseable(context.Background(), configPath)

	if result.Status != "ok" {
		t.Fatalf("Expected ok status, got %s: %s", result.Status, result.Message)
	}
	if cfg.LogFile != "app.log" {
		t.Errorf("LogFile = %q, want %q", cfg.LogFile, "app.log")
	}
}

func TestCheckLogFile(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.log")
	full := filepath.Join(dir, "full.log")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	if err := os.WriteFile(full, []byte(sampleLog), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	tests := []struct {
		path string
		want string
	}{
		{filepath.Join(dir, "missing.log"), "error"},
		{dir, "error"},
		{empty, "warning"},
		{full, "ok"},
	}

	for _, tt := range tests {
		if got := checkLogFile(tt.path).Status; got != tt.want {
			t.Errorf("checkLogFile(%q).Status = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestSampleExtraction(t *testing.T) {
	logPath := writeFile(t, "system.log", "a,PID-2,0.5s\nPID-3,1.5s\nno marker\ngarbage,PID-x,abc\n")

	s, err := sampleExtraction(context.Background(), logPath, true, 0)
	if err != nil {
		t.Fatalf("sampleExtraction() error = %v", err)
	}

	if s.lines != 4 {
		t.Errorf("lines = %d, want 4", s.lines)
	}
	if s.markerLines != 3 {
		t.Errorf("markerLines = %d, want 3", s.markerLines)
	}
	if s.pattern.Len() != 2 {
		t.Errorf("pattern processes = %d, want 2", s.pattern.Len())
	}
	if s.split.Len() != 1 {
		t.Errorf("split processes = %d, want 1", s.split.Len())
	}
	if len(s.patternOnly) != 1 || s.patternOnly[0] != "PID-3,1.5s" {
		t.Errorf("patternOnly = %v, want [PID-3,1.5s]", s.patternOnly)
	}
}

func TestSampleExtraction_Limit(t *testing.T) {
	logPath := writeFile(t, "system.log", sampleLog)

	s, err := sampleExtraction(context.Background(), logPath, true, 2)
	if err != nil {
		t.Fatalf("sampleExtraction() error = %v", err)
	}
	if s.lines != 2 {
		t.Errorf("lines = %d, want 2", s.lines)
	}
}

func statuses(results []DiagnosticResult) map[string]string {
	m := make(map[string]string, len(results))
	for _, r := range results {
		m[r.Check] = r.Status
	}
	return m
}

func TestCheckExtraction_SuggestsOtherStrategy(t *testing.T) {
	logPath := writeFile(t, "system.log", sampleLog)

	results := checkExtraction(context.Background(), logPath, extractor.StrategySplit, true, 2, 0, false)
	got := statuses(results)

	if got["Strategy: split"] != "error" {
		t.Fatalf("Strategy status = %q, want error (results: %+v)", got["Strategy: split"], results)
	}
	found := false
	for _, r := range results {
		for _, s := range r.Suggests {
			if s == "Try --strategy pattern" {
				found = true
			}
		}
	}
	if !found {
		t.Error("Expected hint to try the pattern strategy")
	}
}

func TestCheckExtraction_Agreement(t *testing.T) {
	logPath := writeFile(t, "system.log", "t,PID-2,0.5s\nt,PID-3,1.5s\n")

	got := statuses(checkExtraction(context.Background(), logPath, extractor.StrategyPattern, true, 2, 0, false))

	if got["PID Markers"] != "ok" {
		t.Errorf("PID Markers = %q, want ok", got["PID Markers"])
	}
	if got["Strategy: pattern"] != "ok" {
		t.Errorf("Strategy = %q, want ok", got["Strategy: pattern"])
	}
	if got["Target: PID-2"] != "ok" {
		t.Errorf("Target = %q, want ok", got["Target: PID-2"])
	}
}

func TestCheckExtraction_NoMarkers(t *testing.T) {
	logPath := writeFile(t, "system.log", "hello\nworld\n")

	results := checkExtraction(context.Background(), logPath, extractor.StrategyPattern, true, 2, 0, false)

	if len(results) != 1 || results[0].Status != "warning" {
		t.Errorf("Expected a single warning, got %+v", results)
	}
}

func TestRunDiagnose_Output(t *testing.T) {
	logPath := writeFile(t, "system.log", sampleLog)

	stdout, _, err := execute(t, "diagnose", "-f", logPath)
	if err != nil {
		t.Fatalf("diagnose error = %v", err)
	}

	for _, want := range []string{
		"=== pidshare Diagnostics ===",
		"[PASS] Log File: " + logPath,
		"[PASS] PID Markers",
		"[WARN] Strategy: pattern",
		"Only pattern extracts from:",
		"[PASS] Target: PID-2",
		"Summary: 3 passed, 1 warnings, 0 errors",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Output missing %q:\n%s", want, stdout)
		}
	}
}

func TestRunDiagnose_MissingLog(t *testing.T) {
	stdout, _, err := execute(t, "diagnose", "-f", filepath.Join(t.TempDir(), "missing.log"))
	if err != nil {
		t.Fatalf("diagnose error = %v", err)
	}
	if !strings.Contains(stdout, "[FAIL] Log File") {
		t.Errorf("Expected log file failure:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Summary: 0 passed, 0 warnings, 1 errors") {
		t.Errorf("Unexpected summary:\n%s", stdout)
	}
}

func TestRunDiagnose_BadConfig(t *testing.T) {
	configPath := writeFile(t, "bad.yaml", "invalid: yaml: content: bad")

	stdout, _, err := execute(t, "diagnose", "--config", configPath)
	if err != nil {
		t.Fatalf("diagnose error = %v", err)
	}
	if !strings.Contains(stdout, "[FAIL] Config Syntax") {
		t.Errorf("Expected config syntax failure:\n%s", stdout)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 80); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	if got := truncate(strings.Repeat("a", 100), 10); got != "aaaaaaa..." {
		t.Errorf("truncate(long) = %q", got)
	}
}
