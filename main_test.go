package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"timelog/cmd"
)

// setupTest points the CLI at a temp directory and captures its output.
// os.Args must be set explicitly so test flags do not leak into the root
// command's arbitrary-args parsing.
func setupTest(t *testing.T, args ...string) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	dir := t.TempDir()
	logPath := filepath.Join(dir, "timelog.csv")

	oldArgs := os.Args
	os.Args = append([]string{"timelog", "--file", logPath}, args...)
	t.Cleanup(func() { os.Args = oldArgs })

	var stdout, stderr bytes.Buffer
	cmd.SetDeps(&cmd.Deps{
		Stdout: &stdout,
		Stderr: &stderr,
		Stdin:  strings.NewReader(""),
		Exit:   func(code int) {},
		ConfigPath: func() (string, error) {
			return filepath.Join(dir, "config.toml"), nil
		},
		TimerPath: func() (string, error) {
			return filepath.Join(dir, "timer.json"), nil
		},
	})
	t.Cleanup(cmd.ResetDeps)

	return &stdout, &stderr
}

func TestRun_ListEmptyLog(t *testing.T) {
	stdout, _ := setupTest(t)

	code := run()
	if code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}
	if !strings.Contains(stdout.String(), "No entries logged yet") {
		t.Errorf("expected empty-log message, got %q", stdout.String())
	}
}

func TestRun_CreateThenList(t *testing.T) {
	stdout, _ := setupTest(t, "write", "report", "for", "1h")

	if code := run(); code != 0 {
		t.Fatalf("create: run() = %d, want 0", code)
	}
	if !strings.Contains(stdout.String(), "Logged [0]: write report (1h)") {
		t.Errorf("unexpected create output: %q", stdout.String())
	}

	// Drop the extra args and list
	os.Args = os.Args[:3]
	stdout.Reset()

	if code := run(); code != 0 {
		t.Fatalf("list: run() = %d, want 0", code)
	}
	out := stdout.String()
	if !strings.Contains(out, "[0]") || !strings.Contains(out, "write report") {
		t.Errorf("expected listed entry, got %q", out)
	}
	if !strings.Contains(out, "Total: 1h (1 entry)") {
		t.Errorf("expected total line, got %q", out)
	}
}
