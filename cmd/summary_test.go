package cmd

import (
	"strings"
	"testing"
)

func TestShowSummary_Total(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "a", "b")

	showSummary()
	if !strings.Contains(env.stdout.String(), "Total: 1h (2 entries)") {
		t.Errorf("stdout = %q", env.stdout.String())
	}
}

func TestShowSummary_ByTask(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "review", "review", "report")
	summaryByFlag = "task"

	showSummary()
	out := env.stdout.String()
	if !strings.Contains(out, "review") || !strings.Contains(out, "1h (2 entries)") {
		t.Errorf("stdout = %q", out)
	}
	if !strings.Contains(out, "report") {
		t.Errorf("stdout = %q", out)
	}
}

func TestShowSummary_EmptyLog(t *testing.T) {
	env := newTestEnv(t)

	showSummary()
	if env.exited {
		t.Fatalf("exit code %d, want success", env.exitCode)
	}
	if !strings.Contains(env.stdout.String(), "No entries to summarize") {
		t.Errorf("stdout = %q", env.stdout.String())
	}
}

func TestShowSummary_ByWeek(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "a", "b")
	summaryByFlag = "week"

	showSummary()
	if env.exited {
		t.Fatalf("summary failed: %s", env.stderr.String())
	}
	out := env.stdout.String()
	if !strings.Contains(out, "-W") || !strings.Contains(out, "1h (2 entries)") {
		t.Errorf("stdout = %q", out)
	}
}

func TestShowSummary_InvalidGrouping(t *testing.T) {
	env := newTestEnv(t)
	summaryByFlag = "month"

	showSummary()
	if !env.exited || env.exitCode != 1 {
		t.Fatalf("exit = %v/%d, want failure", env.exited, env.exitCode)
	}
}
