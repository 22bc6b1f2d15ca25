package cmd

import (
	"os"
	"strings"
	"testing"
	"time"

	"timelog/internal/store"
)

func TestValidateLog_Clean(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "a", "b")

	validateLog()
	if env.exited {
		t.Fatalf("exit code %d for a clean log", env.exitCode)
	}
	out := env.stdout.String()
	if !strings.Contains(out, "Valid entries: 2") || !strings.Contains(out, "Corrupt records: 0") {
		t.Errorf("stdout = %q", out)
	}
}

func TestValidateLog_CorruptRecords(t *testing.T) {
	env := newTestEnv(t)
	content := strings.Join([]string{
		"Index,Start Time,Task Description,Elapsed Time (seconds),Paused Duration (seconds)",
		"0," + time.Now().Format(store.TimeLayout) + ",good,60,0",
		"1,broken,bad,60,0",
		"",
	}, "\n")
	if err := os.WriteFile(env.logPath(), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	validateLog()
	if !env.exited || env.exitCode != 1 {
		t.Fatalf("exit = %v/%d, want failure", env.exited, env.exitCode)
	}
	out := env.stdout.String()
	if !strings.Contains(out, "Corrupt records: 1") || !strings.Contains(out, "line 3") {
		t.Errorf("stdout = %q", out)
	}
}

func TestValidateLog_MissingFile(t *testing.T) {
	env := newTestEnv(t)

	validateLog()
	if env.exited {
		t.Fatalf("exit code %d for a missing log", env.exitCode)
	}
	if !strings.Contains(env.stdout.String(), "Valid entries: 0") {
		t.Errorf("stdout = %q", env.stdout.String())
	}
}
