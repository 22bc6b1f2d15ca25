package cmd

import (
	"strings"
	"testing"
)

func TestStartTimer(t *testing.T) {
	env := newTestEnv(t)

	startTimer([]string{"deep", "work"})
	if env.exited {
		t.Fatalf("start failed: %s", env.stderr.String())
	}
	if !strings.Contains(env.stdout.String(), "Timer started: deep work") {
		t.Errorf("stdout = %q", env.stdout.String())
	}
}

func TestStartTimer_AlreadyRunning(t *testing.T) {
	env := newTestEnv(t)

	startTimer([]string{"first"})
	if env.exited {
		t.Fatalf("start failed: %s", env.stderr.String())
	}

	startTimer([]string{"second"})
	if !env.exited || env.exitCode != 1 {
		t.Fatal("second start should fail")
	}
	if !strings.Contains(env.stderr.String(), "already running") {
		t.Errorf("stderr = %q", env.stderr.String())
	}
}

func TestPauseResume(t *testing.T) {
	env := newTestEnv(t)

	startTimer([]string{"task"})
	env.stdout.Reset()

	pauseTimer()
	if env.exited {
		t.Fatalf("pause failed: %s", env.stderr.String())
	}
	if !strings.Contains(env.stdout.String(), "Timer paused: task") {
		t.Errorf("stdout = %q", env.stdout.String())
	}

	// Pausing twice is rejected
	pauseTimer()
	if !env.exited || env.exitCode != 1 {
		t.Fatal("second pause should fail")
	}

	env.exited = false
	env.stdout.Reset()
	resumeTimer()
	if env.exited {
		t.Fatalf("resume failed: %s", env.stderr.String())
	}
	if !strings.Contains(env.stdout.String(), "Timer resumed: task") {
		t.Errorf("stdout = %q", env.stdout.String())
	}

	// Resuming a running timer is rejected
	resumeTimer()
	if !env.exited || env.exitCode != 1 {
		t.Fatal("resume on a running timer should fail")
	}
}

func TestPauseTimer_NoneRunning(t *testing.T) {
	env := newTestEnv(t)

	pauseTimer()
	if !env.exited || env.exitCode != 1 {
		t.Fatalf("exit = %v/%d, want failure", env.exited, env.exitCode)
	}
	if !strings.Contains(env.stderr.String(), "No timer is running") {
		t.Errorf("stderr = %q", env.stderr.String())
	}
}
