package procrunner

import (
	"context"
	"runtime"
	"testing"
	"time"
)

func shellCmd(script string) []string {
	if runtime.GOOS == "windows" {
		return []string{"cmd", "/C", script}
	}
	return []string{"/bin/sh", "-c", script}
}

func TestRunCapturesStdout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix-only fixture")
	}
	res, err := Run(context.Background(), Request{
		Cmd:        shellCmd("cat"),
		Stdin:      StdinSource{Bytes: []byte("hello\n")},
		TimeoutSec: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Stdout != "hello\n" {
		t.Fatalf("got stdout %q", res.Stdout)
	}
	if res.ExitCode != 0 {
		t.Fatalf("expected exit 0, got %d", res.ExitCode)
	}
}

func TestRunTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix-only fixture")
	}
	start := time.Now()
	res, err := Run(context.Background(), Request{
		Cmd:        shellCmd("sleep 5"),
		Stdin:      StdinSource{Detached: true},
		TimeoutSec: 0.2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != timeoutExitCode {
		t.Fatalf("expected sentinel exit code, got %d", res.ExitCode)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Fatalf("watchdog did not bound runtime: %v", elapsed)
	}
}

func TestRunNonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix-only fixture")
	}
	res, err := Run(context.Background(), Request{
		Cmd:        shellCmd("exit 7"),
		Stdin:      StdinSource{Detached: true},
		TimeoutSec: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 7 {
		t.Fatalf("expected exit 7, got %d", res.ExitCode)
	}
}

func TestRunSpillsLargeStdin(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix-only fixture")
	}
	big := make([]byte, spillThreshold+1024)
	for i := range big {
		big[i] = 'a'
	}
	res, err := Run(context.Background(), Request{
		Cmd:        shellCmd("wc -c"),
		Stdin:      StdinSource{Bytes: big},
		TimeoutSec: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 0 {
		t.Fatalf("expected exit 0, got %d stderr=%s", res.ExitCode, res.Stderr)
	}
}
