package executor

import (
	"bytes"
	"context"
	"runtime"
	"strings"
	"testing"
)

func newTestExecutor() (*LocalExecutor, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &LocalExecutor{shell: "/bin/sh", stdout: &out, stderr: &errOut}, &out, &errOut
}

func TestExecuteStreamsAndCaptures(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	exec, out, _ := newTestExecutor()

	result, err := exec.Execute(context.Background(), "echo hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !result.Ran || result.ExitCode != 0 {
		t.Fatalf("expected clean run, got %+v", result)
	}
	if got := strings.TrimSpace(out.String()); got != "hello" {
		t.Fatalf("streamed output = %q, want hello", got)
	}
	if got := strings.TrimSpace(result.Stdout); got != "hello" {
		t.Fatalf("captured output = %q, want hello", got)
	}
}

func TestExecuteReportsNonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	exec, _, _ := newTestExecutor()

	result, err := exec.Execute(context.Background(), "exit 3")
	if err != nil {
		t.Fatalf("non-zero exit must not be a system error, got %v", err)
	}
	if !result.Ran || result.ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %+v", result)
	}
}

func TestExecuteCapturesStderr(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	exec, _, errOut := newTestExecutor()

	result, err := exec.Execute(context.Background(), "echo oops >&2")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := strings.TrimSpace(errOut.String()); got != "oops" {
		t.Fatalf("streamed stderr = %q, want oops", got)
	}
	if got := strings.TrimSpace(result.Stderr); got != "oops" {
		t.Fatalf("captured stderr = %q, want oops", got)
	}
}

func TestExecuteCancellation(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	exec, _, _ := newTestExecutor()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := exec.Execute(ctx, "sleep 10")
	if err == nil && result.ExitCode == 0 && result.Ran {
		t.Fatal("expected the canceled child to be reported as failed")
	}
}

func TestCappedBuffer(t *testing.T) {
	buf := newCappedBuffer(5)
	n, err := buf.Write([]byte("0123456789"))
	if err != nil || n != 10 {
		t.Fatalf("Write() = (%d, %v), want (10, nil)", n, err)
	}
	if buf.String() != "01234" {
		t.Fatalf("capped content = %q, want 01234", buf.String())
	}
}

func TestShellResolution(t *testing.T) {
	exec := NewLocalExecutor("/bin/zsh")
	if exec.Shell() != "/bin/zsh" {
		t.Fatalf("Shell() = %q, want /bin/zsh", exec.Shell())
	}
	if NewLocalExecutor("").Shell() == "" {
		t.Fatal("empty shell must fall back to a default")
	}
}
