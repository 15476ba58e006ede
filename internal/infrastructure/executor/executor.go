// Package executor runs extracted commands through the local shell.
package executor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/nlsh-dev/nlsh/internal/domain"
	"github.com/nlsh-dev/nlsh/internal/ports"
)

// LocalExecutor runs commands on the host shell with inherited stdio so
// output streams live. A bounded copy of stdout/stderr is captured for the
// context ring.
type LocalExecutor struct {
	shell  string
	stdout io.Writer
	stderr io.Writer
}

// NewLocalExecutor builds an executor. Shell resolution order: explicit
// argument, $SHELL, /bin/sh.
func NewLocalExecutor(shell string) *LocalExecutor {
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}
	return &LocalExecutor{shell: shell, stdout: os.Stdout, stderr: os.Stderr}
}

// Shell returns the resolved shell path.
func (e *LocalExecutor) Shell() string {
	return e.shell
}

// Execute implements ports.CommandExecutor. The child process is fully
// awaited before returning; a canceled context kills it via CommandContext.
func (e *LocalExecutor) Execute(ctx context.Context, command string) (domain.ExecutionResult, error) {
	c := exec.CommandContext(ctx, e.shell, "-c", command)

	outCap := newCappedBuffer(domain.MaxCapturedOutput)
	errCap := newCappedBuffer(domain.MaxCapturedOutput)
	c.Stdin = os.Stdin
	c.Stdout = io.MultiWriter(e.stdout, outCap)
	c.Stderr = io.MultiWriter(e.stderr, errCap)

	start := time.Now()
	err := c.Run()

	result := domain.ExecutionResult{
		Stdout:     outCap.String(),
		Stderr:     errCap.String(),
		DurationMS: time.Since(start).Milliseconds(),
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		// Non-zero exit is a reported outcome, not a system error.
		result.Ran = true
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	if err != nil {
		result.Err = err
		return result, err
	}

	result.Ran = true
	result.ExitCode = 0
	return result, nil
}

// cappedBuffer keeps only the first limit bytes written to it. Command
// output can be unbounded; the context ring only needs a prefix.
type cappedBuffer struct {
	buf   []byte
	limit int
}

func newCappedBuffer(limit int) *cappedBuffer {
	return &cappedBuffer{limit: limit}
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	if remaining := b.limit - len(b.buf); remaining > 0 {
		if len(p) > remaining {
			b.buf = append(b.buf, p[:remaining]...)
		} else {
			b.buf = append(b.buf, p...)
		}
	}
	return len(p), nil
}

func (b *cappedBuffer) String() string {
	return string(b.buf)
}

var _ ports.CommandExecutor = (*LocalExecutor)(nil)
