package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// Runner executes a backend command and returns its captured output.
// A command that ran and exited non-zero is reported as an *ExitError.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
}

// waitDelay bounds how long output is drained after the process is killed.
const waitDelay = 5 * time.Second

// ExitError reports a command that ran but exited with a non-zero status.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExecRunner runs commands as local processes.
type ExecRunner struct {
	// Timeout bounds each invocation. Zero means no timeout beyond ctx.
	Timeout time.Duration
	// Env is appended to the current environment when set.
	Env []string
}

// Run executes name with args, capturing stdout and stderr separately.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = waitDelay
	if len(r.Env) > 0 {
		cmd.Env = append(cmd.Environ(), r.Env...)
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return stdoutBuf.String(), stderrBuf.String(), fmt.Errorf("%s: %w", name, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdoutBuf.String(), stderrBuf.String(), &ExitError{
				Code:   exitErr.ExitCode(),
				Stderr: stderrBuf.String(),
			}
		}
		return stdoutBuf.String(), stderrBuf.String(), fmt.Errorf("running %s: %w", name, err)
	}
	return stdoutBuf.String(), stderrBuf.String(), nil
}
