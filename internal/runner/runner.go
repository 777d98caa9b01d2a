// Package runner starts the external tools slnbuild drives, nuget.exe and
// MSBuild.exe, and captures their output.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// RunOptions adjusts a single run.
type RunOptions struct {
	// Dir is the working directory. Empty means the current one.
	Dir string
}

// RunResult is the captured output of a finished command.
type RunResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner executes an external command to completion.
type Runner interface {
	Run(ctx context.Context, command string, args []string, opts RunOptions) (RunResult, error)
}

// ExitError reports a command that ran and exited non-zero.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// DefaultWaitDelay bounds how long Run waits for the output pipes to close
// once the process has exited. MSBuild worker nodes started with node reuse
// inherit the pipes and outlive the build.
const DefaultWaitDelay = 5 * time.Second

// CmdRunner runs commands with os/exec.
type CmdRunner struct {
	// WaitDelay overrides DefaultWaitDelay when positive.
	WaitDelay time.Duration
}

func (c CmdRunner) Run(ctx context.Context, command string, args []string, opts RunOptions) (RunResult, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = opts.Dir
	cmd.WaitDelay = DefaultWaitDelay
	if c.WaitDelay > 0 {
		cmd.WaitDelay = c.WaitDelay
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := RunResult{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil && cmd.ProcessState.Success():
		// The tool itself succeeded; only a lingering child held the pipes.
		err = nil
	case errors.As(err, &exitErr) && exitErr.ExitCode() > 0:
		res.ExitCode = exitErr.ExitCode()
		err = &ExitError{Code: res.ExitCode}
	default:
		res.ExitCode = -1
	}
	return res, err
}

var _ Runner = CmdRunner{}
