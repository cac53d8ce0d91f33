// Package shell executes approved command lines with bounded output.
// Policy decisions happen before this package is reached; it only runs.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/aide-cli/aide/internal/tool/fsutil"
)

// Result represents the outcome of a command execution. A non-zero exit
// code is a normal result, not an error.
type Result struct {
	Stdout    string `json:"stdout"`
	Stderr    string `json:"stderr"`
	ExitCode  int    `json:"exit_code"`
	Truncated bool   `json:"truncated"`
	TimedOut  bool   `json:"timed_out"`
}

// Executor runs shell command lines via the system shell.
type Executor struct {
	maxOutputBytes   int64
	gracefulShutdown time.Duration
	detector         *fsutil.BinaryDetector
}

// NewExecutor creates an executor with bounded per-stream output.
func NewExecutor(maxOutputBytes int64, gracefulShutdown time.Duration, detector *fsutil.BinaryDetector) *Executor {
	if detector == nil {
		panic("detector is required")
	}
	return &Executor{
		maxOutputBytes:   maxOutputBytes,
		gracefulShutdown: gracefulShutdown,
		detector:         detector,
	}
}

// Run executes commandLine via `sh -c` in dir. A zero timeout means no
// timeout. On timeout the process gets an interrupt, then a kill after the
// graceful-shutdown window, and the partial output is returned with
// TimedOut set.
func (e *Executor) Run(ctx context.Context, commandLine, dir string, timeout time.Duration) (*Result, error) {
	if commandLine == "" {
		return nil, os.ErrInvalid
	}

	cmd := exec.Command("/bin/sh", "-c", commandLine)
	cmd.Dir = dir
	cmd.Stdin = nil

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &CommandError{Cmd: commandLine, Stage: "start", Cause: err}
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, &CommandError{Cmd: commandLine, Stage: "start", Cause: err}
	}

	if err := cmd.Start(); err != nil {
		return nil, &CommandError{Cmd: commandLine, Stage: "start", Cause: err}
	}

	// Collect output concurrently so it does not block the timeout select.
	var stdoutStr, stderrStr string
	var truncated bool
	collectDone := make(chan struct{})
	go func() {
		stdoutStr, stderrStr, truncated = e.collectOutput(stdoutPipe, stderrPipe)
		close(collectDone)
	}()

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	var timeoutCh <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		timeoutCh = timer.C
	}

	var execErr error
	select {
	case err := <-done:
		execErr = err
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		execErr = ctx.Err()
	case <-timeoutCh:
		_ = cmd.Process.Signal(os.Interrupt)
		select {
		case <-done:
		case <-time.After(e.gracefulShutdown):
			_ = cmd.Process.Kill()
			<-done
		}
		execErr = ErrTimeout
	}

	<-collectDone

	result := &Result{
		Stdout:    stdoutStr,
		Stderr:    stderrStr,
		Truncated: truncated,
	}

	switch {
	case execErr == nil:
		result.ExitCode = 0
	case errors.Is(execErr, ErrTimeout):
		result.ExitCode = -1
		result.TimedOut = true
		return result, nil // partial output is a normal result
	case errors.Is(execErr, context.Canceled) || errors.Is(execErr, context.DeadlineExceeded):
		return nil, execErr
	default:
		// Non-zero exit is a normal result.
		result.ExitCode = exitCode(execErr)
	}
	return result, nil
}

func (e *Executor) collectOutput(stdout, stderr io.Reader) (string, string, bool) {
	stdoutCollector := newCollector(int(e.maxOutputBytes), e.detector)
	stderrCollector := newCollector(int(e.maxOutputBytes), e.detector)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = io.Copy(stdoutCollector, stdout)
	}()
	go func() {
		defer wg.Done()
		_, _ = io.Copy(stderrCollector, stderr)
	}()
	wg.Wait()

	truncated := stdoutCollector.Truncated() || stderrCollector.Truncated()
	return stdoutCollector.String(), stderrCollector.String(), truncated
}

func exitCode(err error) int {
	type exitCoder interface {
		ExitCode() int
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	if ec, ok := err.(exitCoder); ok {
		return ec.ExitCode()
	}
	return -1
}
