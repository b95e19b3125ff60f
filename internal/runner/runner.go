// Package runner executes external tools as child processes.
//
// Commands are always given as an argv slice and spawned directly, never
// through a shell, so user-supplied text (typed strings, URLs, labels) is
// passed through verbatim.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Runner runs a command and returns its standard output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ProcessError is returned when a command fails without usable output.
type ProcessError struct {
	Argv     []string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *ProcessError) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	if e.ExitCode > 0 {
		return fmt.Sprintf("%s exited with status %d", e.Argv[0], e.ExitCode)
	}
	return fmt.Sprintf("%s: %v", e.Argv[0], e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }

// Exec spawns real processes.
type Exec struct {
	// Timeout bounds each invocation. Zero means no limit.
	Timeout time.Duration
	Log     logrus.FieldLogger
}

// NewExec returns an Exec runner logging to log.
func NewExec(timeout time.Duration, log logrus.FieldLogger) *Exec {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Exec{Timeout: timeout, Log: log}
}

// Run executes name with args. A non-zero exit is only an error when the
// process wrote nothing to stdout; tools like idb print a result and still
// exit non-zero on warnings.
func (r *Exec) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	argv := append([]string{name}, args...)
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	log := r.Log.WithFields(logrus.Fields{
		"argv":     argv,
		"duration": time.Since(start).Round(time.Millisecond),
	})

	if err == nil {
		log.Debug("command finished")
		return stdout.Bytes(), nil
	}

	if len(bytes.TrimSpace(stdout.Bytes())) > 0 {
		log.WithError(err).Debug("command failed but produced output")
		return stdout.Bytes(), nil
	}

	perr := &ProcessError{
		Argv:   argv,
		Stderr: strings.TrimSpace(stderr.String()),
		Err:    err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		perr.ExitCode = exitErr.ExitCode()
	}
	if ctx.Err() != nil {
		perr.Err = fmt.Errorf("%w: %w", ctx.Err(), err)
	}
	log.WithError(perr).Debug("command failed")
	return nil, perr
}
