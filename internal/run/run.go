//  Copyright 2026 Google LLC
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Package run executes the helper commands used to query the host's identity
// databases.
package run

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/GoogleCloudPlatform/galog"
)

var (
	// Client is the Runner running commands, tests replace it with a fake.
	Client RunnerInterface = Runner{}
)

// RunnerInterface defines the runner running commands.
type RunnerInterface interface {
	WithContext(ctx context.Context, opts Options) (*Result, error)
}

// Options represents the command options.
type Options struct {
	// Name is the command name.
	Name string
	// Args is the command arguments.
	Args []string
	// Timeout bounds the command run time. Zero means no timeout.
	Timeout time.Duration
}

// Result represents the result of running a command.
type Result struct {
	// Output is the captured stdout.
	Output string
}

// Runner implements RunnerInterface with os/exec.
type Runner struct{}

// WithContext runs the command with the given [Options] using [Client].
func WithContext(ctx context.Context, opts Options) (*Result, error) {
	return Client.WithContext(ctx, opts)
}

// WithContext runs the command with the given [Options] and waits for it to
// complete.
func (Runner) WithContext(ctx context.Context, opts Options) (*Result, error) {
	mainContext := ctx
	if opts.Timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	galog.V(2).Debugf("Running command: %+v", opts)

	res, err := stdoutOutput(ctx, opts)
	if err != nil && mainContext.Err() == nil && ctx.Err() != nil {
		return res, &TimeoutError{err: err}
	}
	return res, err
}

// stdoutOutput runs the command capturing stdout. On failure stderr is merged
// into the returned error.
func stdoutOutput(ctx context.Context, opts Options) (*Result, error) {
	cmd := exec.CommandContext(ctx, opts.Name, opts.Args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, errorWithOutput(err, stderr.String())
	}

	return &Result{Output: stdout.String()}, nil
}

// TimeoutError is the error type returned when a command execution times out.
type TimeoutError struct {
	err error
}

// Error returns the error message.
func (e *TimeoutError) Error() string {
	return e.err.Error()
}

// Unwrap returns the error the command failed with.
func (e *TimeoutError) Unwrap() error {
	return e.err
}

// AsTimeoutError returns a TimeoutError if the error is a TimeoutError.
func AsTimeoutError(err error) (*TimeoutError, bool) {
	var te *TimeoutError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// errorWithOutput merges an error with a command's output.
func errorWithOutput(err error, output string) error {
	if output == "" {
		return err
	}
	return fmt.Errorf("%w; %s", err, output)
}

// AsExitError returns an ExitError if the error is an ExitError.
func AsExitError(err error) (*exec.ExitError, bool) {
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee, true
	}
	return nil, false
}
