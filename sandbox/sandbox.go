// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
)

// Sandbox runs a compiled Invocation as a single child process.
type Sandbox struct {
	invocation *Invocation
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	logger     *slog.Logger
}

// Config holds configuration for creating a new Sandbox.
type Config struct {
	// Invocation is the compiled command to run.
	Invocation *Invocation

	// Stdin, Stdout, and Stderr default to the process's own streams so
	// the agent's terminal UI works unchanged.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Logger for sandbox operations.
	Logger *slog.Logger
}

// New creates a new Sandbox.
func New(config Config) (*Sandbox, error) {
	if config.Invocation == nil {
		return nil, fmt.Errorf("invocation is required")
	}
	if len(config.Invocation.Args) == 0 || config.Invocation.Program == "" {
		return nil, fmt.Errorf("invocation has no command")
	}

	stdin := config.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	stdout := config.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := config.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Sandbox{
		invocation: config.Invocation,
		stdin:      stdin,
		stdout:     stdout,
		stderr:     stderr,
		logger:     logger,
	}, nil
}

// Run spawns the container runtime, waits for it, and then releases the
// invocation's held resources. A non-zero exit is returned as *ExitError
// carrying the child's code; failure to start is a *LaunchError.
func (s *Sandbox) Run(ctx context.Context) error {
	defer func() {
		if err := s.invocation.Close(); err != nil {
			s.logger.Warn("releasing sandbox resources", "error", err)
		}
	}()

	cmd, err := s.Command(ctx)
	if err != nil {
		return err
	}

	s.logger.Info("running sandboxed agent",
		"program", s.invocation.Program,
		"args", len(s.invocation.Args),
	)

	if err := cmd.Start(); err != nil {
		return &LaunchError{Program: s.invocation.Program, Err: err}
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			if code < 0 {
				// Killed by a signal; report the conventional failure code.
				code = 1
			}
			return &ExitError{Code: code}
		}
		return fmt.Errorf("waiting for %s: %w", s.invocation.Program, err)
	}

	return nil
}

// Command creates the exec.Cmd for the invocation with the configured
// standard streams. Useful for custom I/O handling or testing.
func (s *Sandbox) Command(ctx context.Context) (*exec.Cmd, error) {
	cmd := exec.CommandContext(ctx, s.invocation.Program, s.invocation.Args...)
	cmd.Stdin = s.stdin
	cmd.Stdout = s.stdout
	cmd.Stderr = s.stderr
	return cmd, nil
}

// DryRun returns the command line that Run would execute.
func (s *Sandbox) DryRun() string {
	return s.invocation.CommandLine()
}

// Invocation returns the sandbox's compiled invocation.
func (s *Sandbox) Invocation() *Invocation {
	return s.invocation
}
