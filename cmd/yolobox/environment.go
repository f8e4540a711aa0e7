// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/bureau-foundation/yolobox/cmd/yolobox/cli"
	"github.com/bureau-foundation/yolobox/lib/console"
	"github.com/bureau-foundation/yolobox/lib/update"
	"github.com/bureau-foundation/yolobox/sandbox"
)

// environment carries everything a command touches outside its own
// arguments, so tests can swap streams, defaults, and the working
// directory.
type environment struct {
	ctx     context.Context
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	console *console.Console

	// stdoutTerminal enables syntax highlighting of "config show".
	stdoutTerminal bool

	defaults sandbox.Defaults
	identity sandbox.Identity

	// workDir is the project directory; empty means the process's
	// current directory.
	workDir string

	// tempDir receives the materialized seccomp profile; empty means
	// os.TempDir().
	tempDir string

	// getenv reads environment variables (TRUSTED_DOMAINS and friends).
	getenv func(string) string

	// newLogger builds the slog logger once --verbose is known.
	newLogger func(verbose bool) *slog.Logger

	// releases is the release host used by update and the notice.
	releases *update.Client

	// executable locates the running binary for self-update.
	executable func() (string, error)
}

func newEnvironment() *environment {
	return &environment{
		ctx:            context.Background(),
		stdin:          os.Stdin,
		stdout:         os.Stdout,
		stderr:         os.Stderr,
		console:        console.Stderr(),
		stdoutTerminal: term.IsTerminal(int(os.Stdout.Fd())),
		defaults:       sandbox.DefaultDefaults(),
		identity:       sandbox.HostIdentity{},
		getenv:         os.Getenv,
		newLogger:      cli.NewCommandLogger,
		releases:       update.NewClient(),
		executable:     os.Executable,
	}
}

func (e *environment) projectDir() (string, error) {
	if e.workDir != "" {
		return e.workDir, nil
	}
	return os.Getwd()
}
