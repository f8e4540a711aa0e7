// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// exitCoder is implemented by errors that carry a process exit code: a
// container that exited non-zero, or a command that already printed its
// own failure output.
type exitCoder interface {
	ExitCode() int
}

// Exit terminates the process for a command result. nil exits 0. An
// error carrying an exit code exits with that code silently. Anything
// else is printed as "error: ..." and exits 1.
func Exit(err error) {
	os.Exit(Report(os.Stderr, err))
}

// Report writes err to w the way Exit would and returns the exit code,
// without exiting.
func Report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	var coder exitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	fmt.Fprintf(w, "error: %v\n", err)
	return 1
}
