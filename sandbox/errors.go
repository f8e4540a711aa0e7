// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"errors"
	"fmt"
)

// Sentinel errors. Each typed error below unwraps to one of these so
// callers can use errors.Is without knowing the concrete type.
var (
	ErrConfigParse            = errors.New("yolobox: invalid project config")
	ErrDangerousMount         = errors.New("yolobox: dangerous volume mount")
	ErrSeccompProfileNotFound = errors.New("yolobox: seccomp profile not found")
	ErrFilesystemPreparation  = errors.New("yolobox: filesystem preparation failed")
	ErrLaunch                 = errors.New("yolobox: container runtime failed to start")
)

// ConfigParseError is returned when a project config file exists but
// cannot be parsed into the expected shape.
type ConfigParseError struct {
	Path string
	Err  error
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("parsing config file %s: %v", e.Path, e.Err)
}

func (e *ConfigParseError) Unwrap() []error {
	return []error{ErrConfigParse, e.Err}
}

// DangerousMountError is returned when a requested volume matches a
// denylist rule.
type DangerousMountError struct {
	Volume string
	Rule   DenylistRule
}

func (e *DangerousMountError) Error() string {
	return fmt.Sprintf("refusing to mount %q: %s", e.Volume, e.Rule.Reason)
}

func (e *DangerousMountError) Unwrap() error {
	return ErrDangerousMount
}

// SeccompProfileNotFoundError is returned when a custom seccomp profile
// path does not exist.
type SeccompProfileNotFoundError struct {
	Path string
	Err  error
}

func (e *SeccompProfileNotFoundError) Error() string {
	return fmt.Sprintf("seccomp profile %s: %v", e.Path, e.Err)
}

func (e *SeccompProfileNotFoundError) Unwrap() []error {
	return []error{ErrSeccompProfileNotFound, e.Err}
}

// FilesystemPreparationError is returned when the auth-home directory or
// the seccomp temp file cannot be created.
type FilesystemPreparationError struct {
	// Op describes what was being prepared (e.g. "create auth home").
	Op   string
	Path string
	Err  error
}

func (e *FilesystemPreparationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemPreparationError) Unwrap() []error {
	return []error{ErrFilesystemPreparation, e.Err}
}

// LaunchError is returned when the container runtime binary could not be
// started at all.
type LaunchError struct {
	Program string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("starting %s: %v", e.Program, e.Err)
}

func (e *LaunchError) Unwrap() []error {
	return []error{ErrLaunch, e.Err}
}

// ExitError represents a non-zero exit from the container runtime. It is
// not a defect in yolobox; the code is propagated verbatim.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command exited with code %d", e.Code)
}

// ExitCode returns the child's exit code.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// IsExitError checks if an error is an ExitError and returns the code.
func IsExitError(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}
