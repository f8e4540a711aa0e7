// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"
)

// Capabilities describes what the host's container runtime can do.
type Capabilities struct {
	// RuntimeAvailable is true if the runtime executable was found and
	// is executable by the current user.
	RuntimeAvailable bool

	// RuntimePath is the resolved path to the runtime if available.
	RuntimePath string

	// RuntimeVersion is the client version string.
	RuntimeVersion string

	// DaemonReachable is true if the runtime could talk to its daemon.
	DaemonReachable bool

	// ServerVersion is the daemon's version string when reachable.
	ServerVersion string
}

// DetectCapabilities queries the given runtime (usually "docker").
func DetectCapabilities(runtime string) *Capabilities {
	caps := &Capabilities{}

	path, err := exec.LookPath(runtime)
	if err != nil {
		return caps
	}
	if unix.Access(path, unix.X_OK) != nil {
		return caps
	}
	caps.RuntimeAvailable = true
	caps.RuntimePath = path

	if out, err := exec.Command(path, "--version").Output(); err == nil {
		caps.RuntimeVersion = strings.TrimSpace(string(out))
	}

	if out, err := exec.Command(path, "info", "--format", "{{.ServerVersion}}").Output(); err == nil {
		caps.DaemonReachable = true
		caps.ServerVersion = strings.TrimSpace(string(out))
	}

	return caps
}

// CanRunSandbox returns true if a container can be started.
func (c *Capabilities) CanRunSandbox() bool {
	return c.RuntimeAvailable && c.DaemonReachable
}

// SkipReason returns a human-readable reason why containers can't be
// started, or empty string if they can.
func (c *Capabilities) SkipReason() string {
	if !c.RuntimeAvailable {
		return "container runtime not installed"
	}
	if !c.DaemonReachable {
		return "container runtime daemon not reachable (is it running, and can this user access it?)"
	}
	return ""
}
