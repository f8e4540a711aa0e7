// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import "golang.org/x/sys/unix"

// Identity supplies the numeric user and group of the invoking user. The
// container entrypoint drops to these IDs so files written to /app keep
// the caller's ownership.
type Identity interface {
	UID() int
	GID() int
}

// HostIdentity reads the real uid and gid of the current process.
type HostIdentity struct{}

func (HostIdentity) UID() int { return unix.Getuid() }

func (HostIdentity) GID() int { return unix.Getgid() }

// StaticIdentity is a fixed Identity, used by tests and dry runs on
// behalf of another user.
type StaticIdentity struct {
	User  int
	Group int
}

func (s StaticIdentity) UID() int { return s.User }

func (s StaticIdentity) GID() int { return s.Group }
