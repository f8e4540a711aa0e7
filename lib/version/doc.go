// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for the yolobox
// binary and release-version comparison for self-update.
//
// Four package-level variables are injected at build time via
// -ldflags -X, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/yolobox/lib/version.Version=1.4.0"
//
//   - [GitCommit] -- short git SHA of the build
//   - [GitDirty] -- "true" if there were uncommitted changes
//   - [BuildTime] -- UTC timestamp of the build
//   - [Version] -- semantic version string without the leading "v"
//
// [Info], [Full], [Short], and [Commit] format them for output.
// [Newer] compares release tags using golang.org/x/mod/semver.
package version
