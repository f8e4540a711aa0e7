// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Canonical returns v as a canonical semantic version with a leading "v"
// (e.g. "1.2" becomes "v1.2.0"), or "" if v is not a valid version.
func Canonical(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return semver.Canonical(v)
}

// Strip removes a single leading "v" from a release tag.
func Strip(tag string) string {
	return strings.TrimPrefix(strings.TrimSpace(tag), "v")
}

// Newer reports whether candidate is a strictly newer release than
// current. Either side may carry a leading "v". An unparseable
// candidate is never newer; an unparseable current (e.g. a development
// build) is older than any valid candidate.
func Newer(candidate, current string) bool {
	candidateVersion := Canonical(candidate)
	if candidateVersion == "" {
		return false
	}
	currentVersion := Canonical(current)
	if currentVersion == "" {
		return true
	}
	return semver.Compare(candidateVersion, currentVersion) > 0
}

// IsDevelopment reports whether the running binary is an unreleased
// build.
func IsDevelopment() bool {
	return Canonical(Version) == "" || semver.Prerelease(Canonical(Version)) == "-dev"
}
