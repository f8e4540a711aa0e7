// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package update

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/bureau-foundation/yolobox/lib/clock"
	"github.com/bureau-foundation/yolobox/lib/codec"
	"github.com/bureau-foundation/yolobox/lib/version"
)

const (
	// CheckInterval is the minimum time between release checks.
	CheckInterval = 24 * time.Hour

	// DisableEnvironment turns the passive check off when set to any
	// non-empty value.
	DisableEnvironment = "YOLOBOX_NO_UPDATE_CHECK"
)

// checkState is the on-disk record of the last release check.
type checkState struct {
	CheckedAt time.Time `cbor:"checked_at"`
	Latest    string    `cbor:"latest"`
}

// LatestSource is the part of Client a Notifier needs.
type LatestSource interface {
	LatestVersion(ctx context.Context) (string, error)
}

// Notifier answers "is there a newer release?" at most once per
// CheckInterval, caching the answer in a CBOR file.
type Notifier struct {
	Source    LatestSource
	CachePath string
	Current   string

	// Clock defaults to clock.Real().
	Clock clock.Clock
}

// DefaultCachePath returns <user cache dir>/yolobox/update-check.cbor.
func DefaultCachePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "yolobox", "update-check.cbor"), nil
}

// Disabled reports whether the passive check has been turned off in the
// environment read through getenv.
func Disabled(getenv func(string) string) bool {
	return getenv(DisableEnvironment) != ""
}

// Check returns the latest release version and true when it is newer
// than Current. Errors are swallowed: the notice is best-effort and must
// never block or fail a run. A failed lookup is recorded like a
// successful one, so an offline machine asks again only after
// CheckInterval, and the last known release is kept.
func (n *Notifier) Check(ctx context.Context) (string, bool) {
	now := clock.Real().Now
	if n.Clock != nil {
		now = n.Clock.Now
	}

	var state checkState
	cached := n.CachePath != "" && codec.ReadFile(n.CachePath, &state) == nil
	if !cached {
		state = checkState{}
	}
	if !cached || now().Sub(state.CheckedAt) >= CheckInterval || now().Before(state.CheckedAt) {
		latest, err := n.Source.LatestVersion(ctx)
		if err == nil {
			state.Latest = latest
		}
		state.CheckedAt = now().UTC()
		if n.CachePath != "" {
			// A cache write failure only means the next run checks again.
			_ = codec.WriteFile(n.CachePath, state)
		}
	}

	if state.Latest == "" {
		return "", false
	}
	return state.Latest, version.Newer(state.Latest, n.Current)
}

// DescribeCache renders the cached check state at path in CBOR
// diagnostic notation, for debug output.
func DescribeCache(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return codec.Diagnose(data)
}
