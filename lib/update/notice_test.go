// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package update

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/yolobox/lib/clock"
)

type fakeSource struct {
	latest string
	err    error
	calls  int
}

func (f *fakeSource) LatestVersion(context.Context) (string, error) {
	f.calls++
	return f.latest, f.err
}

func TestNotifierCachesWithinInterval(t *testing.T) {
	t.Parallel()

	fakeClock := clock.Fake(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	source := &fakeSource{latest: "1.5.0"}
	notifier := &Notifier{
		Source:    source,
		CachePath: filepath.Join(t.TempDir(), "yolobox", "update-check.cbor"),
		Current:   "1.4.0",
		Clock:     fakeClock,
	}

	latest, newer := notifier.Check(context.Background())
	if latest != "1.5.0" || !newer {
		t.Fatalf("Check = (%q, %v), want (1.5.0, true)", latest, newer)
	}

	// A second check inside the interval uses the cache even if the
	// source now reports something else.
	source.latest = "9.9.9"
	fakeClock.Advance(time.Hour)
	latest, _ = notifier.Check(context.Background())
	if latest != "1.5.0" {
		t.Errorf("cached latest = %q, want 1.5.0", latest)
	}
	if source.calls != 1 {
		t.Errorf("source called %d times, want 1", source.calls)
	}

	fakeClock.Advance(CheckInterval)
	latest, _ = notifier.Check(context.Background())
	if latest != "9.9.9" || source.calls != 2 {
		t.Errorf("after interval: latest = %q, calls = %d", latest, source.calls)
	}
}

func TestNotifierCurrentIsLatest(t *testing.T) {
	t.Parallel()

	notifier := &Notifier{Source: &fakeSource{latest: "1.4.0"}, Current: "v1.4.0"}
	if _, newer := notifier.Check(context.Background()); newer {
		t.Error("same version reported as newer")
	}
}

func TestNotifierSwallowsErrors(t *testing.T) {
	t.Parallel()

	notifier := &Notifier{
		Source:    &fakeSource{err: errors.New("offline")},
		CachePath: filepath.Join(t.TempDir(), "update-check.cbor"),
		Current:   "1.0.0",
	}
	latest, newer := notifier.Check(context.Background())
	if latest != "" || newer {
		t.Errorf("Check = (%q, %v), want empty and false", latest, newer)
	}
}

func TestNotifierRechecksAfterClockMovesBack(t *testing.T) {
	t.Parallel()

	fakeClock := clock.Fake(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	source := &fakeSource{latest: "1.5.0"}
	notifier := &Notifier{
		Source:    source,
		CachePath: filepath.Join(t.TempDir(), "update-check.cbor"),
		Current:   "1.4.0",
		Clock:     fakeClock,
	}

	notifier.Check(context.Background())
	fakeClock.Advance(-time.Hour)
	notifier.Check(context.Background())
	if source.calls != 2 {
		t.Errorf("source called %d times, want 2 (cache timestamp is in the future)", source.calls)
	}
}

func TestNotifierCachesFailedLookup(t *testing.T) {
	t.Parallel()

	fakeClock := clock.Fake(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	source := &fakeSource{err: errors.New("offline")}
	notifier := &Notifier{
		Source:    source,
		CachePath: filepath.Join(t.TempDir(), "update-check.cbor"),
		Current:   "1.0.0",
		Clock:     fakeClock,
	}

	notifier.Check(context.Background())
	fakeClock.Advance(time.Hour)
	latest, newer := notifier.Check(context.Background())
	if latest != "" || newer {
		t.Errorf("Check = (%q, %v), want empty and false", latest, newer)
	}
	if source.calls != 1 {
		t.Errorf("source called %d times while offline, want 1", source.calls)
	}

	// Once the interval passes the source is asked again.
	source.err = nil
	source.latest = "1.1.0"
	fakeClock.Advance(CheckInterval)
	latest, newer = notifier.Check(context.Background())
	if latest != "1.1.0" || !newer || source.calls != 2 {
		t.Errorf("after interval: (%q, %v), calls = %d", latest, newer, source.calls)
	}
}

func TestNotifierKeepsLastKnownReleaseOnFailure(t *testing.T) {
	t.Parallel()

	fakeClock := clock.Fake(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	source := &fakeSource{latest: "1.5.0"}
	notifier := &Notifier{
		Source:    source,
		CachePath: filepath.Join(t.TempDir(), "update-check.cbor"),
		Current:   "1.4.0",
		Clock:     fakeClock,
	}

	notifier.Check(context.Background())
	source.err = errors.New("offline")
	fakeClock.Advance(CheckInterval)
	latest, newer := notifier.Check(context.Background())
	if latest != "1.5.0" || !newer {
		t.Errorf("Check = (%q, %v), want (1.5.0, true)", latest, newer)
	}
}

func TestDisabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"unset", "", false},
		{"set", "1", true},
		{"any value", "no", true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			getenv := func(key string) string {
				if key == DisableEnvironment {
					return test.value
				}
				return ""
			}
			if got := Disabled(getenv); got != test.want {
				t.Errorf("Disabled = %v, want %v", got, test.want)
			}
		})
	}
}

func TestDescribeCache(t *testing.T) {
	t.Parallel()

	fakeClock := clock.Fake(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	path := filepath.Join(t.TempDir(), "update-check.cbor")
	notifier := &Notifier{
		Source:    &fakeSource{latest: "1.5.0"},
		CachePath: path,
		Current:   "1.4.0",
		Clock:     fakeClock,
	}
	notifier.Check(context.Background())

	notation, err := DescribeCache(path)
	if err != nil {
		t.Fatalf("DescribeCache: %v", err)
	}
	if !strings.Contains(notation, `"latest": "1.5.0"`) || !strings.Contains(notation, `"checked_at"`) {
		t.Errorf("DescribeCache = %s", notation)
	}

	if _, err := DescribeCache(filepath.Join(t.TempDir(), "missing.cbor")); err == nil {
		t.Error("missing cache file: expected error")
	}
}
