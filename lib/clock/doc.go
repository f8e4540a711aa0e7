// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// Code that compares against the current time takes a Clock instead of
// calling time.Now directly:
//
//	notifier := &update.Notifier{Clock: clock.Real()}
//
// In tests:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	notifier := &update.Notifier{Clock: c}
//	c.Advance(25 * time.Hour)
package clock
