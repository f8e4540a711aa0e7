// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for yolobox packages.
//
// [WriteFile] creates a file (and its parent directories) under a test
// directory in one call.
//
// [FakeExecutable] writes a small shell script into a fresh directory and
// returns the script's path. Tests use it to stand in for the container
// runtime so that command construction and exit-code propagation can be
// exercised without docker installed. [PrependPath] puts such a directory
// at the front of PATH for the duration of a test.
//
// [RequireReceive] encapsulates the timeout safety valve pattern (select
// with time.After fallback) so that individual tests do not need direct
// time.After calls.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no yolobox-internal dependencies.
package testutil
