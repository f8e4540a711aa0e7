// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to directory/name, creating intermediate
// directories, and returns the full path.
func WriteFile(t *testing.T, directory, name, content string) string {
	t.Helper()

	path := filepath.Join(directory, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating parent of %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// FakeExecutable writes a /bin/sh script named name into a new temporary
// directory and returns its absolute path. body is the script text after
// the shebang line.
//
//	docker := testutil.FakeExecutable(t, "docker", `echo "$@"; exit 3`)
func FakeExecutable(t *testing.T, name, body string) string {
	t.Helper()

	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skipf("/bin/sh not available: %v", err)
	}

	directory := t.TempDir()
	path := filepath.Join(directory, name)
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("writing fake executable %s: %v", path, err)
	}
	return path
}

// PrependPath puts directory at the front of PATH until the test ends.
// Tests calling it cannot use t.Parallel.
func PrependPath(t *testing.T, directory string) {
	t.Helper()
	t.Setenv("PATH", directory+string(os.PathListSeparator)+os.Getenv("PATH"))
}
