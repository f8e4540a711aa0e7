// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package update

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectInstallMethod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want InstallMethod
	}{
		{"/opt/homebrew/Cellar/yolobox/1.2.0/bin/yolobox", InstallHomebrew},
		{"/home/linuxbrew/.linuxbrew/Cellar/yolobox/1.2.0/bin/yolobox", InstallHomebrew},
		{"/opt/homebrew/bin/yolobox", InstallHomebrew},
		{"/usr/local/bin/yolobox", InstallHomebrew},
		{"/home/linuxbrew/.linuxbrew/bin/yolobox", InstallHomebrew},
		{"/home/dev/.local/bin/yolobox", InstallDirect},
		{"/opt/Cellar/other/bin/yolobox", InstallDirect},
	}
	for _, test := range tests {
		if got := DetectInstallMethod(test.path); got != test.want {
			t.Errorf("DetectInstallMethod(%q) = %v, want %v", test.path, got, test.want)
		}
	}
}

func TestDetectInstallMethodFollowsSymlink(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	cellar := filepath.Join(root, "Cellar", "yolobox", "1.0.0", "bin")
	if err := os.MkdirAll(cellar, 0o755); err != nil {
		t.Fatal(err)
	}
	binary := filepath.Join(cellar, "yolobox")
	if err := os.WriteFile(binary, []byte("x"), 0o755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(root, "yolobox")
	if err := os.Symlink(binary, link); err != nil {
		t.Fatal(err)
	}

	if got := DetectInstallMethod(link); got != InstallHomebrew {
		t.Errorf("DetectInstallMethod(symlink into Cellar) = %v, want homebrew", got)
	}
	if got := DetectInstallMethod(filepath.Join(root, "missing")); got != InstallDirect {
		t.Errorf("DetectInstallMethod(missing) = %v, want direct", got)
	}
}
