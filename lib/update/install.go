// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package update

import (
	"path/filepath"
	"strings"
)

// InstallMethod says how the running binary was installed.
type InstallMethod int

const (
	// InstallDirect is a binary placed by hand or by the install script;
	// yolobox can replace it itself.
	InstallDirect InstallMethod = iota

	// InstallHomebrew is managed by brew and must be upgraded through it.
	InstallHomebrew
)

func (m InstallMethod) String() string {
	if m == InstallHomebrew {
		return "homebrew"
	}
	return "direct"
}

// HomebrewUpgradeCommand is printed instead of self-replacing a
// Homebrew-managed binary.
const HomebrewUpgradeCommand = "brew upgrade yolobox"

// homebrewBinDirectories are the prefixes brew links executables into.
var homebrewBinDirectories = []string{
	"/opt/homebrew/bin/",
	"/usr/local/bin/",
	"/home/linuxbrew/.linuxbrew/bin/",
}

// DetectInstallMethod classifies executable (normally os.Executable()).
// A path inside a Cellar/yolobox tree, directly or through a symlink, is
// Homebrew. So is any path in a Homebrew bin directory, even if the link
// cannot be resolved.
func DetectInstallMethod(executable string) InstallMethod {
	if inCellar(executable) {
		return InstallHomebrew
	}
	for _, directory := range homebrewBinDirectories {
		if strings.HasPrefix(executable, directory) {
			return InstallHomebrew
		}
	}
	if resolved, err := filepath.EvalSymlinks(executable); err == nil && inCellar(resolved) {
		return InstallHomebrew
	}
	return InstallDirect
}

func inCellar(path string) bool {
	return strings.Contains(filepath.ToSlash(path), "/Cellar/"+BinaryName+"/")
}
