// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"fmt"
	"strings"
)

// DenylistRule is a mount pattern that is always rejected.
type DenylistRule struct {
	// Pattern is matched against the lower-cased raw volume string.
	Pattern string

	// Reason explains the risk to the operator.
	Reason string

	// anywhere makes the rule a substring match instead of a prefix match.
	anywhere bool
}

// socketRule blocks the container runtime control socket wherever it
// appears in the volume string. A socket mount hands the agent root on
// the host, so it is matched more broadly than the directory rules.
var socketRule = DenylistRule{
	Pattern:  "docker.sock",
	Reason:   "mounting the container runtime socket grants root-equivalent control of the host",
	anywhere: true,
}

// rootDirectoryRules block literal mounts of sensitive host roots. The
// pattern includes the host/container separator so host paths that only
// contain the name (e.g. /home/me/myproc) still pass.
var rootDirectoryRules = []DenylistRule{
	{Pattern: "/proc:", Reason: "mounting /proc exposes host process information and kernel tunables"},
	{Pattern: "/sys:", Reason: "mounting /sys exposes host kernel and device configuration"},
	{Pattern: "/dev:", Reason: "mounting /dev exposes raw host devices"},
	{Pattern: "/boot:", Reason: "mounting /boot exposes the host kernel and bootloader"},
	{Pattern: "/etc:", Reason: "mounting /etc exposes host system configuration and credentials"},
}

// DenylistRules returns the fixed denylist table in evaluation order.
func DenylistRules() []DenylistRule {
	rules := make([]DenylistRule, 0, len(rootDirectoryRules)+1)
	rules = append(rules, socketRule)
	rules = append(rules, rootDirectoryRules...)
	return rules
}

// Matches reports whether the rule rejects the given raw volume string.
func (r DenylistRule) Matches(volume string) bool {
	lowered := strings.ToLower(volume)
	if r.anywhere {
		return strings.Contains(lowered, r.Pattern)
	}
	return strings.HasPrefix(lowered, r.Pattern)
}

// CheckVolume returns a *DangerousMountError if volume matches any
// denylist rule.
func CheckVolume(volume string) error {
	for _, rule := range DenylistRules() {
		if rule.Matches(volume) {
			return &DangerousMountError{Volume: volume, Rule: rule}
		}
	}
	return nil
}

// ValidateVolumes checks every volume and returns the first violation.
// Callers must run it to completion before building any part of an
// invocation.
func ValidateVolumes(volumes []string) error {
	for _, volume := range volumes {
		if err := CheckVolume(volume); err != nil {
			return err
		}
	}
	return nil
}

// VolumeSpec is a parsed "host:container[:mode]" volume string.
type VolumeSpec struct {
	HostPath      string
	ContainerPath string
	// Mode is MountModeRO, MountModeRW, or empty when not given.
	Mode string
}

// MountMode values for VolumeSpec.Mode.
const (
	MountModeRO = "ro"
	MountModeRW = "rw"
)

// ParseVolumeSpec parses a volume specification in format
// "host:container[:mode]". Paths are assumed not to contain colons.
func ParseVolumeSpec(spec string) (VolumeSpec, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return VolumeSpec{}, fmt.Errorf("invalid volume %q: must be host:container[:mode]", spec)
	}
	if parts[0] == "" || parts[1] == "" {
		return VolumeSpec{}, fmt.Errorf("invalid volume %q: host and container paths are required", spec)
	}

	volume := VolumeSpec{HostPath: parts[0], ContainerPath: parts[1]}
	if len(parts) == 3 {
		if parts[2] != MountModeRO && parts[2] != MountModeRW {
			return VolumeSpec{}, fmt.Errorf("invalid volume mode %q: must be ro or rw", parts[2])
		}
		volume.Mode = parts[2]
	}
	return volume, nil
}

// String renders the spec back into docker's -v syntax.
func (v VolumeSpec) String() string {
	if v.Mode == "" {
		return v.HostPath + ":" + v.ContainerPath
	}
	return v.HostPath + ":" + v.ContainerPath + ":" + v.Mode
}
