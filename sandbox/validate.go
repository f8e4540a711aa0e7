// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ValidationResult holds the result of a validation check.
type ValidationResult struct {
	Name    string
	Passed  bool
	Message string
	Warning bool // True if this is a warning, not an error.
}

// Validator performs pre-flight validation before running an agent.
type Validator struct {
	results []ValidationResult
	errors  int
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{
		results: make([]ValidationResult, 0),
	}
}

// Results returns all validation results.
func (v *Validator) Results() []ValidationResult {
	return v.results
}

// HasErrors returns true if any validation failed.
func (v *Validator) HasErrors() bool {
	return v.errors > 0
}

// Pass records a successful validation.
func (v *Validator) Pass(name, message string) {
	v.results = append(v.results, ValidationResult{
		Name:    name,
		Passed:  true,
		Message: message,
	})
}

// Warn records a warning (not a failure).
func (v *Validator) Warn(name, message string) {
	v.results = append(v.results, ValidationResult{
		Name:    name,
		Passed:  true,
		Message: message,
		Warning: true,
	})
}

// Fail records a validation failure.
func (v *Validator) Fail(name, message string) {
	v.results = append(v.results, ValidationResult{
		Name:    name,
		Passed:  false,
		Message: message,
	})
	v.errors++
}

// ValidateAll runs every check for a resolved policy. Unlike Compile,
// it has no side effects: nothing is created or written.
func (v *Validator) ValidateAll(policy Policy, defaults Defaults) {
	v.ValidateRuntime(defaults.Runtime)
	v.ValidateVolumes(policy.Volumes)
	v.ValidateSeccomp(policy.SeccompProfile)
	v.ValidateAuthHome(policy.AuthHome)
	v.ValidateLimits(policy)
}

// ValidateRuntime checks that the container runtime is installed and its
// daemon answers.
func (v *Validator) ValidateRuntime(runtime string) {
	if runtime == "" {
		runtime = "docker"
	}
	caps := DetectCapabilities(runtime)
	if !caps.RuntimeAvailable {
		v.Fail("runtime", fmt.Sprintf("%s not found in PATH or not executable", runtime))
		return
	}
	if caps.RuntimeVersion != "" {
		v.Pass("runtime", fmt.Sprintf("available: %s (%s)", caps.RuntimePath, caps.RuntimeVersion))
	} else {
		v.Warn("runtime", fmt.Sprintf("found at %s but --version failed", caps.RuntimePath))
	}

	if !caps.DaemonReachable {
		v.Fail("daemon", caps.SkipReason())
		return
	}
	v.Pass("daemon", fmt.Sprintf("reachable (server %s)", caps.ServerVersion))
}

// ValidateVolumes checks every requested volume against the denylist and
// warns about volumes docker would interpret unexpectedly.
func (v *Validator) ValidateVolumes(volumes []string) {
	if len(volumes) == 0 {
		v.Pass("volumes", "no extra volumes requested")
		return
	}
	for _, volume := range volumes {
		if err := CheckVolume(volume); err != nil {
			v.Fail("volume", err.Error())
			continue
		}
		spec, err := ParseVolumeSpec(volume)
		if err != nil {
			v.Warn("volume", fmt.Sprintf("%v (passed to docker unchanged)", err))
			continue
		}
		hostPath, err := expandHome(spec.HostPath)
		if err != nil {
			v.Warn("volume", fmt.Sprintf("cannot expand %s: %v", spec.HostPath, err))
			continue
		}
		if filepath.IsAbs(hostPath) || strings.HasPrefix(hostPath, ".") {
			if _, err := os.Stat(hostPath); os.IsNotExist(err) {
				v.Warn("volume", fmt.Sprintf("host path does not exist: %s (docker will create it as root)", hostPath))
				continue
			}
		}
		v.Pass("volume", fmt.Sprintf("ok: %s", volume))
	}
}

// ValidateSeccomp checks that the selected seccomp profile is usable.
func (v *Validator) ValidateSeccomp(spec string) {
	switch {
	case strings.EqualFold(spec, SentinelNone):
		v.Warn("seccomp", "disabled (container runs unconfined)")
	case spec != "":
		if _, err := os.Stat(spec); err != nil {
			v.Fail("seccomp", fmt.Sprintf("custom profile not found: %s", spec))
			return
		}
		v.Pass("seccomp", fmt.Sprintf("custom profile: %s", spec))
	default:
		if _, err := DefaultSeccompProfile(); err != nil {
			v.Fail("seccomp", err.Error())
			return
		}
		v.Pass("seccomp", "embedded default profile")
	}
}

// ValidateAuthHome checks that the auth-home directory exists or can be
// created.
func (v *Validator) ValidateAuthHome(path string) {
	expanded, err := expandHome(path)
	if err != nil || expanded == "" {
		v.Fail("auth_home", fmt.Sprintf("cannot resolve auth home %q", path))
		return
	}

	info, err := os.Stat(expanded)
	if err == nil {
		if !info.IsDir() {
			v.Fail("auth_home", fmt.Sprintf("not a directory: %s", expanded))
			return
		}
		v.Pass("auth_home", fmt.Sprintf("exists: %s", expanded))
		return
	}
	if !errors.Is(err, os.ErrNotExist) {
		v.Fail("auth_home", fmt.Sprintf("cannot access %s: %v", expanded, err))
		return
	}

	// Walk up to the nearest existing ancestor; MkdirAll needs it to be a
	// directory.
	ancestor := filepath.Dir(expanded)
	for {
		if info, err := os.Stat(ancestor); err == nil {
			if !info.IsDir() {
				v.Fail("auth_home", fmt.Sprintf("cannot create %s: %s is not a directory", expanded, ancestor))
				return
			}
			break
		}
		parent := filepath.Dir(ancestor)
		if parent == ancestor {
			break
		}
		ancestor = parent
	}
	v.Pass("auth_home", fmt.Sprintf("will be created: %s", expanded))
}

// ValidateLimits reports the same warnings Compile would emit for
// resource, DNS, and audit settings.
func (v *Validator) ValidateLimits(policy Policy) {
	_, warnings := NormalizeResources(ResourceLimits{
		Memory:    policy.Memory,
		CPUs:      policy.CPUs,
		PidsLimit: policy.PidsLimit,
	})
	if _, warning := NormalizeDNS(policy.DNSServers); warning != nil {
		warnings = append(warnings, *warning)
	}
	if _, _, warning := NormalizeAudit(policy.AuditLog); warning != nil {
		warnings = append(warnings, *warning)
	}

	if len(warnings) == 0 {
		v.Pass("limits", fmt.Sprintf("memory=%s cpus=%s pids=%s", policy.Memory, policy.CPUs, policy.PidsLimit))
		return
	}
	for _, warning := range warnings {
		v.Warn("limits", warning.Message)
	}
}

// PrintResults writes validation results to a writer.
func (v *Validator) PrintResults(w io.Writer) {
	for _, r := range v.results {
		var prefix string
		if r.Passed {
			if r.Warning {
				prefix = "⚠"
			} else {
				prefix = "✓"
			}
		} else {
			prefix = "✗"
		}
		fmt.Fprintf(w, "%s %s: %s\n", prefix, r.Name, r.Message)
	}

	fmt.Fprintln(w)
	if v.HasErrors() {
		fmt.Fprintf(w, "Validation failed with %d error(s)\n", v.errors)
	} else {
		fmt.Fprintln(w, "Ready to run agent")
	}
}
