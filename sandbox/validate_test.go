// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/yolobox/lib/testutil"
)

func TestNewValidator(t *testing.T) {
	t.Parallel()

	validator := NewValidator()

	if validator.HasErrors() {
		t.Error("new validator should have no errors")
	}
	if length := len(validator.Results()); length != 0 {
		t.Errorf("new validator should have no results, got %d", length)
	}
}

func TestValidatorAccumulation(t *testing.T) {
	t.Parallel()

	validator := NewValidator()

	validator.Pass("check-a", "all good")
	if validator.HasErrors() {
		t.Error("should have no errors after a pass")
	}

	// Warnings are not errors.
	validator.Warn("check-b", "something is off")
	if validator.HasErrors() {
		t.Error("warnings should not count as errors")
	}
	warningResult := validator.Results()[1]
	if !warningResult.Passed || !warningResult.Warning {
		t.Errorf("warning result = %+v, want Passed and Warning", warningResult)
	}

	validator.Fail("check-c", "broken")
	if !validator.HasErrors() {
		t.Error("should have errors after a fail")
	}
	failureResult := validator.Results()[2]
	if failureResult.Passed || failureResult.Warning {
		t.Errorf("failure result = %+v, want not Passed and not Warning", failureResult)
	}
	if length := len(validator.Results()); length != 3 {
		t.Errorf("expected 3 results, got %d", length)
	}
}

func TestValidateVolumesResults(t *testing.T) {
	t.Parallel()

	existing := t.TempDir()
	missing := filepath.Join(t.TempDir(), "missing")

	validator := NewValidator()
	validator.ValidateVolumes([]string{
		existing + ":/data:ro",
		"/var/run/docker.sock:/var/run/docker.sock",
		missing + ":/missing",
		"named-volume",
	})

	results := validator.Results()
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d: %+v", len(results), results)
	}
	if !results[0].Passed || results[0].Warning {
		t.Errorf("existing volume: %+v, want pass", results[0])
	}
	if results[1].Passed {
		t.Errorf("docker socket: %+v, want failure", results[1])
	}
	if !results[2].Warning || !strings.Contains(results[2].Message, "does not exist") {
		t.Errorf("missing host path: %+v, want warning", results[2])
	}
	if !results[3].Warning {
		t.Errorf("unparseable volume: %+v, want warning", results[3])
	}
	if !validator.HasErrors() {
		t.Error("a denied volume must make validation fail")
	}
}

func TestValidateSeccomp(t *testing.T) {
	t.Parallel()

	custom := testutil.WriteFile(t, t.TempDir(), "profile.json", `{}`)

	tests := []struct {
		name     string
		spec     string
		wantFail bool
		wantWarn bool
	}{
		{name: "embedded", spec: ""},
		{name: "disabled", spec: "none", wantWarn: true},
		{name: "custom", spec: custom},
		{name: "custom missing", spec: "/nonexistent/profile.json", wantFail: true},
	}

	for _, test := range tests {
		validator := NewValidator()
		validator.ValidateSeccomp(test.spec)
		result := validator.Results()[0]
		if result.Passed == test.wantFail {
			t.Errorf("%s: Passed = %v, want %v", test.name, result.Passed, !test.wantFail)
		}
		if result.Warning != test.wantWarn {
			t.Errorf("%s: Warning = %v, want %v", test.name, result.Warning, test.wantWarn)
		}
	}
}

func TestValidateAuthHome(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	file := testutil.WriteFile(t, root, "file", "")

	tests := []struct {
		name     string
		path     string
		wantFail bool
		contains string
	}{
		{name: "existing", path: root, contains: "exists"},
		{name: "creatable", path: filepath.Join(root, "a", "b"), contains: "will be created"},
		{name: "is a file", path: file, wantFail: true},
		{name: "under a file", path: filepath.Join(file, "auth"), wantFail: true},
	}

	for _, test := range tests {
		validator := NewValidator()
		validator.ValidateAuthHome(test.path)
		result := validator.Results()[0]
		if result.Passed == test.wantFail {
			t.Errorf("%s: %+v", test.name, result)
		}
		if test.contains != "" && !strings.Contains(result.Message, test.contains) {
			t.Errorf("%s: message %q should contain %q", test.name, result.Message, test.contains)
		}
	}

	// Validation never creates anything.
	if _, err := os.Stat(filepath.Join(root, "a")); !os.IsNotExist(err) {
		t.Error("ValidateAuthHome created a directory")
	}
}

func TestValidateLimits(t *testing.T) {
	t.Parallel()

	validator := NewValidator()
	validator.ValidateLimits(Policy{Memory: "4g", CPUs: "4", PidsLimit: "256", DNSServers: "1.1.1.1", AuditLog: "none"})
	if results := validator.Results(); len(results) != 1 || results[0].Warning {
		t.Errorf("default limits: %+v, want single pass", results)
	}

	validator = NewValidator()
	validator.ValidateLimits(Policy{Memory: "unlimited", CPUs: "4", PidsLimit: "unlimited", DNSServers: "any", AuditLog: "chatty"})
	results := validator.Results()
	if len(results) != 4 {
		t.Fatalf("expected 4 warnings, got %d: %+v", len(results), results)
	}
	for _, result := range results {
		if !result.Warning {
			t.Errorf("expected warning, got %+v", result)
		}
	}
	if validator.HasErrors() {
		t.Error("limit warnings must not fail validation")
	}
}

func TestValidateRuntime(t *testing.T) {
	runtimeDir := filepath.Dir(testutil.FakeExecutable(t, "fake-runtime", `
case "$1" in
--version) echo "Fake version 1.0" ;;
info) echo "27.0.1" ;;
esac`))
	testutil.PrependPath(t, runtimeDir)

	validator := NewValidator()
	validator.ValidateRuntime("fake-runtime")
	results := validator.Results()
	if validator.HasErrors() || len(results) != 2 {
		t.Fatalf("results = %+v, want runtime and daemon passes", results)
	}
	if !strings.Contains(results[1].Message, "27.0.1") {
		t.Errorf("daemon message = %q, want server version", results[1].Message)
	}

	validator = NewValidator()
	validator.ValidateRuntime("yolobox-no-such-runtime")
	if !validator.HasErrors() {
		t.Error("missing runtime should fail validation")
	}
}

func TestValidateRuntimeDaemonDown(t *testing.T) {
	runtimeDir := filepath.Dir(testutil.FakeExecutable(t, "down-runtime", `
case "$1" in
--version) echo "Fake version 1.0" ;;
*) echo "Cannot connect to the daemon" >&2; exit 1 ;;
esac`))
	testutil.PrependPath(t, runtimeDir)

	caps := DetectCapabilities("down-runtime")
	if !caps.RuntimeAvailable || caps.DaemonReachable {
		t.Fatalf("caps = %+v, want runtime available and daemon unreachable", caps)
	}
	if caps.CanRunSandbox() {
		t.Error("CanRunSandbox should be false")
	}
	if reason := caps.SkipReason(); !strings.Contains(reason, "daemon") {
		t.Errorf("SkipReason = %q", reason)
	}
}

func TestPrintResults(t *testing.T) {
	t.Parallel()

	validator := NewValidator()
	validator.Pass("runtime", "available")
	validator.Warn("seccomp", "disabled")

	var buffer bytes.Buffer
	validator.PrintResults(&buffer)
	output := buffer.String()
	for _, want := range []string{"✓ runtime: available", "⚠ seccomp: disabled", "Ready to run agent"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}

	validator.Fail("volume", "refused")
	buffer.Reset()
	validator.PrintResults(&buffer)
	output = buffer.String()
	if !strings.Contains(output, "✗ volume: refused") || !strings.Contains(output, "Validation failed with 1 error(s)") {
		t.Errorf("unexpected output:\n%s", output)
	}
}
