// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package projectconfig

import (
	"errors"
	"reflect"
	"testing"

	"github.com/bureau-foundation/yolobox/lib/testutil"
	"github.com/bureau-foundation/yolobox/sandbox"
)

func TestParseFullConfig(t *testing.T) {
	t.Parallel()

	config, err := Parse([]byte(`
default:
  allow_domains: "github.com pypi.org"
  volumes: ["~/.ssh:/home/agent/.ssh:ro", "~/.gitconfig:/home/agent/.gitconfig:ro"]
  env: ["MY_VAR=value", "ANOTHER=var"]
  auth_home: ~/.config/yolobox
  image: my-custom-image:latest
  agent: claude
resources:
  memory: 8g
  cpus: "6"
  pids_limit: "512"
security:
  seccomp_profile: /etc/seccomp.json
  dns_servers: "1.1.1.1"
  audit_log: basic
  inject_message: "be careful"
`), "test.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	options := config.RawOptions()
	checks := []struct {
		name    string
		setting sandbox.Setting[string]
		want    string
	}{
		{"agent", options.Agent, "claude"},
		{"allow_domains", options.AllowDomains, "github.com pypi.org"},
		{"auth_home", options.AuthHome, "~/.config/yolobox"},
		{"image", options.Image, "my-custom-image:latest"},
		{"memory", options.Memory, "8g"},
		{"cpus", options.CPUs, "6"},
		{"pids_limit", options.PidsLimit, "512"},
		{"seccomp_profile", options.SeccompProfile, "/etc/seccomp.json"},
		{"dns_servers", options.DNSServers, "1.1.1.1"},
		{"audit_log", options.AuditLog, "basic"},
		{"inject_message", options.InjectMessage, "be careful"},
	}
	for _, check := range checks {
		if !check.setting.IsExplicit() {
			t.Errorf("%s should be explicit", check.name)
		}
		if check.setting.Value() != check.want {
			t.Errorf("%s = %q, want %q", check.name, check.setting.Value(), check.want)
		}
	}

	wantVolumes := []string{"~/.ssh:/home/agent/.ssh:ro", "~/.gitconfig:/home/agent/.gitconfig:ro"}
	if !reflect.DeepEqual(options.Volumes.Value(), wantVolumes) {
		t.Errorf("volumes = %v, want %v", options.Volumes.Value(), wantVolumes)
	}
	if !reflect.DeepEqual(options.Envs.Value(), []string{"MY_VAR=value", "ANOTHER=var"}) {
		t.Errorf("env = %v", options.Envs.Value())
	}
	if options.AgentArgs.IsSet() || options.DryRun.IsSet() {
		t.Error("the file cannot set agent args or dry run")
	}
}

func TestParsePartialConfig(t *testing.T) {
	t.Parallel()

	config, err := Parse([]byte("resources:\n  memory: 4g\n"), "partial.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	options := config.RawOptions()

	// Equal to the built-in default, but present in the file.
	if !options.Memory.IsExplicit() || options.Memory.Value() != "4g" {
		t.Errorf("memory = %+v, want explicit 4g", options.Memory)
	}
	for name, setting := range map[string]sandbox.Setting[string]{
		"agent": options.Agent, "cpus": options.CPUs, "audit_log": options.AuditLog,
	} {
		if setting.IsSet() {
			t.Errorf("%s should be unset", name)
		}
	}
	if options.Volumes.IsSet() {
		t.Error("volumes should be unset")
	}
}

func TestParseEmptyValues(t *testing.T) {
	t.Parallel()

	config, err := Parse([]byte("default:\n  volumes: []\nsecurity:\n  inject_message: \"\"\n"), "empty.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	options := config.RawOptions()
	if !options.Volumes.IsExplicit() || len(options.Volumes.Value()) != 0 {
		t.Errorf("volumes = %+v, want explicit empty list", options.Volumes)
	}
	if !options.InjectMessage.IsExplicit() || options.InjectMessage.Value() != "" {
		t.Errorf("inject_message = %+v, want explicit empty", options.InjectMessage)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	t.Parallel()

	config, err := Parse(nil, "blank.yaml")
	if err != nil {
		t.Fatalf("Parse of empty document: %v", err)
	}
	if options := config.RawOptions(); options.Agent.IsSet() || options.Memory.IsSet() {
		t.Error("empty document should set nothing")
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"unknown section":   "networking:\n  mode: host\n",
		"unknown key":       "default:\n  privileged: true\n",
		"wrong type":        "default:\n  volumes: \"/a:/a\"\n",
		"invalid yaml":      "default: [unclosed\n",
		"scalar at top":     "just a string\n",
		"typo in resources": "resources:\n  memroy: 8g\n",
	}

	for name, content := range tests {
		_, err := Parse([]byte(content), "bad.yaml")
		if err == nil {
			t.Errorf("%s: expected error", name)
			continue
		}
		if !errors.Is(err, sandbox.ErrConfigParse) {
			t.Errorf("%s: error %v does not wrap ErrConfigParse", name, err)
		}
		var parseErr *sandbox.ConfigParseError
		if !errors.As(err, &parseErr) || parseErr.Path != "bad.yaml" {
			t.Errorf("%s: error = %#v, want ConfigParseError for bad.yaml", name, err)
		}
	}
}

func TestLoadDefault(t *testing.T) {
	t.Parallel()

	directory := t.TempDir()
	config, err := LoadDefault(directory)
	if err != nil || config != nil {
		t.Fatalf("missing file: (%v, %v), want (nil, nil)", config, err)
	}

	// A nil config contributes an empty layer.
	if options := config.RawOptions(); options.Agent.IsSet() {
		t.Error("nil config should produce an empty layer")
	}

	path := testutil.WriteFile(t, directory, FileName, "default:\n  agent: claude\n")
	config, err = LoadDefault(directory)
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	if config.Path != path {
		t.Errorf("Path = %q, want %q", config.Path, path)
	}
	if config.RawOptions().Agent.Value() != "claude" {
		t.Error("agent not loaded")
	}

	testutil.WriteFile(t, directory, FileName, "default:\n  nonsense: 1\n")
	if _, err := LoadDefault(directory); !errors.Is(err, sandbox.ErrConfigParse) {
		t.Errorf("broken file: error = %v, want ErrConfigParse", err)
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	t.Parallel()

	_, err := Load(t.TempDir() + "/nope.yaml")
	if err == nil {
		t.Fatal("explicit missing config should fail")
	}
	if errors.Is(err, sandbox.ErrConfigParse) {
		t.Error("a missing file is not a parse error")
	}
}

func TestRawOptionsCopiesLists(t *testing.T) {
	t.Parallel()

	config, err := Parse([]byte("default:\n  env: [\"A=1\"]\n"), "x.yaml")
	if err != nil {
		t.Fatal(err)
	}
	options := config.RawOptions()
	options.Envs.Value()[0] = "B=2"
	if (*config.Default.Env)[0] != "A=1" {
		t.Error("RawOptions aliased the parsed list")
	}
}
