// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package projectconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/yolobox/sandbox"
)

// FileName is the project config file looked up in the working directory.
const FileName = ".yolobox.yaml"

// Config is the parsed project file.
type Config struct {
	// Default holds the general run settings.
	Default DefaultSection `yaml:"default"`

	// Resources holds container resource limits.
	Resources ResourcesSection `yaml:"resources"`

	// Security holds isolation and prompt settings.
	Security SecuritySection `yaml:"security"`

	// Path is the file the config was loaded from.
	Path string `yaml:"-"`
}

// DefaultSection configures the agent, mounts, and network allowlist.
type DefaultSection struct {
	// AllowDomains is a space-separated list of extra outbound domains.
	AllowDomains *string `yaml:"allow_domains"`

	// Volumes are extra docker -v specs. Replaces, never extends, lower
	// layers.
	Volumes *[]string `yaml:"volumes"`

	// Env are extra KEY=VALUE variables.
	Env *[]string `yaml:"env"`

	AuthHome *string `yaml:"auth_home"`
	Image    *string `yaml:"image"`
	Agent    *string `yaml:"agent"`
}

// ResourcesSection configures container resource limits. Values are
// passed to docker verbatim; "unlimited" removes a limit.
type ResourcesSection struct {
	Memory    *string `yaml:"memory"`
	CPUs      *string `yaml:"cpus"`
	PidsLimit *string `yaml:"pids_limit"`
}

// SecuritySection configures syscall filtering, DNS, audit logging, and
// the injected system prompt.
type SecuritySection struct {
	SeccompProfile *string `yaml:"seccomp_profile"`
	DNSServers     *string `yaml:"dns_servers"`
	AuditLog       *string `yaml:"audit_log"`
	InjectMessage  *string `yaml:"inject_message"`
}

// LoadDefault loads FileName from directory. A missing file returns
// (nil, nil); a file that exists but does not parse is a
// *sandbox.ConfigParseError.
func LoadDefault(directory string) (*Config, error) {
	path := filepath.Join(directory, FileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data, path)
}

// Load loads the config file at path. Unlike LoadDefault, a missing file
// is an error: the path was asked for explicitly.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes a project file. path is used only for error messages
// and Config.Path. An empty document yields an empty Config.
func Parse(data []byte, path string) (*Config, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	config := &Config{Path: path}
	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, &sandbox.ConfigParseError{Path: path, Err: err}
	}
	return config, nil
}

// RawOptions converts the file into a configuration layer. Keys present
// in the file become explicit settings; absent keys stay unset.
func (c *Config) RawOptions() sandbox.RawOptions {
	var options sandbox.RawOptions
	if c == nil {
		return options
	}

	setString(&options.Agent, c.Default.Agent)
	setString(&options.AllowDomains, c.Default.AllowDomains)
	setString(&options.AuthHome, c.Default.AuthHome)
	setString(&options.Image, c.Default.Image)
	setStrings(&options.Volumes, c.Default.Volumes)
	setStrings(&options.Envs, c.Default.Env)

	setString(&options.Memory, c.Resources.Memory)
	setString(&options.CPUs, c.Resources.CPUs)
	setString(&options.PidsLimit, c.Resources.PidsLimit)

	setString(&options.SeccompProfile, c.Security.SeccompProfile)
	setString(&options.DNSServers, c.Security.DNSServers)
	setString(&options.AuditLog, c.Security.AuditLog)
	setString(&options.InjectMessage, c.Security.InjectMessage)

	return options
}

func setString(target *sandbox.Setting[string], value *string) {
	if value != nil {
		*target = sandbox.Set(*value)
	}
}

func setStrings(target *sandbox.Setting[[]string], value *[]string) {
	if value != nil {
		copied := make([]string, len(*value))
		copy(copied, *value)
		*target = sandbox.Set(copied)
	}
}
