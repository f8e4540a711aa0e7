// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"os"
	"path/filepath"
)

// Sentinel values accepted by individual settings.
const (
	// SentinelNone disables the seccomp profile or system-prompt
	// injection, and is also the lowest audit level.
	SentinelNone = "none"

	// SentinelUnlimited removes a memory, CPU, or process-count limit.
	SentinelUnlimited = "unlimited"

	// SentinelAnyDNS lets the container use any DNS server.
	SentinelAnyDNS = "any"
)

// RawOptions is one configuration layer: the command line, the project
// file, or a caller-supplied defaults layer. Every field is a [Setting] so
// the resolver can tell an explicit choice from an absent one.
type RawOptions struct {
	Agent          Setting[string]
	Volumes        Setting[[]string]
	Envs           Setting[[]string]
	AllowDomains   Setting[string]
	AuthHome       Setting[string]
	Image          Setting[string]
	AgentArgs      Setting[[]string]
	Memory         Setting[string]
	CPUs           Setting[string]
	PidsLimit      Setting[string]
	DNSServers     Setting[string]
	AuditLog       Setting[string]
	SeccompProfile Setting[string]
	InjectMessage  Setting[string]
	DryRun         Setting[bool]
}

// AgentProfile describes how to drive a particular agent CLI inside the
// container.
type AgentProfile struct {
	// MandatoryDomains are always added to the trust list for this agent
	// (space-separated).
	MandatoryDomains string

	// PresenceMarker is the substring whose presence in the user's domain
	// list suppresses appending MandatoryDomains. Empty means the whole
	// MandatoryDomains string is used as the marker.
	PresenceMarker string

	// UnattendedArgs are passed to the agent when the user supplied no
	// pass-through arguments.
	UnattendedArgs []string

	// SystemPromptFlag is the agent flag that appends text to its system
	// prompt. Empty means the agent has no such flag and injection is
	// skipped.
	SystemPromptFlag string
}

// Defaults holds every built-in value the resolver and compiler fall back
// to. It is constructed once at startup and passed in explicitly so tests
// can substitute their own.
type Defaults struct {
	Agent         string
	Image         string
	AuthHome      string
	Memory        string
	CPUs          string
	PidsLimit     string
	DNSServers    string
	AuditLog      string
	SystemMessage string

	// Runtime is the container runtime executable.
	Runtime string

	// ContainerWorkdir is where the project directory is mounted.
	ContainerWorkdir string

	// ContainerAuthHome is where the persistent auth directory is mounted.
	ContainerAuthHome string

	// Capabilities are added back after --cap-drop=ALL.
	Capabilities []string

	// Agents maps agent names to their profiles. Agents not listed run
	// with no mandatory domains, no unattended args, and no prompt
	// injection.
	Agents map[string]AgentProfile
}

// DefaultAgent is the agent run when none is named.
const DefaultAgent = "claude"

// defaultSystemMessage is appended to the agent's system prompt unless
// the user overrides or disables it.
const defaultSystemMessage = "You are running inside a yolobox container. " +
	"The project directory is mounted at /app and is the only host directory you can change. " +
	"Outbound network access is limited to an allowlist of domains, so installs or fetches " +
	"from other hosts will fail. Ask the user to add a domain with --allow-domains instead of " +
	"trying to work around the firewall."

// DefaultDefaults returns the built-in defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		Agent:             DefaultAgent,
		Image:             "ghcr.io/bureau-foundation/yolobox:latest",
		AuthHome:          defaultAuthHome(),
		Memory:            "4g",
		CPUs:              "4",
		PidsLimit:         "256",
		DNSServers:        "8.8.8.8 8.8.4.4 1.1.1.1",
		AuditLog:          AuditNone,
		SystemMessage:     defaultSystemMessage,
		Runtime:           "docker",
		ContainerWorkdir:  "/app",
		ContainerAuthHome: "/home/agent/.config/yolobox",
		Capabilities:      []string{"NET_ADMIN", "SETUID", "SETGID"},
		Agents: map[string]AgentProfile{
			"claude": {
				MandatoryDomains: "api.anthropic.com anthropic.com",
				PresenceMarker:   "anthropic.com",
				UnattendedArgs:   []string{"--dangerously-skip-permissions"},
				SystemPromptFlag: "--append-system-prompt",
			},
		},
	}
}

// defaultAuthHome returns <user config dir>/yolobox, falling back to
// ~/.config/yolobox when the config dir cannot be determined.
func defaultAuthHome() string {
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "yolobox")
	}
	return filepath.Join("~", ".config", "yolobox")
}

// Policy is the fully merged configuration for one run. It is produced by
// [Resolve] and consumed by [Compiler.Compile]; neither mutates it.
type Policy struct {
	Agent         string   `yaml:"agent"`
	Volumes       []string `yaml:"volumes"`
	Envs          []string `yaml:"env"`
	AllowDomains  string   `yaml:"allow_domains"`
	AuthHome      string   `yaml:"auth_home"`
	Image         string   `yaml:"image"`
	AgentArgs     []string `yaml:"agent_args"`
	Memory        string   `yaml:"memory"`
	CPUs          string   `yaml:"cpus"`
	PidsLimit     string   `yaml:"pids_limit"`
	DNSServers    string   `yaml:"dns_servers"`
	AuditLog      string   `yaml:"audit_log"`
	InjectMessage string   `yaml:"inject_message"`
	DryRun        bool     `yaml:"dry_run"`

	// SeccompProfile is a path, SentinelNone, or empty for the embedded
	// default profile.
	SeccompProfile string `yaml:"seccomp_profile"`

	// InjectMessageSet distinguishes "use the built-in message" (false)
	// from an explicit message or SentinelNone (true).
	InjectMessageSet bool `yaml:"-"`

	// Sources records which layer supplied each field, keyed by the
	// field's yaml name.
	Sources map[string]Source `yaml:"-"`
}

// Clone returns a deep copy of the policy.
func (p Policy) Clone() Policy {
	clone := p
	clone.Volumes = cloneStrings(p.Volumes)
	clone.Envs = cloneStrings(p.Envs)
	clone.AgentArgs = cloneStrings(p.AgentArgs)
	if p.Sources != nil {
		clone.Sources = make(map[string]Source, len(p.Sources))
		for key, source := range p.Sources {
			clone.Sources[key] = source
		}
	}
	return clone
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	result := make([]string, len(values))
	copy(result, values)
	return result
}
