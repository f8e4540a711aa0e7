// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/yolobox/lib/projectconfig"
	"github.com/bureau-foundation/yolobox/sandbox"
)

// trustedDomainsEnvironment feeds --allow-domains when the flag is absent.
const trustedDomainsEnvironment = "TRUSTED_DOMAINS"

// policyFlags are the flags shared by the run, validate, and config show
// commands.
type policyFlags struct {
	volumes        []string
	envs           []string
	allowDomains   string
	authHome       string
	image          string
	memory         string
	cpus           string
	pidsLimit      string
	dnsServers     string
	auditLog       string
	seccompProfile string
	injectMessage  string
	dryRun         bool
	configPath     string
	verbose        bool
}

// register binds the policy flags to flagSet. Defaults are shown in
// help text but only Changed flags reach the resolver, so a file value
// is never overridden by a flag the user did not type.
func (f *policyFlags) register(flagSet *pflag.FlagSet, defaults sandbox.Defaults, withDryRun bool) {
	flagSet.StringArrayVarP(&f.volumes, "volume", "v", nil, "extra docker volume `host:container[:mode]` (repeatable)")
	flagSet.StringArrayVarP(&f.envs, "env", "e", nil, "extra environment variable `KEY=VALUE` (repeatable)")
	flagSet.StringVar(&f.allowDomains, "allow-domains", "", "space-separated extra domains the firewall allows (env "+trustedDomainsEnvironment+")")
	flagSet.StringVar(&f.authHome, "auth-home", defaults.AuthHome, "host directory persisted as the agent's config home")
	flagSet.StringVar(&f.image, "image", defaults.Image, "container image to run")
	flagSet.StringVar(&f.memory, "memory", defaults.Memory, "memory limit, or \"unlimited\"")
	flagSet.StringVar(&f.cpus, "cpus", defaults.CPUs, "CPU limit, or \"unlimited\"")
	flagSet.StringVar(&f.pidsLimit, "pids-limit", defaults.PidsLimit, "process count limit, or \"unlimited\"")
	flagSet.StringVar(&f.dnsServers, "dns-servers", defaults.DNSServers, "space-separated DNS servers, or \"any\"")
	flagSet.StringVar(&f.auditLog, "audit-log", defaults.AuditLog, "audit level: none, basic, or verbose")
	flagSet.StringVar(&f.seccompProfile, "seccomp-profile", "", "seccomp profile path, or \"none\" (default: built-in profile)")
	flagSet.StringVar(&f.injectMessage, "inject-message", "", "text appended to the agent's system prompt, or \"none\"")
	if withDryRun {
		flagSet.BoolVar(&f.dryRun, "dry-run", false, "print the docker command instead of running it")
	}
	flagSet.StringVar(&f.configPath, "config", "", "project config file (default: ./"+projectconfig.FileName+")")
	flagSet.BoolVar(&f.verbose, "verbose", false, "enable debug logging")
}

// rawOptions converts the parsed flags into the command-line layer.
// Only flags the user actually set are Explicit. TRUSTED_DOMAINS counts
// as an explicit --allow-domains when the flag itself is absent.
func (f *policyFlags) rawOptions(flagSet *pflag.FlagSet, getenv func(string) string) sandbox.RawOptions {
	var raw sandbox.RawOptions

	changed := func(name string) bool {
		flag := flagSet.Lookup(name)
		return flag != nil && flag.Changed
	}
	setString := func(target *sandbox.Setting[string], name, value string) {
		if changed(name) {
			*target = sandbox.Set(value)
		}
	}

	if changed("volume") {
		raw.Volumes = sandbox.Set(append([]string(nil), f.volumes...))
	}
	if changed("env") {
		raw.Envs = sandbox.Set(append([]string(nil), f.envs...))
	}

	setString(&raw.AllowDomains, "allow-domains", f.allowDomains)
	if !raw.AllowDomains.IsSet() && getenv != nil {
		if value := getenv(trustedDomainsEnvironment); value != "" {
			raw.AllowDomains = sandbox.Set(value)
		}
	}

	setString(&raw.AuthHome, "auth-home", f.authHome)
	setString(&raw.Image, "image", f.image)
	setString(&raw.Memory, "memory", f.memory)
	setString(&raw.CPUs, "cpus", f.cpus)
	setString(&raw.PidsLimit, "pids-limit", f.pidsLimit)
	setString(&raw.DNSServers, "dns-servers", f.dnsServers)
	setString(&raw.AuditLog, "audit-log", f.auditLog)
	setString(&raw.SeccompProfile, "seccomp-profile", f.seccompProfile)
	setString(&raw.InjectMessage, "inject-message", f.injectMessage)

	if changed("dry-run") {
		raw.DryRun = sandbox.Set(f.dryRun)
	}
	return raw
}

// splitPositional separates the optional agent name from pass-through
// agent arguments, which must follow "--". dashIndex is
// FlagSet.ArgsLenAtDash(): -1 when no "--" was given.
func splitPositional(args []string, dashIndex int) (agent string, agentArgs []string, err error) {
	before := args
	if dashIndex >= 0 {
		before = args[:dashIndex]
		agentArgs = append([]string{}, args[dashIndex:]...)
	}
	switch len(before) {
	case 0:
	case 1:
		agent = before[0]
	default:
		return "", nil, fmt.Errorf("unexpected arguments %q (pass agent arguments after \"--\")",
			strings.Join(before[1:], " "))
	}
	return agent, agentArgs, nil
}

// loadProjectConfig loads the --config file if given (a missing file is
// an error), otherwise .yolobox.yaml from projectDir (a missing file is
// no layer at all).
func loadProjectConfig(configPath, projectDir string) (*projectconfig.Config, error) {
	if configPath != "" {
		return projectconfig.Load(configPath)
	}
	return projectconfig.LoadDefault(projectDir)
}

// resolvePolicy builds both layers and merges them.
func resolvePolicy(env *environment, flags *policyFlags, flagSet *pflag.FlagSet, args []string) (sandbox.Policy, *projectconfig.Config, error) {
	agent, agentArgs, err := splitPositional(args, flagSet.ArgsLenAtDash())
	if err != nil {
		return sandbox.Policy{}, nil, err
	}

	cliLayer := flags.rawOptions(flagSet, env.getenv)
	if agent != "" {
		cliLayer.Agent = sandbox.Set(agent)
	}
	if agentArgs != nil {
		cliLayer.AgentArgs = sandbox.Set(agentArgs)
	}

	projectDir, err := env.projectDir()
	if err != nil {
		return sandbox.Policy{}, nil, fmt.Errorf("determining project directory: %w", err)
	}
	config, err := loadProjectConfig(flags.configPath, projectDir)
	if err != nil {
		return sandbox.Policy{}, nil, err
	}

	return sandbox.Resolve(cliLayer, config.RawOptions(), env.defaults), config, nil
}
