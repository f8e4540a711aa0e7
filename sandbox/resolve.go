// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

// Resolve merges the command-line layer, the project-file layer, and the
// built-in defaults into a single Policy. For every field an Explicit CLI
// value wins over an Explicit file value, which wins over the default.
// List fields are replaced, never concatenated.
//
// Resolve has no side effects and returns an independent copy of every
// slice, so resolving the same inputs twice yields equal policies.
func Resolve(cli, file RawOptions, defaults Defaults) Policy {
	sources := make(map[string]Source, 16)
	record := func(key string, source Source) {
		sources[key] = source
	}

	var policy Policy
	var source Source

	policy.Agent, source = pick(cli.Agent, file.Agent, defaults.Agent)
	record("agent", source)

	var volumes, envs, agentArgs []string
	volumes, source = pick(cli.Volumes, file.Volumes, nil)
	policy.Volumes = cloneStrings(volumes)
	record("volumes", source)

	envs, source = pick(cli.Envs, file.Envs, nil)
	policy.Envs = cloneStrings(envs)
	record("env", source)

	policy.AllowDomains, source = pick(cli.AllowDomains, file.AllowDomains, "")
	record("allow_domains", source)

	policy.AuthHome, source = pick(cli.AuthHome, file.AuthHome, defaults.AuthHome)
	record("auth_home", source)

	policy.Image, source = pick(cli.Image, file.Image, defaults.Image)
	record("image", source)

	// Pass-through agent arguments only exist on the command line.
	agentArgs, source = pick(cli.AgentArgs, Setting[[]string]{}, nil)
	policy.AgentArgs = cloneStrings(agentArgs)
	record("agent_args", source)

	policy.Memory, source = pick(cli.Memory, file.Memory, defaults.Memory)
	record("memory", source)

	policy.CPUs, source = pick(cli.CPUs, file.CPUs, defaults.CPUs)
	record("cpus", source)

	policy.PidsLimit, source = pick(cli.PidsLimit, file.PidsLimit, defaults.PidsLimit)
	record("pids_limit", source)

	policy.DNSServers, source = pick(cli.DNSServers, file.DNSServers, defaults.DNSServers)
	record("dns_servers", source)

	policy.AuditLog, source = pick(cli.AuditLog, file.AuditLog, defaults.AuditLog)
	record("audit_log", source)

	policy.SeccompProfile, source = pick(cli.SeccompProfile, file.SeccompProfile, "")
	record("seccomp_profile", source)

	policy.InjectMessage, source = pick(cli.InjectMessage, file.InjectMessage, "")
	policy.InjectMessageSet = cli.InjectMessage.IsExplicit() || file.InjectMessage.IsExplicit()
	record("inject_message", source)

	policy.DryRun, source = pick(cli.DryRun, file.DryRun, false)
	record("dry_run", source)

	policy.Sources = sources
	return policy
}
