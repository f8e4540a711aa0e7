// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Invocation is a compiled container runtime command plus the resources
// that must stay alive until the command has exited.
type Invocation struct {
	// Program is the runtime executable (e.g. "docker").
	Program string

	// Args are the runtime arguments; Args[0] is always the "run"
	// subcommand.
	Args []string

	// Resources are released by Close, after the child exits.
	Resources []io.Closer

	// Warnings are the non-fatal conditions found while compiling.
	Warnings []Warning

	// Seccomp is the resolved syscall-filter decision.
	Seccomp SeccompDecision

	// AuthHome is the absolute host path mounted as the persistent auth
	// directory.
	AuthHome string

	// DryRun is copied from the policy.
	DryRun bool
}

// CommandLine renders the invocation as a single space-joined command.
// Arguments are not quoted, so values containing spaces (the trusted
// domain and DNS lists, a system prompt) split into several words and the
// line cannot be pasted into a shell as is. Use ShellCommandLine for that.
func (i *Invocation) CommandLine() string {
	return strings.Join(append([]string{i.Program}, i.Args...), " ")
}

// ShellCommandLine renders the invocation with POSIX shell quoting, so
// the result reproduces Args exactly when run by sh.
func (i *Invocation) ShellCommandLine() string {
	words := make([]string, 0, len(i.Args)+1)
	words = append(words, shellQuote(i.Program))
	for _, arg := range i.Args {
		words = append(words, shellQuote(arg))
	}
	return strings.Join(words, " ")
}

// shellQuote leaves plain words alone and single-quotes everything else.
func shellQuote(word string) string {
	if word == "" {
		return "''"
	}
	plain := strings.IndexFunc(word, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return false
		case strings.ContainsRune("-_./:=,@+%", r):
			return false
		}
		return true
	}) < 0
	if plain {
		return word
	}
	return "'" + strings.ReplaceAll(word, "'", `'\''`) + "'"
}

// Close releases every held resource. Call it only after the spawned
// child has exited (or when the invocation will never be run).
func (i *Invocation) Close() error {
	var errs []error
	for _, resource := range i.Resources {
		if err := resource.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	i.Resources = nil
	return errors.Join(errs...)
}

// CompilerConfig configures a Compiler.
type CompilerConfig struct {
	// Defaults supplies container paths, capabilities, the agent table,
	// and the built-in system message.
	Defaults Defaults

	// Identity supplies AGENT_UID and AGENT_GID. Defaults to HostIdentity.
	Identity Identity

	// WorkDir is the project directory mounted into the container.
	// Defaults to the current working directory.
	WorkDir string

	// TempDir receives the materialized default seccomp profile.
	// Defaults to os.TempDir().
	TempDir string

	// Logger for compile-time events. Defaults to slog.Default().
	Logger *slog.Logger
}

// Compiler turns a Policy into an Invocation.
type Compiler struct {
	defaults Defaults
	identity Identity
	workDir  string
	tempDir  string
	logger   *slog.Logger
}

// NewCompiler creates a new Compiler.
func NewCompiler(config CompilerConfig) *Compiler {
	identity := config.Identity
	if identity == nil {
		identity = HostIdentity{}
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Compiler{
		defaults: config.Defaults,
		identity: identity,
		workDir:  config.WorkDir,
		tempDir:  config.TempDir,
		logger:   logger,
	}
}

// Compile validates the policy and assembles the docker invocation. All
// volumes are checked against the denylist before any filesystem work or
// argument building happens; a violation aborts with no partial result.
//
// Compilation has two filesystem side effects, both after validation:
// the default seccomp profile may be written to the temp directory, and
// the auth-home directory is created if missing. Both persist even when
// the invocation is only printed.
func (c *Compiler) Compile(policy Policy) (*Invocation, error) {
	if err := ValidateVolumes(policy.Volumes); err != nil {
		return nil, err
	}

	workDir := c.workDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("determining project directory: %w", err)
		}
	}
	workDir, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("resolving project directory: %w", err)
	}

	runtime := c.defaults.Runtime
	if runtime == "" {
		runtime = "docker"
	}

	invocation := &Invocation{Program: runtime, DryRun: policy.DryRun}
	builder := NewDockerBuilder()

	builder.addBase()

	seccomp, warning, err := ResolveSeccomp(policy.SeccompProfile, c.tempDir)
	if err != nil {
		return nil, err
	}
	invocation.Seccomp = seccomp
	if seccomp.Resource != nil {
		invocation.Resources = append(invocation.Resources, seccomp.Resource)
	}
	invocation.warn(c.logger, warning)
	builder.args = append(builder.args, seccomp.Args()...)

	builder.addCapabilities(c.defaults.Capabilities)
	builder.addHardening()

	resourceArgs, resourceWarnings := NormalizeResources(ResourceLimits{
		Memory:    policy.Memory,
		CPUs:      policy.CPUs,
		PidsLimit: policy.PidsLimit,
	})
	builder.args = append(builder.args, resourceArgs...)
	for i := range resourceWarnings {
		invocation.warn(c.logger, &resourceWarnings[i])
	}

	dnsArgs, warning := NormalizeDNS(policy.DNSServers)
	builder.args = append(builder.args, dnsArgs...)
	invocation.warn(c.logger, warning)

	_, auditArgs, warning := NormalizeAudit(policy.AuditLog)
	builder.args = append(builder.args, auditArgs...)
	invocation.warn(c.logger, warning)

	if trusted := BuildTrustList(policy.AllowDomains, policy.Agent, c.defaults.Agents); trusted != "" {
		builder.addEnv("TRUSTED_DOMAINS", trusted)
	}

	builder.addEnv("AGENT_UID", strconv.Itoa(c.identity.UID()))
	builder.addEnv("AGENT_GID", strconv.Itoa(c.identity.GID()))

	builder.addWorkdir(workDir, c.defaults.ContainerWorkdir)
	for _, volume := range policy.Volumes {
		c.logger.Info("mounting volume", "volume", volume)
		builder.args = append(builder.args, "-v", volume)
	}
	for _, env := range policy.Envs {
		builder.args = append(builder.args, "-e", env)
	}

	authHome, err := prepareAuthHome(policy.AuthHome)
	if err != nil {
		invocation.Close()
		return nil, err
	}
	invocation.AuthHome = authHome
	c.logger.Info("mounting auth home", "host", authHome, "container", c.defaults.ContainerAuthHome)
	builder.args = append(builder.args, "-v", authHome+":"+c.defaults.ContainerAuthHome)
	builder.addEnv("PERSISTENT_DIRS", c.defaults.ContainerAuthHome)

	builder.args = append(builder.args, policy.Image, policy.Agent)
	builder.addAgentArgs(policy, c.defaults)

	invocation.Args = builder.args
	return invocation, nil
}

// warn records a warning on the invocation and logs it.
func (i *Invocation) warn(logger *slog.Logger, warning *Warning) {
	if warning == nil {
		return
	}
	i.Warnings = append(i.Warnings, *warning)
	logger.Debug("policy warning", "code", string(warning.Code), "message", warning.Message)
}

// prepareAuthHome expands a leading "~", creates the directory if it does
// not exist, and returns its absolute, symlink-resolved path.
func prepareAuthHome(path string) (string, error) {
	if path == "" {
		return "", &FilesystemPreparationError{Op: "create auth home", Path: path, Err: errors.New("path is empty")}
	}
	expanded, err := expandHome(path)
	if err != nil {
		return "", &FilesystemPreparationError{Op: "create auth home", Path: path, Err: err}
	}
	if err := os.MkdirAll(expanded, 0o700); err != nil {
		return "", &FilesystemPreparationError{Op: "create auth home", Path: expanded, Err: err}
	}
	absolute, err := filepath.Abs(expanded)
	if err != nil {
		return "", &FilesystemPreparationError{Op: "resolve auth home", Path: expanded, Err: err}
	}
	resolved, err := filepath.EvalSymlinks(absolute)
	if err != nil {
		return "", &FilesystemPreparationError{Op: "resolve auth home", Path: absolute, Err: err}
	}
	return resolved, nil
}

// expandHome replaces a leading "~" or "~/" with the user's home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// DockerBuilder accumulates docker run arguments in their fixed order.
type DockerBuilder struct {
	args []string
}

// NewDockerBuilder creates a new builder.
func NewDockerBuilder() *DockerBuilder {
	return &DockerBuilder{args: []string{}}
}

// Args returns the accumulated arguments.
func (b *DockerBuilder) Args() []string {
	return b.args
}

// addBase adds the subcommand and the interactive/cleanup flags.
func (b *DockerBuilder) addBase() {
	b.args = append(b.args, "run", "-it", "--rm")
}

// addCapabilities drops every capability, then adds back the listed ones.
// The entrypoint needs NET_ADMIN for the firewall and SETUID/SETGID to
// drop to the agent user.
func (b *DockerBuilder) addCapabilities(capabilities []string) {
	b.args = append(b.args, "--cap-drop=ALL")
	for _, capability := range capabilities {
		b.args = append(b.args, "--cap-add="+capability)
	}
}

// addHardening prevents privilege escalation and disables IPv6, which the
// IPv4-only firewall does not filter.
func (b *DockerBuilder) addHardening() {
	b.args = append(b.args, "--security-opt", "no-new-privileges")
	b.args = append(b.args, "--sysctl", "net.ipv6.conf.all.disable_ipv6=1")
}

// addEnv adds a single -e KEY=VALUE pair.
func (b *DockerBuilder) addEnv(key, value string) {
	b.args = append(b.args, "-e", key+"="+value)
}

// addWorkdir bind-mounts the project directory and makes it the
// container's working directory.
func (b *DockerBuilder) addWorkdir(hostDir, containerDir string) {
	b.args = append(b.args, "-v", hostDir+":"+containerDir, "-w", containerDir)
}

// addAgentArgs appends either the agent's unattended args or the user's
// pass-through args, followed by the system-prompt injection.
func (b *DockerBuilder) addAgentArgs(policy Policy, defaults Defaults) {
	profile := defaults.Agents[policy.Agent]

	if len(policy.AgentArgs) == 0 {
		b.args = append(b.args, profile.UnattendedArgs...)
	} else {
		b.args = append(b.args, policy.AgentArgs...)
	}

	if profile.SystemPromptFlag == "" {
		return
	}
	if message, ok := SystemPrompt(policy, defaults); ok {
		b.args = append(b.args, profile.SystemPromptFlag, message)
	}
}

// SystemPrompt returns the text to inject into the agent's system prompt,
// or false when injection is disabled. An explicit "none" disables it,
// explicit text is used as-is, and otherwise the built-in message applies.
func SystemPrompt(policy Policy, defaults Defaults) (string, bool) {
	if policy.InjectMessageSet {
		if strings.EqualFold(strings.TrimSpace(policy.InjectMessage), SentinelNone) {
			return "", false
		}
		if policy.InjectMessage != "" {
			return policy.InjectMessage, true
		}
	}
	if defaults.SystemMessage == "" {
		return "", false
	}
	return defaults.SystemMessage, true
}
