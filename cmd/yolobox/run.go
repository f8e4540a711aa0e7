// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/yolobox/lib/update"
	"github.com/bureau-foundation/yolobox/lib/version"
	"github.com/bureau-foundation/yolobox/sandbox"
)

// noticeTimeout bounds the passive release check so a slow network
// never delays the agent noticeably.
const noticeTimeout = 2 * time.Second

func runAgent(env *environment, flags *policyFlags, flagSet *pflag.FlagSet, args []string) error {
	logger := env.newLogger(flags.verbose)

	policy, config, err := resolvePolicy(env, flags, flagSet, args)
	if err != nil {
		return err
	}
	if config != nil {
		logger.Debug("loaded project config", "path", config.Path)
	}

	projectDir, err := env.projectDir()
	if err != nil {
		return fmt.Errorf("determining project directory: %w", err)
	}

	compiler := sandbox.NewCompiler(sandbox.CompilerConfig{
		Defaults: env.defaults,
		Identity: env.identity,
		WorkDir:  projectDir,
		TempDir:  env.tempDir,
		Logger:   logger,
	})
	invocation, err := compiler.Compile(policy)
	if err != nil {
		return err
	}

	for _, warning := range invocation.Warnings {
		env.console.Warn("%s", warning.Message)
	}

	if policy.DryRun {
		defer invocation.Close()
		logger.Debug("dry run", "shell_command", invocation.ShellCommandLine())
		fmt.Fprintln(env.stdout, invocation.CommandLine())
		return nil
	}

	for _, volume := range policy.Volumes {
		env.console.Status("Mounting volume: %s", volume)
	}
	env.console.Status("Mounting auth home: %s -> %s", invocation.AuthHome, env.defaults.ContainerAuthHome)

	printUpdateNotice(env)

	sandboxRunner, err := sandbox.New(sandbox.Config{
		Invocation: invocation,
		Stdin:      env.stdin,
		Stdout:     env.stdout,
		Stderr:     env.stderr,
		Logger:     logger,
	})
	if err != nil {
		invocation.Close()
		return err
	}

	env.console.Status("Starting secure container...")
	if err := sandboxRunner.Run(env.ctx); err != nil {
		if _, ok := sandbox.IsExitError(err); ok {
			env.console.Error("Container exited with an error.")
		}
		return err
	}
	return nil
}

// printUpdateNotice prints a one-line notice when a newer release
// exists. It never fails the run.
func printUpdateNotice(env *environment) {
	if update.Disabled(env.getenv) || version.IsDevelopment() {
		return
	}
	cachePath, err := update.DefaultCachePath()
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(env.ctx, noticeTimeout)
	defer cancel()

	notifier := &update.Notifier{
		Source:    env.releases,
		CachePath: cachePath,
		Current:   version.Version,
	}
	if latest, newer := notifier.Check(ctx); newer {
		env.console.Notice("yolobox %s is available (you have %s). Run 'yolobox update' to upgrade.", latest, version.Short())
	}
}
