// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/yolobox/cmd/yolobox/cli"
	"github.com/bureau-foundation/yolobox/sandbox"
)

func validateCommand(env *environment) *cli.Command {
	var flags policyFlags
	var flagSet *pflag.FlagSet

	return &cli.Command{
		Name:    "validate",
		Summary: "Check that an agent run would succeed, without starting it",
		Description: `Run pre-flight checks for the policy the same flags would produce:
docker is installed and its daemon is reachable, the project config
parses, no volume matches the denylist, the seccomp profile exists,
and the auth home can be created. Nothing is created or written.

Exits 1 if any check fails.`,
		Usage: "yolobox validate [flags] [agent]",
		Flags: func() *pflag.FlagSet {
			flags = policyFlags{}
			flagSet = pflag.NewFlagSet("validate", pflag.ContinueOnError)
			flags.register(flagSet, env.defaults, false)
			return flagSet
		},
		Run: func(args []string) error {
			return runValidate(env, &flags, flagSet, args)
		},
	}
}

func runValidate(env *environment, flags *policyFlags, flagSet *pflag.FlagSet, args []string) error {
	validator := sandbox.NewValidator()

	policy, config, err := resolvePolicy(env, flags, flagSet, args)
	if err != nil {
		validator.Fail("config", err.Error())
		validator.PrintResults(env.stdout)
		return &cli.ExitError{Code: 1}
	}
	switch {
	case config != nil:
		validator.Pass("config", "loaded "+config.Path)
	default:
		validator.Pass("config", "no project config (using flags and defaults)")
	}

	validator.ValidateAll(policy, env.defaults)
	validator.PrintResults(env.stdout)
	if validator.HasErrors() {
		return &cli.ExitError{Code: 1}
	}
	return nil
}
