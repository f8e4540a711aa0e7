// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/yolobox/cmd/yolobox/cli"
)

// rootCommand builds the command tree. The root itself runs the agent;
// a first argument that does not name a subcommand is the agent name.
func rootCommand(env *environment) *cli.Command {
	var flags policyFlags
	var flagSet *pflag.FlagSet

	return &cli.Command{
		Name:   "yolobox",
		Output: env.stderr,
		Description: `Run an AI coding agent with its permission prompts disabled, inside a
container that can only touch the project directory and reach an
allowlist of domains.`,
		Usage: "yolobox [flags] [agent] [-- agent-args...]",
		Flags: func() *pflag.FlagSet {
			flags = policyFlags{}
			flagSet = pflag.NewFlagSet("yolobox", pflag.ContinueOnError)
			flags.register(flagSet, env.defaults, true)
			return flagSet
		},
		Run: func(args []string) error {
			return runAgent(env, &flags, flagSet, args)
		},
		Subcommands: []*cli.Command{
			validateCommand(env),
			configCommand(env),
			updateCommand(env),
			versionCommand(env),
		},
		Examples: []cli.Example{
			{
				Description: "Run claude on the current directory",
				Command:     "yolobox",
			},
			{
				Description: "Mount a read-only dataset and allow an extra domain",
				Command:     "yolobox -v ~/data:/data:ro --allow-domains \"pypi.org files.pythonhosted.org\"",
			},
			{
				Description: "Pass arguments straight to the agent",
				Command:     "yolobox claude -- --resume",
			},
			{
				Description: "Show the docker command without running it",
				Command:     "yolobox --dry-run",
			},
		},
	}
}
