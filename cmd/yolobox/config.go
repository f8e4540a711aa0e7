// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/yolobox/cmd/yolobox/cli"
	"github.com/bureau-foundation/yolobox/lib/projectconfig"
	"github.com/bureau-foundation/yolobox/sandbox"
)

func configCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:    "config",
		Summary: "Inspect the merged configuration",
		Subcommands: []*cli.Command{
			configShowCommand(env),
		},
	}
}

func configShowCommand(env *environment) *cli.Command {
	var flags policyFlags
	var flagSet *pflag.FlagSet

	return &cli.Command{
		Name:    "show",
		Summary: "Print the resolved policy and where each value came from",
		Description: `Merge the command line, the project config file, and the built-in
defaults exactly as a run would, and print the result as YAML. Each
field is annotated with the layer that supplied it: cli, file, or
default.`,
		Usage: "yolobox config show [flags] [agent] [-- agent-args...]",
		Flags: func() *pflag.FlagSet {
			flags = policyFlags{}
			flagSet = pflag.NewFlagSet("show", pflag.ContinueOnError)
			flags.register(flagSet, env.defaults, true)
			return flagSet
		},
		Run: func(args []string) error {
			policy, config, err := resolvePolicy(env, &flags, flagSet, args)
			if err != nil {
				return err
			}
			var rendered bytes.Buffer
			if err := writePolicy(&rendered, policy, config); err != nil {
				return err
			}
			if env.stdoutTerminal {
				return highlightYAML(env.stdout, rendered.String())
			}
			_, err = env.stdout.Write(rendered.Bytes())
			return err
		},
	}
}

// writePolicy renders policy as YAML with a "# <source>" comment on
// every field.
func writePolicy(w io.Writer, policy sandbox.Policy, config *projectconfig.Config) error {
	var mapping yaml.Node
	if err := mapping.Encode(policy); err != nil {
		return fmt.Errorf("encoding policy: %w", err)
	}

	if config != nil {
		mapping.HeadComment = "project config: " + config.Path
	} else {
		mapping.HeadComment = "project config: none"
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := mapping.Content[i], mapping.Content[i+1]
		source, ok := policy.Sources[key.Value]
		if !ok {
			continue
		}
		if value.Kind == yaml.ScalarNode {
			value.LineComment = string(source)
		} else {
			key.LineComment = string(source)
		}
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(&mapping); err != nil {
		return fmt.Errorf("writing policy: %w", err)
	}
	return encoder.Close()
}

// highlightYAML writes source with terminal syntax highlighting, falling
// back to plain text if the highlighter fails.
func highlightYAML(w io.Writer, source string) error {
	var highlighted bytes.Buffer
	if err := quick.Highlight(&highlighted, source, "yaml", "terminal256", "monokai"); err != nil {
		_, err = io.WriteString(w, source)
		return err
	}
	_, err := highlighted.WriteTo(w)
	return err
}
