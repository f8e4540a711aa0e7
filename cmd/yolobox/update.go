// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/yolobox/cmd/yolobox/cli"
	"github.com/bureau-foundation/yolobox/lib/update"
	"github.com/bureau-foundation/yolobox/lib/version"
)

type updateFlags struct {
	yes        bool
	imageOnly  bool
	binaryOnly bool
	image      string
	verbose    bool
}

func updateCommand(env *environment) *cli.Command {
	var flags updateFlags

	return &cli.Command{
		Name:    "update",
		Summary: "Update yolobox and pull the latest container image",
		Description: `Check GitHub for a newer yolobox release and install it, then pull the
latest container image.

A Homebrew-managed binary is never replaced; the brew command to run
is printed instead.`,
		Usage: "yolobox update [--yes] [--image-only | --binary-only]",
		Flags: func() *pflag.FlagSet {
			flags = updateFlags{}
			flagSet := pflag.NewFlagSet("update", pflag.ContinueOnError)
			flagSet.BoolVarP(&flags.yes, "yes", "y", false, "install without asking for confirmation")
			flagSet.BoolVar(&flags.imageOnly, "image-only", false, "only pull the container image")
			flagSet.BoolVar(&flags.binaryOnly, "binary-only", false, "only update the yolobox binary")
			flagSet.StringVar(&flags.image, "image", env.defaults.Image, "container image to pull")
			flagSet.BoolVar(&flags.verbose, "verbose", false, "enable debug logging")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected arguments %q", strings.Join(args, " "))
			}
			return runUpdate(env, flags)
		},
	}
}

func runUpdate(env *environment, flags updateFlags) error {
	if flags.imageOnly && flags.binaryOnly {
		return errors.New("--image-only and --binary-only are mutually exclusive")
	}
	logger := env.newLogger(flags.verbose)
	if cachePath, err := update.DefaultCachePath(); err == nil {
		if state, err := update.DescribeCache(cachePath); err == nil {
			logger.Debug("cached release check", "path", cachePath, "state", state)
		}
	}

	if !flags.imageOnly {
		if err := updateBinary(env, flags.yes); err != nil {
			return err
		}
	}
	if flags.binaryOnly {
		return nil
	}

	env.console.Status("Pulling latest Docker image: %s", flags.image)
	logger.Debug("pulling image", "runtime", env.defaults.Runtime, "image", flags.image)
	if err := update.PullImage(env.ctx, env.defaults.Runtime, flags.image, env.stdout, env.stderr); err != nil {
		return err
	}
	env.console.Status("Docker image updated.")
	return nil
}

func updateBinary(env *environment, skipConfirm bool) error {
	env.console.Status("Current version: %s", version.Short())
	env.console.Status("Checking for latest release...")

	latest, err := env.releases.LatestVersion(env.ctx)
	if err != nil {
		return fmt.Errorf("checking for updates: %w", err)
	}
	if !version.Newer(latest, version.Version) {
		env.console.Status("Already up to date (latest release is %s).", latest)
		return nil
	}

	executable, err := env.executable()
	if err != nil {
		return fmt.Errorf("locating the running binary: %w", err)
	}
	if update.DetectInstallMethod(executable) == update.InstallHomebrew {
		env.console.Status("yolobox %s is available. This copy is managed by Homebrew; run: %s",
			latest, update.HomebrewUpgradeCommand)
		return nil
	}

	if !skipConfirm && !confirm(env, fmt.Sprintf("Update %s from %s to %s? [y/N] ", executable, version.Short(), latest)) {
		env.console.Status("Binary update skipped.")
		return nil
	}

	binary, err := env.releases.DownloadBinary(env.ctx, latest)
	if err != nil {
		return fmt.Errorf("downloading yolobox %s: %w", latest, err)
	}
	env.console.Status("Downloaded yolobox %s (%s).", latest, humanize.Bytes(uint64(len(binary))))

	if err := update.ReplaceExecutable(executable, binary); err != nil {
		return err
	}
	env.console.Status("Updated %s to %s.", executable, latest)
	return nil
}

// confirm asks a yes/no question on stderr and reads the answer from
// stdin. Anything but "y" or "yes" is a no.
func confirm(env *environment, prompt string) bool {
	fmt.Fprint(env.stderr, prompt)
	answer, err := bufio.NewReader(env.stdin).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
