// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package projectconfig loads the per-project .yolobox.yaml file.
//
// The file has three sections, each optional:
//
//	default:
//	  agent: claude
//	  allow_domains: "github.com pypi.org"
//	  volumes: ["~/.ssh:/home/agent/.ssh:ro"]
//	  env: ["GIT_AUTHOR_NAME=me"]
//	  auth_home: ~/.config/yolobox
//	  image: ghcr.io/bureau-foundation/yolobox:latest
//	resources:
//	  memory: 8g
//	  cpus: "6"
//	  pids_limit: "512"
//	security:
//	  seccomp_profile: none
//	  dns_servers: "1.1.1.1"
//	  audit_log: basic
//	  inject_message: none
//
// Unknown keys are rejected. Every value is a pointer so a key that is
// present (even with an empty value) is distinguishable from an absent
// one; [Config.RawOptions] turns present keys into explicit
// [sandbox.Setting]s and leaves absent keys unset.
//
// [LoadDefault] looks only in the given directory and treats a missing
// file as "no file layer". [Load] is used for an explicit --config path,
// where a missing file is an error.
//
// This package depends only on the sandbox package.
package projectconfig
