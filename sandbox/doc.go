// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sandbox compiles a layered sandbox policy into a single docker
// invocation that runs an AI agent behind the container's firewall.
//
// Configuration arrives as [RawOptions] layers (command line, project
// file) whose fields are three-valued [Setting]s. [Resolve] merges them
// with a [Defaults] struct into a [Policy]: an explicit command-line value
// beats an explicit file value, which beats the default.
//
// [Compiler.Compile] turns a Policy into an [Invocation]. It first checks
// every requested volume against a fixed denylist ([ValidateVolumes]) and
// aborts before doing anything else if one matches. It then assembles the
// arguments in a fixed order: seccomp ([ResolveSeccomp]), capabilities,
// hardening flags, resource limits ([NormalizeResources]), DNS pinning
// ([NormalizeDNS]), audit level ([NormalizeAudit]), the firewall trust list
// ([BuildTrustList]), identity, mounts, image, and agent arguments.
// Non-fatal findings are collected as [Warning]s on the invocation.
//
// The embedded default seccomp profile is written to a temp file that the
// invocation holds as a resource. [Sandbox.Run] spawns the runtime with the
// caller's standard streams, waits, releases resources, and reports a
// non-zero exit as [ExitError].
//
// [Validator] performs side-effect-free pre-flight checks for the
// "validate" command.
//
// The package decides what isolation to request; enforcing it is the
// container runtime's job.
package sandbox
