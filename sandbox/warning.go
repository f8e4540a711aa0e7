// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

// WarningCode identifies the kind of a non-fatal policy warning.
type WarningCode string

const (
	WarnSeccompDisabled   WarningCode = "seccomp-disabled"
	WarnUnlimitedMemory   WarningCode = "unlimited-memory"
	WarnUnlimitedCPUs     WarningCode = "unlimited-cpus"
	WarnUnlimitedPids     WarningCode = "unlimited-pids"
	WarnAnyDNS            WarningCode = "any-dns"
	WarnUnknownAuditLevel WarningCode = "unknown-audit-level"
)

// Warning is a non-fatal condition the operator must see. Warnings never
// abort a run.
type Warning struct {
	Code    WarningCode
	Message string
}

func (w Warning) String() string {
	return w.Message
}
