// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"fmt"
	"strings"
)

// Audit levels understood by the container entrypoint.
const (
	AuditNone    = "none"
	AuditBasic   = "basic"
	AuditVerbose = "verbose"
)

// ResourceLimits are the raw memory, CPU, and process-count settings.
type ResourceLimits struct {
	Memory    string
	CPUs      string
	PidsLimit string
}

// NormalizeResources converts resource settings into docker flags. A
// case-insensitive "unlimited" omits the flag and produces a warning; an
// empty value omits it silently. Anything else is passed through
// verbatim and left for docker to validate.
func NormalizeResources(limits ResourceLimits) ([]string, []Warning) {
	var args []string
	var warnings []Warning

	entries := []struct {
		value string
		flag  string
		code  WarningCode
		what  string
	}{
		{limits.Memory, "--memory", WarnUnlimitedMemory, "memory"},
		{limits.CPUs, "--cpus", WarnUnlimitedCPUs, "CPU"},
		{limits.PidsLimit, "--pids-limit", WarnUnlimitedPids, "process count"},
	}

	for _, entry := range entries {
		value := strings.TrimSpace(entry.value)
		switch {
		case value == "":
			continue
		case strings.EqualFold(value, SentinelUnlimited):
			warnings = append(warnings, Warning{
				Code:    entry.code,
				Message: fmt.Sprintf("%s limit is unlimited: the container can use all host %s", entry.what, entry.what),
			})
		default:
			args = append(args, entry.flag, value)
		}
	}

	return args, warnings
}

// NormalizeDNS pins container DNS to the given whitespace-separated
// servers: one --dns flag per server for docker's resolver, plus a
// DNS_SERVERS variable for the in-container firewall. "any" omits both
// and produces a warning.
func NormalizeDNS(servers string) ([]string, *Warning) {
	trimmed := strings.TrimSpace(servers)
	if strings.EqualFold(trimmed, SentinelAnyDNS) {
		return nil, &Warning{
			Code:    WarnAnyDNS,
			Message: "DNS is unrestricted: the container may query any DNS server, which can be used to exfiltrate data",
		}
	}

	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return nil, nil
	}

	args := make([]string, 0, 2*len(fields)+2)
	for _, server := range fields {
		args = append(args, "--dns", server)
	}
	args = append(args, "-e", "DNS_SERVERS="+strings.Join(fields, " "))
	return args, nil
}

// NormalizeAudit maps the audit-log setting onto the entrypoint's
// AUDIT_LOG variable. Unknown levels are not fatal: they produce a
// warning and fall back to "none", which emits no flag.
func NormalizeAudit(level string) (string, []string, *Warning) {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case AuditNone, "":
		return AuditNone, nil, nil
	case AuditBasic, AuditVerbose:
		return normalized, []string{"-e", "AUDIT_LOG=" + normalized}, nil
	default:
		return AuditNone, nil, &Warning{
			Code: WarnUnknownAuditLevel,
			Message: fmt.Sprintf("unknown audit log level %q (expected %s, %s, or %s); using %s",
				level, AuditNone, AuditBasic, AuditVerbose, AuditNone),
		}
	}
}
