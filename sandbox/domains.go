// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import "strings"

// BuildTrustList returns the space-separated list of outbound domains
// the container firewall should permit. The agent's mandatory domains
// are added unless the list already mentions the agent's presence
// marker.
//
// The presence test is a raw substring check against the whole list, so
// "notanthropic.com" counts as containing "anthropic.com".
func BuildTrustList(allowDomains string, agent string, agents map[string]AgentProfile) string {
	domains := strings.TrimSpace(allowDomains)

	profile, ok := agents[agent]
	if !ok || profile.MandatoryDomains == "" {
		return domains
	}

	if domains == "" {
		return profile.MandatoryDomains
	}

	marker := profile.PresenceMarker
	if marker == "" {
		marker = profile.MandatoryDomains
	}
	if strings.Contains(domains, marker) {
		return domains
	}
	return domains + " " + profile.MandatoryDomains
}
