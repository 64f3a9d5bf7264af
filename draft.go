// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"regexp"
	"strings"
)

// DraftInfo describes detected JSON Schema draft for a "$schema" value.
type DraftInfo struct {
	// Raw is the trimmed input value.
	Raw string
	// Canonical is the normalized draft name, for example "2020-12" or "draft-07".
	Canonical string
	// Supported reports whether the draft is one of the known drafts.
	Supported bool
}

// supportedDrafts lists canonical draft names accepted by DetectDraft.
var supportedDrafts = map[string]struct{}{
	"draft-04": {},
	"draft-05": {},
	"draft-06": {},
	"draft-07": {},
	"2019-09":  {},
	"2020-12":  {},
}

var (
	datedDraftPattern    = regexp.MustCompile(`(?:^|/)(?:draft/)?(\d{4}-\d{2})(?:/|$)`)
	numberedDraftPattern = regexp.MustCompile(`(?:^|/)draft-0?(\d+)(?:/|$)`)
)

// DetectDraft resolves draft name from "$schema" URI or bare draft name.
func DetectDraft(uri string) DraftInfo {
	raw := strings.TrimSpace(uri)
	info := DraftInfo{Raw: raw}
	if raw == "" {
		return info
	}

	normalized := strings.ToLower(raw)
	normalized = strings.TrimSuffix(normalized, "#")
	normalized = strings.TrimSuffix(normalized, "/")
	normalized = strings.TrimSuffix(normalized, "/schema")

	switch {
	case datedDraftPattern.MatchString(normalized):
		info.Canonical = datedDraftPattern.FindStringSubmatch(normalized)[1]
	case numberedDraftPattern.MatchString(normalized):
		number := numberedDraftPattern.FindStringSubmatch(normalized)[1]
		if len(number) == 1 {
			number = "0" + number
		}

		info.Canonical = "draft-" + number
	default:
		return info
	}

	_, info.Supported = supportedDrafts[info.Canonical]
	return info
}
