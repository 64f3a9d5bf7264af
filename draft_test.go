// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import "testing"

func TestDetectDraft(t *testing.T) {
	t.Parallel()

	tests := []struct {
		uri       string
		canonical string
		supported bool
	}{
		{uri: "https://json-schema.org/draft/2020-12/schema", canonical: "2020-12", supported: true},
		{uri: "https://json-schema.org/draft/2019-09/schema#", canonical: "2019-09", supported: true},
		{uri: "http://json-schema.org/draft-07/schema#", canonical: "draft-07", supported: true},
		{uri: "http://json-schema.org/draft-04/schema", canonical: "draft-04", supported: true},
		{uri: "draft-6", canonical: "draft-06", supported: true},
		{uri: "HTTP://JSON-SCHEMA.ORG/DRAFT-07/SCHEMA#", canonical: "draft-07", supported: true},
		{uri: "https://json-schema.org/draft/2099-01/schema", canonical: "2099-01", supported: false},
		{uri: "http://json-schema.org/draft-03/schema#", canonical: "draft-03", supported: false},
		{uri: "https://example.com/custom", canonical: "", supported: false},
		{uri: "", canonical: "", supported: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.uri, func(t *testing.T) {
			t.Parallel()

			info := DetectDraft(tt.uri)
			if info.Canonical != tt.canonical || info.Supported != tt.supported {
				t.Fatalf("DetectDraft(%q) = %+v, want canonical=%q supported=%v", tt.uri, info, tt.canonical, tt.supported)
			}
		})
	}
}
