// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

// Options configures markdown rendering.
type Options struct {
	// Title is the document title; "schema reference" when empty.
	Title string `json:"title,omitempty"`

	// SourcePath is shown as schema source; "(memory)" when empty.
	SourcePath string `json:"source_path,omitempty"`

	// TemplateName selects one built-in template.
	//
	// Supported values:
	//
	//  - `list`
	//  - `table`
	TemplateName string `json:"template_name,omitempty"`

	// TemplateText is custom Go text/template source; overrides TemplateName.
	TemplateText string `json:"template_text,omitempty"`

	// ListMarker is the unordered list marker used in normalized descriptions.
	//
	// Supported values:
	//
	//  - `-`
	//  - `*`
	ListMarker string `json:"list_marker,omitempty"`

	// WrapWidth wraps plain description paragraphs; 80 when zero or negative.
	WrapWidth int `json:"wrap_width,omitempty"`

	// ShowRootDetails renders root object metadata and description, hidden by default.
	ShowRootDetails bool `json:"show_root_details,omitempty"`

	// ExampleMode embeds example document when set, see ExampleModeAll and ExampleModeRequired.
	ExampleMode ExampleMode `json:"example_mode,omitempty"`

	// ExampleFormat selects embedded example encoding; json when empty.
	ExampleFormat ExampleFormat `json:"example_format,omitempty"`
}
