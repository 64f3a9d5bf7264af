// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"fmt"
	"strings"
)

// buildRenderView prepares data for markdown template rendering.
func buildRenderView(root Node, doc Document, opt Options) (renderView, error) {
	title := strings.TrimSpace(opt.Title)
	if title == "" {
		title = defaultTitle
	}

	wrapWidth := normalizeWrapWidth(opt.WrapWidth)
	listMarker := normalizeListMarker(opt.ListMarker)

	sourcePath := strings.TrimSpace(opt.SourcePath)
	if sourcePath == "" {
		sourcePath = "(memory)"
	}

	view := renderView{
		Title:              sanitizeText(title),
		SourceSchema:       escapeInline(sourcePath),
		SchemaID:           escapeInline(orNone(doc.ID)),
		SchemaDraft:        escapeInline(orNone(doc.SchemaURI)),
		SchemaDraftSupport: draftSupportText(doc.Draft),
		ListMarker:         listMarker,
	}

	isRoot := true
	err := root.Walk(func(node Node) error {
		field := fieldViewFor(node, wrapWidth, listMarker)
		if isRoot {
			isRoot = false
			if node.Kind == KindObject && !opt.ShowRootDetails {
				field.Description = ""
				field.Attributes = nil
			}

			view.Root = field
			return nil
		}

		view.Fields = append(view.Fields, field)
		return nil
	})
	if err != nil {
		return renderView{}, err
	}

	if opt.ExampleMode != "" {
		example, err := exampleBlock(root, opt.ExampleMode, opt.ExampleFormat)
		if err != nil {
			return renderView{}, err
		}

		view.Example = example
	}

	return view, nil
}

// fieldViewFor converts one tree node into template section data.
func fieldViewFor(node Node, wrapWidth int, listMarker string) fieldView {
	level := HeadingLevel(node.Depth)
	heading := node.Path
	if heading == "" {
		heading = "Root"
	}

	return fieldView{
		Heading:     escapeInline(heading),
		HeadingMark: strings.Repeat("#", level),
		Name:        escapeInline(node.Name),
		Path:        escapeInline(node.Path),
		Depth:       node.Depth,
		Kind:        node.Kind.String(),
		Required:    node.Required,
		Visibility:  node.Visibility.String(),
		Description: formatDescriptionMarkdown(sanitizeDescription(node.Description), wrapWidth, listMarker),
		Attributes:  nodeAttributes(node),
	}
}

// exampleBlock renders embedded example document for markdown output.
func exampleBlock(root Node, mode ExampleMode, format ExampleFormat) (*exampleView, error) {
	if format == "" {
		format = ExampleFormatJSON
	}

	body, err := EncodeExample(root, mode, format)
	if err != nil {
		return nil, err
	}

	normalized, err := normalizeExampleFormat(format)
	if err != nil {
		return nil, err
	}

	return &exampleView{
		Format: string(normalized),
		Body:   strings.TrimRight(string(body), "\n"),
	}, nil
}

// draftSupportText formats draft support marker for markdown metadata block.
func draftSupportText(info DraftInfo) string {
	if !info.Supported {
		if strings.TrimSpace(info.Canonical) != "" {
			return "unknown (" + escapeInline(info.Canonical) + ")"
		}

		return "unknown"
	}

	return "supported (" + escapeInline(info.Canonical) + ")"
}

// nodeAttributes renders flat attribute list for one tree node.
func nodeAttributes(node Node) []attributeView {
	out := make([]attributeView, 0, len(node.Metadata)+3)
	out = append(out, attributeView{Name: "Kind", Value: fmt.Sprintf("`%s`", node.Kind)})

	if node.Depth > 0 {
		out = append(out, attributeView{Name: "Required", Value: yesNo(node.Required)})
	}

	if node.Visibility != VisibilityNone {
		out = append(out, attributeView{Name: "Visibility", Value: fmt.Sprintf("`%s`", node.Visibility)})
	}

	for _, meta := range node.Metadata {
		out = append(out, attributeView{Name: meta.Label, Value: metadataMarkdown(meta)})
	}

	return out
}

// metadataMarkdown renders metadata value as inline code, enum values as separate tokens.
func metadataMarkdown(meta Metadata) string {
	if values, ok := meta.Value.([]any); ok && meta.Keyword == "enum" {
		return jsonList(values)
	}

	return fmt.Sprintf("`%s`", escapeInline(meta.Text()))
}

// jsonList renders JSON values list into comma-separated inline code tokens.
func jsonList(values []any) string {
	parts := make([]string, 0, len(values))
	for _, item := range values {
		parts = append(parts, fmt.Sprintf("`%s`", escapeInline(mustJSONInline(item))))
	}

	return strings.Join(parts, ", ")
}
