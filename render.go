// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// defaultTitle is used when caller does not provide custom title.
	defaultTitle = "schema reference"
	// defaultTemplateName is used when caller does not provide template name.
	defaultTemplateName = "list"
	// defaultWrapWidth wraps plain description paragraphs at this width.
	defaultWrapWidth = 80
	// defaultListMarker is used when caller does not provide list marker style.
	defaultListMarker = "*"
)

const (
	templateListName  = "list"
	templateTableName = "table"
)

// renderView is the root view model passed to markdown templates.
type renderView struct {
	Title              string
	SourceSchema       string
	SchemaID           string
	SchemaDraft        string
	SchemaDraftSupport string
	ListMarker         string
	Root               fieldView
	Fields             []fieldView
	Example            *exampleView
}

// fieldView represents one tree node section in markdown output.
type fieldView struct {
	Heading     string
	HeadingMark string
	Name        string
	Path        string
	Depth       int
	Kind        string
	Required    bool
	Visibility  string
	Description string
	Attributes  []attributeView
}

// attributeView is a single rendered name/value metadata item.
type attributeView struct {
	Name  string
	Value string
}

// exampleView is an embedded example document block.
type exampleView struct {
	Format string
	Body   string
}

// RenderFile reads schema from file and renders markdown documentation.
func RenderFile(path string, opt Options) (string, error) {
	doc, err := LoadFile(path)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(opt.SourcePath) == "" {
		opt.SourcePath = path
	}

	return RenderDocument(doc, opt)
}

// Render converts JSON schema bytes into deterministic CommonMark document.
func Render(schemaBytes []byte, opt Options) (string, error) {
	doc, err := Parse(schemaBytes)
	if err != nil {
		return "", err
	}

	return RenderDocument(doc, opt)
}

// RenderTree renders an already built document tree.
func RenderTree(root Node, opt Options) (string, error) {
	return renderTree(root, Document{}, opt)
}

// RenderDocument builds tree for decoded document and renders it with document identification.
func RenderDocument(doc Document, opt Options) (string, error) {
	return renderTree(BuildTree(doc), doc, opt)
}

// renderTree executes selected template for tree and document identification.
func renderTree(root Node, doc Document, opt Options) (string, error) {
	view, err := buildRenderView(root, doc, opt)
	if err != nil {
		return "", err
	}

	markdownTemplate, err := resolveTemplate(opt)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if err := markdownTemplate.Execute(&out, view); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecuteMarkdownTemplate, err)
	}

	return ensureTrailingNewline(normalizeMarkdownOutput(out.String())), nil
}

// BuiltinTemplateNames returns all available built-in template names.
func BuiltinTemplateNames() []string {
	names := make([]string, 0, len(builtInTemplateFiles))
	for name := range builtInTemplateFiles {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// BuiltinTemplate returns one built-in template by name.
func BuiltinTemplate(name string) (string, error) {
	name = normalizeTemplateName(name)
	path, ok := builtInTemplateFiles[name]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownBuiltinTemplate, name)
	}

	data, err := templateFS.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadBuiltinTemplate, err)
	}

	return string(data), nil
}
