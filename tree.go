// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import "errors"

// arrayItemSegment is the path suffix and name of synthetic array item nodes.
const arrayItemSegment = "[]"

// Node is one field of the document tree built from a schema.
type Node struct {
	// Path locates the node from tree root: "a.b", "tags[]", "" for root.
	Path string `json:"path" yaml:"path"`
	// Name is the last path segment: property name, "[]" for array items, empty for root.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Depth is the nesting level, 0 for root.
	Depth int `json:"depth" yaml:"depth"`
	// Kind is the structural class driving traversal.
	Kind Kind `json:"kind" yaml:"kind"`
	// Required reports whether the parent schema requires this field.
	Required bool `json:"required" yaml:"required"`
	// Visibility is the recognized audience annotation.
	Visibility Visibility `json:"visibility,omitempty" yaml:"visibility,omitempty"`
	// Metadata lists present keywords in canonical order.
	Metadata []Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	// Description is the verbatim description text.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Example is the schema-provided sample value: const, default, first of
	// examples, then example. HasExample reports whether one was found.
	Example    any  `json:"example,omitempty" yaml:"example,omitempty"`
	HasExample bool `json:"hasExample,omitempty" yaml:"hasExample,omitempty"`
	// Children are object properties in declaration order or the single array item node.
	Children []Node `json:"children,omitempty" yaml:"children,omitempty"`
}

var (
	// SkipChildren can be returned from a Walk callback to skip descendants of the visited node.
	SkipChildren = errors.New("skip children")
	// StopWalk can be returned from a Walk callback to end traversal without error.
	StopWalk = errors.New("stop walk")
)

// Build converts schema into a document tree rooted at path and depth.
//
// Callers pass "" and 0 for a root tree. Build does not detect cycles: schemas
// linked into themselves recurse without bound, use BuildChecked for those.
func Build(schema *Schema, path string, depth int) Node {
	node, _ := buildNode(schema, path, depth, nil)
	return node
}

// BuildChecked is Build with cycle detection along every recursion branch.
//
// A *Schema reused by sibling branches is not a cycle; a *Schema reachable from
// itself fails with *CyclicSchemaError.
func BuildChecked(schema *Schema, path string, depth int) (Node, error) {
	return buildNode(schema, path, depth, make(map[*Schema]struct{}))
}

// BuildTree builds root tree for decoded document.
func BuildTree(doc Document) Node {
	return Build(doc.Root, "", 0)
}

// buildNode recursively builds one node; active is nil when cycle detection is off.
func buildNode(schema *Schema, path string, depth int, active map[*Schema]struct{}) (Node, error) {
	node := Node{
		Path:  path,
		Name:  lastSegment(path),
		Depth: depth,
		Kind:  Classify(schema),
	}

	if schema == nil {
		return node, nil
	}

	if active != nil {
		if _, seen := active[schema]; seen {
			return Node{}, &CyclicSchemaError{Path: path}
		}

		active[schema] = struct{}{}
		defer delete(active, schema)
	}

	node.Visibility = schema.Visibility
	node.Metadata = schemaMetadata(schema)
	node.Example, node.HasExample = schemaExample(schema)
	if schema.Description != nil {
		node.Description = *schema.Description
	}

	switch node.Kind {
	case KindArray:
		if schema.Items == nil {
			return node, nil
		}

		child, err := buildNode(schema.Items, itemPath(path), depth+1, active)
		if err != nil {
			return Node{}, err
		}

		node.Children = []Node{child}
	case KindObject:
		if len(schema.Properties) == 0 {
			return node, nil
		}

		node.Children = make([]Node, 0, len(schema.Properties))
		for _, property := range schema.Properties {
			child, err := buildNode(property.Schema, propertyPath(path, property.Name), depth+1, active)
			if err != nil {
				return Node{}, err
			}

			child.Name = property.Name
			child.Required = schema.Required.Has(property.Name)
			node.Children = append(node.Children, child)
		}
	case KindScalar:
	}

	return node, nil
}

// schemaExample picks the literal sample value a schema carries, if any.
func schemaExample(schema *Schema) (any, bool) {
	switch {
	case schema.HasConst:
		return schema.Const, true
	case schema.HasDefault:
		return schema.Default, true
	case len(schema.Examples) > 0:
		return schema.Examples[0], true
	case schema.HasExample:
		return schema.Example, true
	default:
		return nil, false
	}
}

// propertyPath joins object path with property name.
func propertyPath(base, name string) string {
	if base == "" {
		return name
	}

	return base + "." + name
}

// itemPath appends array item suffix to path.
func itemPath(base string) string {
	return base + arrayItemSegment
}

// lastSegment extracts node name from its path.
func lastSegment(path string) string {
	if path == "" {
		return ""
	}

	if len(path) >= len(arrayItemSegment) && path[len(path)-len(arrayItemSegment):] == arrayItemSegment {
		return arrayItemSegment
	}

	for index := len(path) - 1; index >= 0; index-- {
		if path[index] == '.' {
			return path[index+1:]
		}
	}

	return path
}

// HeadingLevel maps node depth to a markdown heading level between 2 and 6.
func HeadingLevel(depth int) int {
	switch {
	case depth <= 1:
		return 2
	case depth >= 5:
		return 6
	default:
		return depth + 1
	}
}

// Walk visits node and its descendants in pre-order.
//
// Returning SkipChildren from fn skips descendants of the current node;
// returning StopWalk ends traversal without error.
func (node Node) Walk(fn func(Node) error) error {
	err := node.walk(fn)
	if errors.Is(err, StopWalk) {
		return nil
	}

	return err
}

// walk is the recursive part of Walk.
func (node Node) walk(fn func(Node) error) error {
	if err := fn(node); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}

		return err
	}

	for _, child := range node.Children {
		if err := child.walk(fn); err != nil {
			return err
		}
	}

	return nil
}

// Meta returns metadata entry for keyword.
func (node Node) Meta(keyword string) (Metadata, bool) {
	for _, meta := range node.Metadata {
		if meta.Keyword == keyword {
			return meta, true
		}
	}

	return Metadata{}, false
}
