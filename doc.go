// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

/*
Package schematree builds render-agnostic document trees from JSON Schema.

Every field of a schema becomes a Node carrying its dotted path, nesting depth,
kind (scalar, array, object), required flag, visibility annotation and an
ordered list of descriptive metadata. Array items use the "[]" path segment.
The tree is plain data and can be encoded, rendered as markdown or turned into
an example payload.

Build tree from schema file:

	doc, err := schematree.LoadFile("schema.json")
	if err != nil {
		return err
	}

	root := schematree.BuildTree(doc)
	for _, child := range root.Children {
		fmt.Println(child.Path, child.Kind, child.Required)
	}

Build subtree with explicit path and depth, rejecting recursive schemas:

	node, err := schematree.BuildChecked(doc.Root, "spec", 1)
	if errors.Is(err, schematree.ErrCyclicSchema) {
		return err
	}

	fmt.Println(schematree.HeadingLevel(node.Depth))

Encode tree for other tools:

	data, err := schematree.EncodeTree(root, schematree.TreeFormatYAML)
	if err != nil {
		return err
	}

	os.Stdout.Write(data)

Read schema from OpenAPI 3 components:

	schema, err := schematree.LoadOpenAPIFile("openapi.yaml", "Pet")
	if err != nil {
		return err
	}

	root := schematree.Build(schema, "", 0)

Render markdown documentation:

	md, err := schematree.RenderFile("schema.json", schematree.Options{
		Title:        "Config Reference",
		TemplateName: "table",
		WrapWidth:    100,
	})
	if err != nil {
		return err
	}

	fmt.Println(md)

Generate example payload:

	yamlExample, err := schematree.EncodeExample(root, schematree.ExampleModeRequired, schematree.ExampleFormatYAML)
	if err != nil {
		return err
	}

	fmt.Println(string(yamlExample))
*/
package schematree
