// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ExampleModeAll builds example with all declared properties.
	ExampleModeAll ExampleMode = "all"
	// ExampleModeRequired builds example with required properties only.
	ExampleModeRequired ExampleMode = "required"
)

// ExampleMode configures example generation property coverage.
type ExampleMode string

const (
	// ExampleFormatJSON encodes example payload as JSON.
	ExampleFormatJSON ExampleFormat = "json"
	// ExampleFormatYAML encodes example payload as YAML.
	ExampleFormatYAML ExampleFormat = "yaml"
)

// ExampleFormat configures output format for generated example payload.
type ExampleFormat string

// exampleScalarPlaceholders provides fallback values for scalar schema types.
var exampleScalarPlaceholders = map[string]any{
	"string":  "<string>",
	"number":  0,
	"integer": 0,
	"boolean": false,
	"null":    nil,
}

// exampleField is one generated object member kept in tree order.
type exampleField struct {
	node  Node
	value exampleValue
}

// exampleValue is a generated payload value; objects keep member order for YAML comments.
type exampleValue struct {
	scalar any
	fields []exampleField
	items  []exampleValue
	kind   Kind
}

// GenerateExampleJSON returns generated example payload encoded as pretty JSON.
func GenerateExampleJSON(schemaBytes []byte, mode ExampleMode) ([]byte, error) {
	return GenerateExample(schemaBytes, mode, ExampleFormatJSON)
}

// GenerateExampleYAML returns generated example payload encoded as YAML with description comments.
func GenerateExampleYAML(schemaBytes []byte, mode ExampleMode) ([]byte, error) {
	return GenerateExample(schemaBytes, mode, ExampleFormatYAML)
}

// GenerateExample returns generated example payload encoded in selected format.
func GenerateExample(schemaBytes []byte, mode ExampleMode, format ExampleFormat) ([]byte, error) {
	if _, err := normalizeExampleMode(mode); err != nil {
		return nil, err
	}

	if _, err := normalizeExampleFormat(format); err != nil {
		return nil, err
	}

	doc, err := Parse(schemaBytes)
	if err != nil {
		return nil, err
	}

	return EncodeExample(BuildTree(doc), mode, format)
}

// ExampleFromTree builds example payload value from document tree.
//
// A node carrying a schema sample (const, default, examples, example) uses it
// as is. Otherwise objects become map[string]any, arrays hold one item example,
// scalars take the first enum value or a placeholder for their type.
func ExampleFromTree(root Node, mode ExampleMode) (any, error) {
	mode, err := normalizeExampleMode(mode)
	if err != nil {
		return nil, err
	}

	return buildExampleValue(root, mode).plain(), nil
}

// EncodeExample builds example payload for tree and encodes it in selected format.
func EncodeExample(root Node, mode ExampleMode, format ExampleFormat) ([]byte, error) {
	mode, err := normalizeExampleMode(mode)
	if err != nil {
		return nil, err
	}

	format, err = normalizeExampleFormat(format)
	if err != nil {
		return nil, err
	}

	value := buildExampleValue(root, mode)
	switch format {
	case ExampleFormatJSON:
		data, err := marshalIndentedJSON(value.plain())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodeExampleJSON, err)
		}

		return data, nil
	case ExampleFormatYAML:
		node, err := value.yamlNode()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodeExampleYAML, err)
		}

		data, err := marshalExampleYAMLNode(node)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodeExampleYAML, err)
		}

		return data, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownExampleFormat, format)
	}
}

// normalizeExampleMode validates and normalizes caller mode value.
func normalizeExampleMode(mode ExampleMode) (ExampleMode, error) {
	normalized := ExampleMode(strings.ToLower(strings.TrimSpace(string(mode))))
	switch normalized {
	case ExampleModeAll, ExampleModeRequired:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownExampleMode, mode)
	}
}

// normalizeExampleFormat validates and normalizes caller format value.
func normalizeExampleFormat(format ExampleFormat) (ExampleFormat, error) {
	normalized := ExampleFormat(strings.ToLower(strings.TrimSpace(string(format))))
	switch normalized {
	case ExampleFormatJSON, ExampleFormatYAML:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownExampleFormat, format)
	}
}

// buildExampleValue recursively builds example value for one tree node.
func buildExampleValue(node Node, mode ExampleMode) exampleValue {
	if node.HasExample {
		return exampleValue{kind: KindScalar, scalar: node.Example}
	}

	value := exampleValue{kind: node.Kind}

	switch node.Kind {
	case KindObject:
		value.fields = make([]exampleField, 0, len(node.Children))
		for _, child := range node.Children {
			if mode == ExampleModeRequired && !child.Required {
				continue
			}

			value.fields = append(value.fields, exampleField{node: child, value: buildExampleValue(child, mode)})
		}
	case KindArray:
		value.items = make([]exampleValue, 0, 1)
		for _, child := range node.Children {
			value.items = append(value.items, buildExampleValue(child, mode))
		}
	case KindScalar:
		value.scalar = scalarExample(node)
	}

	return value
}

// scalarExample selects first enum value or type placeholder for scalar node.
func scalarExample(node Node) any {
	if meta, ok := node.Meta("enum"); ok {
		if values, ok := meta.Value.([]any); ok && len(values) > 0 {
			return values[0]
		}
	}

	meta, ok := node.Meta("type")
	if !ok {
		return nil
	}

	switch typed := meta.Value.(type) {
	case string:
		return exampleScalarPlaceholders[typed]
	case []string:
		return exampleScalarPlaceholders[primaryType(typed)]
	default:
		return nil
	}
}

// plain converts example value into JSON-compatible Go value.
func (value exampleValue) plain() any {
	switch value.kind {
	case KindObject:
		out := make(map[string]any, len(value.fields))
		for _, field := range value.fields {
			out[field.node.Name] = field.value.plain()
		}

		return out
	case KindArray:
		out := make([]any, 0, len(value.items))
		for _, item := range value.items {
			out = append(out, item.plain())
		}

		return out
	default:
		return value.scalar
	}
}

// yamlNode builds yaml.Node tree keeping tree order and description comments.
func (value exampleValue) yamlNode() (*yaml.Node, error) {
	switch value.kind {
	case KindObject:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, field := range value.fields {
			keyNode := yamlScalarNode("!!str", field.node.Name)
			keyNode.HeadComment = normalizeYAMLComment(field.node.Description)

			valueNode, err := field.value.yamlNode()
			if err != nil {
				return nil, err
			}

			node.Content = append(node.Content, keyNode, valueNode)
		}

		return node, nil
	case KindArray:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range value.items {
			itemNode, err := item.yamlNode()
			if err != nil {
				return nil, err
			}

			node.Content = append(node.Content, itemNode)
		}

		return node, nil
	default:
		return yamlNodeForValue(value.scalar)
	}
}

// marshalExampleYAMLNode serializes example payload node as YAML document.
func marshalExampleYAMLNode(node *yaml.Node) ([]byte, error) {
	document := &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{node},
	}

	var out bytes.Buffer
	encoder := yaml.NewEncoder(&out)
	encoder.SetIndent(2)

	if err := encoder.Encode(document); err != nil {
		return nil, err
	}

	if err := encoder.Close(); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// normalizeYAMLComment drops blank lines from comment body.
func normalizeYAMLComment(comment string) string {
	lines := strings.Split(normalizeLineEndings(comment), "\n")
	normalized := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			continue
		}

		normalized = append(normalized, line)
	}

	return strings.Join(normalized, "\n")
}

// yamlNodeForValue builds yaml.Node for plain JSON value; map keys are sorted.
func yamlNodeForValue(value any) (*yaml.Node, error) {
	switch typed := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range keys {
			valueNode, err := yamlNodeForValue(typed[key])
			if err != nil {
				return nil, err
			}

			node.Content = append(node.Content, yamlScalarNode("!!str", key), valueNode)
		}

		return node, nil
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range typed {
			itemNode, err := yamlNodeForValue(item)
			if err != nil {
				return nil, err
			}

			node.Content = append(node.Content, itemNode)
		}

		return node, nil
	default:
		return yamlScalarForValue(typed)
	}
}

// yamlScalarForValue builds scalar yaml.Node for JSON-compatible value.
func yamlScalarForValue(value any) (*yaml.Node, error) {
	switch typed := value.(type) {
	case nil:
		return yamlScalarNode("!!null", "null"), nil
	case bool:
		return yamlScalarNode("!!bool", strconv.FormatBool(typed)), nil
	case string:
		return yamlScalarNode("!!str", typed), nil
	case int:
		return yamlScalarNode("!!int", strconv.Itoa(typed)), nil
	case float64:
		return yamlScalarNode("!!float", strconv.FormatFloat(typed, 'g', -1, 64)), nil
	case json.Number:
		if int64Value, err := typed.Int64(); err == nil {
			return yamlScalarNode("!!int", strconv.FormatInt(int64Value, 10)), nil
		}

		float64Value, err := typed.Float64()
		if err != nil {
			return nil, err
		}

		return yamlScalarNode("!!float", strconv.FormatFloat(float64Value, 'g', -1, 64)), nil
	default:
		node := &yaml.Node{}
		if err := node.Encode(typed); err != nil {
			return nil, err
		}

		return node, nil
	}
}

// yamlScalarNode creates one scalar yaml.Node with explicit tag.
func yamlScalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   tag,
		Value: value,
	}
}
