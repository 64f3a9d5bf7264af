// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// orderedObject is a decoded JSON object that remembers key order.
type orderedObject struct {
	keys   []string
	values map[string]any
}

// newOrderedObject allocates empty ordered object.
func newOrderedObject() *orderedObject {
	return &orderedObject{values: make(map[string]any)}
}

// set stores value under key; repeated keys keep first position and last value.
func (object *orderedObject) set(key string, value any) {
	if _, exists := object.values[key]; !exists {
		object.keys = append(object.keys, key)
	}

	object.values[key] = value
}

// get returns value stored under key.
func (object *orderedObject) get(key string) (any, bool) {
	value, ok := object.values[key]
	return value, ok
}

// plain converts ordered object into map[string]any tree for inline JSON rendering.
func (object *orderedObject) plain() map[string]any {
	out := make(map[string]any, len(object.keys))
	for _, key := range object.keys {
		out[key] = plainValue(object.values[key])
	}

	return out
}

// plainValue replaces ordered objects with plain maps recursively.
func plainValue(value any) any {
	switch typed := value.(type) {
	case *orderedObject:
		return typed.plain()
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, plainValue(item))
		}

		return out
	default:
		return typed
	}
}

// decodeJSONValue reads one JSON document into ordered value tree.
func decodeJSONValue(data []byte) (any, error) {
	decoder := gojson.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	value, err := readJSONValue(decoder)
	if err != nil {
		return nil, err
	}

	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}

		return nil, errors.New("unexpected data after top-level value")
	}

	return value, nil
}

// readJSONValue consumes tokens of exactly one JSON value from decoder.
func readJSONValue(decoder *gojson.Decoder) (any, error) {
	token, err := decoder.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}

		return nil, err
	}

	switch typed := token.(type) {
	case gojson.Delim:
		switch typed {
		case '{':
			object := newOrderedObject()
			for decoder.More() {
				keyToken, err := decoder.Token()
				if err != nil {
					return nil, err
				}

				key, ok := keyToken.(string)
				if !ok {
					return nil, fmt.Errorf("object key must be string, got %T", keyToken)
				}

				value, err := readJSONValue(decoder)
				if err != nil {
					return nil, err
				}

				object.set(key, value)
			}

			if _, err := decoder.Token(); err != nil {
				return nil, err
			}

			return object, nil
		case '[':
			items := make([]any, 0)
			for decoder.More() {
				value, err := readJSONValue(decoder)
				if err != nil {
					return nil, err
				}

				items = append(items, value)
			}

			if _, err := decoder.Token(); err != nil {
				return nil, err
			}

			return items, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", rune(typed))
		}
	case gojson.Number:
		return json.Number(string(typed)), nil
	case float64:
		return json.Number(strconv.FormatFloat(typed, 'g', -1, 64)), nil
	case string, bool, nil:
		return typed, nil
	default:
		return nil, fmt.Errorf("unexpected token %T", token)
	}
}

// maxYAMLNodes bounds the values produced from one YAML document, aliases included.
const maxYAMLNodes = 1 << 20

// decodeYAMLValue reads one YAML document into ordered value tree.
func decodeYAMLValue(data []byte) (any, error) {
	var document yaml.Node
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, err
	}

	if document.Kind == 0 || len(document.Content) == 0 {
		return nil, errors.New("empty yaml document")
	}

	decoder := yamlDecoder{expanding: make(map[*yaml.Node]struct{})}
	return decoder.value(document.Content[0])
}

// yamlDecoder converts yaml.Node trees while guarding alias expansion.
type yamlDecoder struct {
	// expanding holds alias targets on the current recursion branch.
	expanding map[*yaml.Node]struct{}
	// visited counts converted nodes against maxYAMLNodes.
	visited int
}

// value converts one yaml.Node into ordered value tree.
func (decoder *yamlDecoder) value(node *yaml.Node) (any, error) {
	decoder.visited++
	if decoder.visited > maxYAMLNodes {
		return nil, fmt.Errorf("line %d: document expands to more than %d nodes", node.Line, maxYAMLNodes)
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}

		return decoder.value(node.Content[0])
	case yaml.AliasNode:
		if node.Alias == nil {
			return nil, fmt.Errorf("line %d: dangling alias", node.Line)
		}

		if _, ok := decoder.expanding[node.Alias]; ok {
			return nil, fmt.Errorf("line %d: alias %q refers to itself", node.Line, node.Value)
		}

		decoder.expanding[node.Alias] = struct{}{}
		defer delete(decoder.expanding, node.Alias)

		return decoder.value(node.Alias)
	case yaml.MappingNode:
		object := newOrderedObject()
		for index := 0; index+1 < len(node.Content); index += 2 {
			keyNode := node.Content[index]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key must be scalar", keyNode.Line)
			}

			value, err := decoder.value(node.Content[index+1])
			if err != nil {
				return nil, err
			}

			object.set(keyNode.Value, value)
		}

		return object, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			value, err := decoder.value(item)
			if err != nil {
				return nil, err
			}

			items = append(items, value)
		}

		return items, nil
	case yaml.ScalarNode:
		return yamlScalarValue(node)
	default:
		return nil, fmt.Errorf("line %d: unsupported yaml node kind %d", node.Line, node.Kind)
	}
}

// yamlScalarValue converts resolved YAML scalar into JSON-compatible value.
func yamlScalarValue(node *yaml.Node) (any, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var value bool
		if err := node.Decode(&value); err != nil {
			return nil, err
		}

		return value, nil
	case "!!int", "!!float":
		var value float64
		if err := node.Decode(&value); err != nil {
			return nil, err
		}

		if node.ShortTag() == "!!int" {
			if parsed, err := strconv.ParseInt(node.Value, 0, 64); err == nil {
				return json.Number(strconv.FormatInt(parsed, 10)), nil
			}
		}

		if math.IsInf(value, 0) || math.IsNaN(value) {
			return nil, fmt.Errorf("line %d: non-finite number %q", node.Line, node.Value)
		}

		return json.Number(strconv.FormatFloat(value, 'g', -1, 64)), nil
	default:
		return node.Value, nil
	}
}
