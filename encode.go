// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"bytes"
	"fmt"
	"strings"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

const (
	// TreeFormatJSON encodes document tree as indented JSON.
	TreeFormatJSON TreeFormat = "json"
	// TreeFormatYAML encodes document tree as YAML.
	TreeFormatYAML TreeFormat = "yaml"
)

// TreeFormat selects document tree encoding.
type TreeFormat string

// EncodeTree serializes document tree in selected format.
func EncodeTree(node Node, format TreeFormat) ([]byte, error) {
	switch TreeFormat(strings.ToLower(strings.TrimSpace(string(format)))) {
	case TreeFormatJSON, "":
		data, err := marshalIndentedJSON(node)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodeTree, err)
		}

		return data, nil
	case TreeFormatYAML:
		var out bytes.Buffer
		encoder := yaml.NewEncoder(&out)
		encoder.SetIndent(2)

		if err := encoder.Encode(node); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodeTree, err)
		}

		if err := encoder.Close(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodeTree, err)
		}

		return out.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownTreeFormat, format)
	}
}

// marshalIndentedJSON serializes value as two-space indented JSON without HTML escaping.
func marshalIndentedJSON(value any) ([]byte, error) {
	var out bytes.Buffer
	encoder := gojson.NewEncoder(&out)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(value); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}
