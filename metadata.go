// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"encoding/json"
	"fmt"
	"strings"

	gojson "github.com/goccy/go-json"
)

// Metadata is one labeled keyword value attached to a tree node.
type Metadata struct {
	// Keyword is the JSON Schema keyword, for example "minLength".
	Keyword string `json:"keyword" yaml:"keyword"`
	// Label is the display name, for example "Min length".
	Label string `json:"label" yaml:"label"`
	// Value is the keyword value: string, json.Number, bool, []any, or []string for type lists.
	Value any `json:"value" yaml:"value"`
}

// Text formats metadata value for display: strings verbatim, other values as inline JSON.
func (meta Metadata) Text() string {
	if text, ok := meta.Value.(string); ok {
		return text
	}

	return mustJSONInline(meta.Value)
}

// metadataField binds one keyword to its label and schema accessor.
type metadataField struct {
	keyword string
	label   string
	value   func(*Schema) (any, bool)
}

// metadataFields lists metadata keywords in canonical output order.
var metadataFields = []metadataField{
	{"type", "Type", func(s *Schema) (any, bool) {
		if s.Type == nil {
			return nil, false
		}

		return typeValue(s.Type), true
	}},
	{"enum", "Enum", func(s *Schema) (any, bool) { return s.Enum, s.Enum != nil }},
	{"format", "Format", func(s *Schema) (any, bool) { return derefString(s.Format) }},
	{"pattern", "Pattern", func(s *Schema) (any, bool) { return derefString(s.Pattern) }},
	{"minimum", "Minimum", func(s *Schema) (any, bool) { return derefNumber(s.Minimum) }},
	{"maximum", "Maximum", func(s *Schema) (any, bool) { return derefNumber(s.Maximum) }},
	{"exclusiveMinimum", "Exclusive minimum", func(s *Schema) (any, bool) { return s.ExclusiveMinimum, s.ExclusiveMinimum != nil }},
	{"exclusiveMaximum", "Exclusive maximum", func(s *Schema) (any, bool) { return s.ExclusiveMaximum, s.ExclusiveMaximum != nil }},
	{"multipleOf", "Multiple of", func(s *Schema) (any, bool) { return derefNumber(s.MultipleOf) }},
	{"maxItems", "Max items", func(s *Schema) (any, bool) { return derefNumber(s.MaxItems) }},
	{"minItems", "Min items", func(s *Schema) (any, bool) { return derefNumber(s.MinItems) }},
	{"maxProperties", "Max properties", func(s *Schema) (any, bool) { return derefNumber(s.MaxProperties) }},
	{"minProperties", "Min properties", func(s *Schema) (any, bool) { return derefNumber(s.MinProperties) }},
	{"maxLength", "Max length", func(s *Schema) (any, bool) { return derefNumber(s.MaxLength) }},
	{"minLength", "Min length", func(s *Schema) (any, bool) { return derefNumber(s.MinLength) }},
	{"uniqueItems", "Unique items", func(s *Schema) (any, bool) {
		if s.UniqueItems == nil {
			return nil, false
		}

		return *s.UniqueItems, true
	}},
}

// schemaMetadata collects present metadata keywords of one schema.
func schemaMetadata(schema *Schema) []Metadata {
	if schema == nil {
		return nil
	}

	var out []Metadata
	for _, field := range metadataFields {
		value, ok := field.value(schema)
		if !ok {
			continue
		}

		out = append(out, Metadata{Keyword: field.keyword, Label: field.label, Value: value})
	}

	return out
}

// typeValue keeps a single type name as string and a list as []string.
func typeValue(types []string) any {
	if len(types) == 1 {
		return types[0]
	}

	return append([]string(nil), types...)
}

// derefString unwraps optional string.
func derefString(value *string) (any, bool) {
	if value == nil {
		return nil, false
	}

	return *value, true
}

// derefNumber unwraps optional number keeping its source spelling.
func derefNumber(value *json.Number) (any, bool) {
	if value == nil {
		return nil, false
	}

	return *value, true
}

// mustJSONInline marshals values as single-line JSON text for display.
func mustJSONInline(value any) string {
	data, err := gojson.MarshalNoEscape(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}

	return strings.TrimSpace(string(data))
}
