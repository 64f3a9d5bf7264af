// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// visibilityExtensions lists schema extension keys read as visibility annotation.
var visibilityExtensions = []string{"visibility", "x-visibility"}

// LoadOpenAPIFile reads OpenAPI document file and converts one component schema.
func LoadOpenAPIFile(path, component string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadSchemaFile, err)
	}

	return FromOpenAPI(data, component)
}

// FromOpenAPI loads OpenAPI 3 document bytes and converts components.schemas[component].
//
// Local references are resolved by the loader. Properties come out in sorted
// name order because the OpenAPI model keeps them in a map.
func FromOpenAPI(data []byte, component string) (*Schema, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadOpenAPI, err)
	}

	component = strings.TrimSpace(component)
	if doc.Components == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownComponent, component)
	}

	ref, ok := doc.Components.Schemas[component]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownComponent, component)
	}

	converter := openAPIConverter{active: make(map[*openapi3.Schema]struct{})}
	return converter.convert(ref.Value, component)
}

// openAPIConverter converts resolved OpenAPI schemas, tracking the active branch for cycles.
type openAPIConverter struct {
	active map[*openapi3.Schema]struct{}
}

// convert maps one OpenAPI schema onto Schema.
func (converter openAPIConverter) convert(src *openapi3.Schema, path string) (*Schema, error) {
	if src == nil {
		return &Schema{}, nil
	}

	if _, seen := converter.active[src]; seen {
		return nil, &CyclicSchemaError{Path: path}
	}

	converter.active[src] = struct{}{}
	defer delete(converter.active, src)

	schema := &Schema{
		Required:   Required{Names: append([]string(nil), src.Required...)},
		Visibility: extensionVisibility(src.Extensions),
	}

	if src.Type != nil {
		schema.Type = append([]string(nil), src.Type.Slice()...)
	}

	if src.Description != "" {
		description := src.Description
		schema.Description = &description
	}

	if len(src.Enum) > 0 {
		schema.Enum = append([]any(nil), src.Enum...)
	}

	if src.Format != "" {
		format := src.Format
		schema.Format = &format
	}

	if src.Pattern != "" {
		pattern := src.Pattern
		schema.Pattern = &pattern
	}

	schema.Minimum = floatNumber(src.Min)
	schema.Maximum = floatNumber(src.Max)
	schema.MultipleOf = floatNumber(src.MultipleOf)

	if src.ExclusiveMin {
		schema.ExclusiveMinimum = true
	}

	if src.ExclusiveMax {
		schema.ExclusiveMaximum = true
	}

	schema.MaxItems = uintNumber(src.MaxItems)
	schema.MinItems = nonZeroUintNumber(src.MinItems)
	schema.MaxProperties = uintNumber(src.MaxProps)
	schema.MinProperties = nonZeroUintNumber(src.MinProps)
	schema.MaxLength = uintNumber(src.MaxLength)
	schema.MinLength = nonZeroUintNumber(src.MinLength)

	if src.Default != nil {
		schema.Default, schema.HasDefault = src.Default, true
	}

	if src.Example != nil {
		schema.Example, schema.HasExample = src.Example, true
	}

	if src.UniqueItems {
		unique := true
		schema.UniqueItems = &unique
	}

	if src.Items != nil && src.Items.Value != nil {
		items, err := converter.convert(src.Items.Value, path+arrayItemSegment)
		if err != nil {
			return nil, err
		}

		schema.Items = items
	}

	if len(src.Properties) > 0 {
		names := make([]string, 0, len(src.Properties))
		for name := range src.Properties {
			names = append(names, name)
		}

		sort.Strings(names)

		schema.Properties = make([]Property, 0, len(names))
		for _, name := range names {
			ref := src.Properties[name]
			if ref == nil || ref.Value == nil {
				schema.Properties = append(schema.Properties, Property{Name: name, Schema: &Schema{}})
				continue
			}

			property, err := converter.convert(ref.Value, propertyPath(path, name))
			if err != nil {
				return nil, err
			}

			schema.Properties = append(schema.Properties, Property{Name: name, Schema: property})
		}
	}

	return schema, nil
}

// extensionVisibility reads visibility annotation from schema extensions.
func extensionVisibility(extensions map[string]any) Visibility {
	for _, key := range visibilityExtensions {
		if value, ok := extensions[key].(string); ok {
			if visibility := ParseVisibility(value); visibility != VisibilityNone {
				return visibility
			}
		}
	}

	return VisibilityNone
}

// floatNumber converts optional float bound into number literal.
func floatNumber(value *float64) *json.Number {
	if value == nil {
		return nil
	}

	number := json.Number(strconv.FormatFloat(*value, 'g', -1, 64))
	return &number
}

// uintNumber converts optional unsigned bound into number literal.
func uintNumber(value *uint64) *json.Number {
	if value == nil {
		return nil
	}

	number := json.Number(strconv.FormatUint(*value, 10))
	return &number
}

// nonZeroUintNumber converts unsigned lower bound, treating zero as absent.
func nonZeroUintNumber(value uint64) *json.Number {
	if value == 0 {
		return nil
	}

	return uintNumber(&value)
}
