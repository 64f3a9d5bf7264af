// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"encoding/json"
	"slices"
)

// Schema is one JSON Schema fragment reduced to the keywords the tree builder reads.
//
// Optional keywords use nil to express absence, so zero-like values such as
// minimum 0 or uniqueItems false remain visible to the builder.
type Schema struct {
	// Type holds declared type names in source order; nil when "type" is absent.
	Type []string
	// Properties holds object properties in declaration order; nil when absent.
	Properties []Property
	// Items is the array item schema; nil when absent.
	Items *Schema
	// Required lists which direct properties are required.
	Required Required
	// Description is the verbatim description text.
	Description *string
	// Visibility is the audience annotation.
	Visibility Visibility
	// Bool is set for boolean schemas (true or false).
	Bool *bool

	Enum             []any
	Format           *string
	Pattern          *string
	Minimum          *json.Number
	Maximum          *json.Number
	ExclusiveMinimum any
	ExclusiveMaximum any
	MultipleOf       *json.Number
	MaxItems         *json.Number
	MinItems         *json.Number
	MaxProperties    *json.Number
	MinProperties    *json.Number
	MaxLength        *json.Number
	MinLength        *json.Number
	UniqueItems      *bool

	// Const and Default hold literal keyword values; HasConst and HasDefault
	// tell an explicit null from an absent keyword.
	Const      any
	HasConst   bool
	Default    any
	HasDefault bool
	// Examples holds the "examples" list; Example is the OpenAPI-style
	// single "example" with HasExample marking its presence.
	Examples   []any
	Example    any
	HasExample bool
}

// Property is one named entry of an object schema.
type Property struct {
	Name   string
	Schema *Schema
}

// Required describes which direct properties of an object are mandatory.
type Required struct {
	// All marks every property as required ("required": true).
	All bool
	// Names lists required property names in source order.
	Names []string
}

// Has reports whether property name is required.
func (required Required) Has(name string) bool {
	if required.All {
		return true
	}

	return slices.Contains(required.Names, name)
}

// Visibility is the audience annotation attached to a field.
type Visibility string

const (
	// VisibilityNone means no recognized annotation is present.
	VisibilityNone Visibility = ""
	// VisibilityFrontend marks fields exposed to frontend consumers.
	VisibilityFrontend Visibility = "frontend"
	// VisibilitySecret marks sensitive fields.
	VisibilitySecret Visibility = "secret"
)

// ParseVisibility maps annotation text to a known visibility by exact match; other values yield VisibilityNone.
func ParseVisibility(value string) Visibility {
	switch Visibility(value) {
	case VisibilityFrontend:
		return VisibilityFrontend
	case VisibilitySecret:
		return VisibilitySecret
	default:
		return VisibilityNone
	}
}

// String returns annotation text or empty string for none.
func (visibility Visibility) String() string {
	return string(visibility)
}

// Property returns the named property schema.
func (schema *Schema) Property(name string) (*Schema, bool) {
	if schema == nil {
		return nil, false
	}

	for _, property := range schema.Properties {
		if property.Name == name {
			return property.Schema, true
		}
	}

	return nil, false
}

// Document is a decoded schema file with root-level identification keywords.
type Document struct {
	// Root is the top-level schema.
	Root *Schema
	// SchemaURI is the raw "$schema" value.
	SchemaURI string
	// ID is the raw "$id" value.
	ID string
	// Draft is the detected JSON Schema draft for SchemaURI.
	Draft DraftInfo
}
