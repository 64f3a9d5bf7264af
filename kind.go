// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import "fmt"

// Kind is the structural class of a tree node.
type Kind uint8

const (
	// KindObject is a schema with type "object" or without type.
	KindObject Kind = iota
	// KindArray is a schema with type "array".
	KindArray
	// KindScalar is any other schema.
	KindScalar
)

// kindNames maps kinds to their text form.
var kindNames = [...]string{
	KindObject: "object",
	KindArray:  "array",
	KindScalar: "scalar",
}

// Classify resolves node kind from schema "type" keyword.
//
// The primary type is the first non-null entry of "type", so ["array", "null"]
// is an array; a list made of "null" only is a scalar. Names match exactly:
// "Array" or " array " is some unknown scalar type.
func Classify(schema *Schema) Kind {
	if schema == nil || schema.Type == nil {
		return KindObject
	}

	switch primaryType(schema.Type) {
	case "array":
		return KindArray
	case "object":
		return KindObject
	default:
		return KindScalar
	}
}

// primaryType returns first non-null type name.
func primaryType(types []string) string {
	for _, name := range types {
		if name == "null" {
			continue
		}

		return name
	}

	return "null"
}

// String returns text form of kind.
func (kind Kind) String() string {
	if int(kind) < len(kindNames) {
		return kindNames[kind]
	}

	return fmt.Sprintf("Kind(%d)", kind)
}

// MarshalText implements encoding.TextMarshaler.
func (kind Kind) MarshalText() ([]byte, error) {
	if int(kind) >= len(kindNames) {
		return nil, fmt.Errorf("invalid kind %d", kind)
	}

	return []byte(kindNames[kind]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (kind *Kind) UnmarshalText(text []byte) error {
	for index, name := range kindNames {
		if name == string(text) {
			*kind = Kind(index)
			return nil
		}
	}

	return fmt.Errorf("unknown kind %q", text)
}
