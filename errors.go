// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"errors"
	"fmt"
)

var (
	// ErrReadSchemaFile is returned when schema file loading fails.
	ErrReadSchemaFile = errors.New("read schema file")
	// ErrDecodeSchema is returned when schema JSON or YAML decoding fails.
	ErrDecodeSchema = errors.New("decode schema")
	// ErrSchemaRootType is returned when schema root is not object or boolean.
	ErrSchemaRootType = errors.New("schema root must be object or boolean")
	// ErrSchemaKeywordType is returned when a known keyword holds a value of the wrong JSON type.
	ErrSchemaKeywordType = errors.New("schema keyword has unexpected type")
	// ErrCyclicSchema is returned when a schema node is reachable from itself.
	ErrCyclicSchema = errors.New("cyclic schema")
	// ErrLoadOpenAPI is returned when OpenAPI document loading fails.
	ErrLoadOpenAPI = errors.New("load openapi document")
	// ErrUnknownComponent is returned when requested OpenAPI component schema does not exist.
	ErrUnknownComponent = errors.New("unknown component schema")
	// ErrUnknownTreeFormat is returned when tree encoding format is not supported.
	ErrUnknownTreeFormat = errors.New("unknown tree format")
	// ErrEncodeTree is returned when document tree encoding fails.
	ErrEncodeTree = errors.New("encode tree")
	// ErrExecuteMarkdownTemplate is returned when markdown template execution fails.
	ErrExecuteMarkdownTemplate = errors.New("execute markdown template")
	// ErrParseCustomTemplate is returned when caller supplied template text does not parse.
	ErrParseCustomTemplate = errors.New("parse custom template")
	// ErrUnknownBuiltinTemplate is returned when requested built-in template name is not registered.
	ErrUnknownBuiltinTemplate = errors.New("unknown built-in template")
	// ErrReadBuiltinTemplate is returned when built-in template file loading fails.
	ErrReadBuiltinTemplate = errors.New("read built-in template")
	// ErrParseBuiltinTemplate is returned when built-in template parsing fails.
	ErrParseBuiltinTemplate = errors.New("parse built-in template")
	// ErrUnknownExampleMode is returned when example generation mode is not supported.
	ErrUnknownExampleMode = errors.New("unknown example mode")
	// ErrUnknownExampleFormat is returned when example generation format is not supported.
	ErrUnknownExampleFormat = errors.New("unknown example format")
	// ErrEncodeExampleJSON is returned when generated example JSON encoding fails.
	ErrEncodeExampleJSON = errors.New("encode example json")
	// ErrEncodeExampleYAML is returned when generated example YAML encoding fails.
	ErrEncodeExampleYAML = errors.New("encode example yaml")
)

// KeywordTypeError reports a schema keyword whose value has the wrong JSON type.
type KeywordTypeError struct {
	// Pointer is the JSON pointer of the schema object holding the keyword.
	Pointer string
	// Keyword is the offending keyword name.
	Keyword string
	// Want describes accepted value types.
	Want string
}

// Error implements error.
func (err *KeywordTypeError) Error() string {
	return fmt.Sprintf("%s: #%s/%s must be %s", ErrSchemaKeywordType, err.Pointer, err.Keyword, err.Want)
}

// Is matches ErrSchemaKeywordType.
func (err *KeywordTypeError) Is(target error) bool {
	return target == ErrSchemaKeywordType
}

// CyclicSchemaError reports the tree path where a schema node re-entered itself.
type CyclicSchemaError struct {
	Path string
}

// Error implements error.
func (err *CyclicSchemaError) Error() string {
	if err.Path == "" {
		return ErrCyclicSchema.Error() + " at root"
	}

	return fmt.Sprintf("%s at %q", ErrCyclicSchema, err.Path)
}

// Is matches ErrCyclicSchema.
func (err *CyclicSchemaError) Is(target error) bool {
	return target == ErrCyclicSchema
}
