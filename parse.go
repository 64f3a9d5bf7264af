// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Parse decodes JSON schema bytes into a Document, keeping property declaration order.
func Parse(data []byte) (Document, error) {
	value, err := decodeJSONValue(data)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrDecodeSchema, err)
	}

	return documentFromValue(value)
}

// ParseYAML decodes YAML schema bytes into a Document, keeping property declaration order.
func ParseYAML(data []byte) (Document, error) {
	value, err := decodeYAMLValue(data)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrDecodeSchema, err)
	}

	return documentFromValue(value)
}

// LoadFile reads schema file; ".yaml" and ".yml" files are decoded as YAML, others as JSON.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrReadSchemaFile, err)
	}

	if isYAMLPath(path) {
		return ParseYAML(data)
	}

	return Parse(data)
}

// isYAMLPath reports whether file extension selects YAML decoding.
func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// documentFromValue converts decoded root value into Document.
func documentFromValue(value any) (Document, error) {
	switch typed := value.(type) {
	case bool:
		return Document{Root: &Schema{Bool: &typed}}, nil
	case *orderedObject:
		root, err := schemaFromObject(typed, "")
		if err != nil {
			return Document{}, err
		}

		doc := Document{
			Root:      root,
			SchemaURI: strings.TrimSpace(asString(typed.values["$schema"])),
			ID:        strings.TrimSpace(asString(typed.values["$id"])),
		}
		doc.Draft = DetectDraft(doc.SchemaURI)
		return doc, nil
	default:
		return Document{}, ErrSchemaRootType
	}
}

// schemaFromValue converts schema-like value (object or boolean) at pointer.
func schemaFromValue(value any, pointer, keyword string) (*Schema, error) {
	switch typed := value.(type) {
	case bool:
		return &Schema{Bool: &typed}, nil
	case *orderedObject:
		return schemaFromObject(typed, pointer)
	default:
		return nil, &KeywordTypeError{Pointer: parentPointer(pointer), Keyword: keyword, Want: "schema object or boolean"}
	}
}

// schemaFromObject converts one decoded schema object, validating keyword types.
func schemaFromObject(object *orderedObject, pointer string) (*Schema, error) {
	schema := &Schema{}
	reader := keywordReader{object: object, pointer: pointer}

	var err error
	if schema.Type, err = reader.types("type"); err != nil {
		return nil, err
	}

	if schema.Description, err = reader.text("description"); err != nil {
		return nil, err
	}

	visibility, err := reader.text("visibility")
	if err != nil {
		return nil, err
	}

	if visibility != nil {
		schema.Visibility = ParseVisibility(*visibility)
	}

	if schema.Required, err = reader.required("required"); err != nil {
		return nil, err
	}

	if schema.Properties, err = reader.properties("properties"); err != nil {
		return nil, err
	}

	if raw, ok := object.get("items"); ok {
		// Tuple-form "items" (draft-04..07) has no single item schema.
		if _, isList := raw.([]any); !isList {
			if schema.Items, err = schemaFromValue(raw, pointer+"/items", "items"); err != nil {
				return nil, err
			}
		}
	}

	if schema.Enum, err = reader.list("enum"); err != nil {
		return nil, err
	}

	if schema.Format, err = reader.text("format"); err != nil {
		return nil, err
	}

	if schema.Pattern, err = reader.text("pattern"); err != nil {
		return nil, err
	}

	numbers := []struct {
		keyword string
		target  **json.Number
	}{
		{"minimum", &schema.Minimum},
		{"maximum", &schema.Maximum},
		{"multipleOf", &schema.MultipleOf},
		{"maxItems", &schema.MaxItems},
		{"minItems", &schema.MinItems},
		{"maxProperties", &schema.MaxProperties},
		{"minProperties", &schema.MinProperties},
		{"maxLength", &schema.MaxLength},
		{"minLength", &schema.MinLength},
	}
	for _, number := range numbers {
		if *number.target, err = reader.number(number.keyword); err != nil {
			return nil, err
		}
	}

	if schema.ExclusiveMinimum, err = reader.bound("exclusiveMinimum"); err != nil {
		return nil, err
	}

	if schema.ExclusiveMaximum, err = reader.bound("exclusiveMaximum"); err != nil {
		return nil, err
	}

	if schema.UniqueItems, err = reader.flag("uniqueItems"); err != nil {
		return nil, err
	}

	schema.Const, schema.HasConst = reader.literal("const")
	schema.Default, schema.HasDefault = reader.literal("default")
	schema.Example, schema.HasExample = reader.literal("example")
	if schema.Examples, err = reader.list("examples"); err != nil {
		return nil, err
	}

	return schema, nil
}

// keywordReader extracts typed keyword values from one schema object.
type keywordReader struct {
	object  *orderedObject
	pointer string
}

// mismatch builds keyword type error for current object.
func (reader keywordReader) mismatch(keyword, want string) error {
	return &KeywordTypeError{Pointer: reader.pointer, Keyword: keyword, Want: want}
}

// text reads optional string keyword.
func (reader keywordReader) text(keyword string) (*string, error) {
	raw, ok := reader.object.get(keyword)
	if !ok || raw == nil {
		return nil, nil
	}

	value, ok := raw.(string)
	if !ok {
		return nil, reader.mismatch(keyword, "string")
	}

	return &value, nil
}

// number reads optional numeric keyword.
func (reader keywordReader) number(keyword string) (*json.Number, error) {
	raw, ok := reader.object.get(keyword)
	if !ok || raw == nil {
		return nil, nil
	}

	value, ok := raw.(json.Number)
	if !ok {
		return nil, reader.mismatch(keyword, "number")
	}

	return &value, nil
}

// bound reads exclusive bound keyword, number (2019+) or boolean (draft-04).
func (reader keywordReader) bound(keyword string) (any, error) {
	raw, ok := reader.object.get(keyword)
	if !ok || raw == nil {
		return nil, nil
	}

	switch raw.(type) {
	case json.Number, bool:
		return raw, nil
	default:
		return nil, reader.mismatch(keyword, "number or boolean")
	}
}

// flag reads optional boolean keyword.
func (reader keywordReader) flag(keyword string) (*bool, error) {
	raw, ok := reader.object.get(keyword)
	if !ok || raw == nil {
		return nil, nil
	}

	value, ok := raw.(bool)
	if !ok {
		return nil, reader.mismatch(keyword, "boolean")
	}

	return &value, nil
}

// list reads optional array keyword as plain JSON values.
func (reader keywordReader) list(keyword string) ([]any, error) {
	raw, ok := reader.object.get(keyword)
	if !ok || raw == nil {
		return nil, nil
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, reader.mismatch(keyword, "array")
	}

	return plainValue(items).([]any), nil
}

// literal reads keyword holding any JSON value; present reports an explicit null too.
func (reader keywordReader) literal(keyword string) (value any, present bool) {
	raw, ok := reader.object.get(keyword)
	if !ok {
		return nil, false
	}

	return plainValue(raw), true
}

// types reads "type" as single name or list of names.
func (reader keywordReader) types(keyword string) ([]string, error) {
	raw, ok := reader.object.get(keyword)
	if !ok || raw == nil {
		return nil, nil
	}

	switch typed := raw.(type) {
	case string:
		return []string{typed}, nil
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			name, ok := item.(string)
			if !ok {
				return nil, reader.mismatch(keyword, "string or array of strings")
			}

			out = append(out, name)
		}

		return out, nil
	default:
		return nil, reader.mismatch(keyword, "string or array of strings")
	}
}

// required reads "required" as boolean marker or property name list.
func (reader keywordReader) required(keyword string) (Required, error) {
	raw, ok := reader.object.get(keyword)
	if !ok || raw == nil {
		return Required{}, nil
	}

	switch typed := raw.(type) {
	case bool:
		return Required{All: typed}, nil
	case []any:
		names := make([]string, 0, len(typed))
		for _, item := range typed {
			name, ok := item.(string)
			if !ok {
				return Required{}, reader.mismatch(keyword, "boolean or array of strings")
			}

			names = append(names, name)
		}

		return Required{Names: names}, nil
	default:
		return Required{}, reader.mismatch(keyword, "boolean or array of strings")
	}
}

// properties reads "properties" object into ordered property list.
func (reader keywordReader) properties(keyword string) ([]Property, error) {
	raw, ok := reader.object.get(keyword)
	if !ok || raw == nil {
		return nil, nil
	}

	object, ok := raw.(*orderedObject)
	if !ok {
		return nil, reader.mismatch(keyword, "object")
	}

	out := make([]Property, 0, len(object.keys))
	base := reader.pointer + "/" + keyword
	for _, name := range object.keys {
		schema, err := schemaFromValue(object.values[name], base+"/"+encodeJSONPointerToken(name), name)
		if err != nil {
			return nil, err
		}

		out = append(out, Property{Name: name, Schema: schema})
	}

	return out, nil
}

// parentPointer strips last token from JSON pointer.
func parentPointer(pointer string) string {
	index := strings.LastIndex(pointer, "/")
	if index < 0 {
		return ""
	}

	return pointer[:index]
}

// encodeJSONPointerToken escapes one JSON pointer token.
func encodeJSONPointerToken(token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	token = strings.ReplaceAll(token, "/", "~1")
	return token
}

// asString returns string value or empty string for other types.
func asString(value any) string {
	text, _ := value.(string)
	return text
}
