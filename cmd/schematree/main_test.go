// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunTreeWritesJSONToStdout(t *testing.T) {
	t.Parallel()

	schemaPath := writeSchemaFixture(t, "https://json-schema.org/draft/2020-12/schema")
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"tree", schemaPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	assertContains(t, stdout.String(), `"path": "settings.enabled"`)
	assertContains(t, stdout.String(), `"kind": "object"`)
	assertContains(t, stdout.String(), `"visibility": "secret"`)
	assertNotContains(t, stderr.String(), "level=WARN")
}

func TestRunTreeYAMLWithPathAndDepth(t *testing.T) {
	t.Parallel()

	schemaPath := writeSchemaFixture(t, "https://json-schema.org/draft/2020-12/schema")
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"tree", "--format", "yaml", "--path", "spec", "--depth", "1", schemaPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	assertContains(t, stdout.String(), "path: spec.settings.enabled")
	assertContains(t, stdout.String(), "depth: 3")
}

func TestRunTreeFromStdin(t *testing.T) {
	t.Parallel()

	stdin := strings.NewReader(`{"type": "array", "items": {"type": "string"}}`)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := runWithIO([]string{"tree"}, stdin, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	assertContains(t, stdout.String(), `"path": "[]"`)
	assertContains(t, stderr.String(), "schema has no $schema value")
}

func TestRunTreeFailsOnRecursiveComponent(t *testing.T) {
	t.Parallel()

	openAPIPath := writeOpenAPIFixture(t)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"tree", "--component", "Node", openAPIPath}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d, stderr: %s", code, stderr.String())
	}

	assertContains(t, stderr.String(), "cyclic schema")
}

func TestRunTreeFromOpenAPIComponent(t *testing.T) {
	t.Parallel()

	openAPIPath := writeOpenAPIFixture(t)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"tree", "--checked", "-c", "Pet", openAPIPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	assertContains(t, stdout.String(), `"path": "name"`)
	assertContains(t, stdout.String(), `"visibility": "frontend"`)
}

func TestRunSchemaToMarkdownWritesMarkdownToStdout(t *testing.T) {
	t.Parallel()

	schemaPath := writeSchemaFixture(t, "https://json-schema.org/draft/2020-12/schema")
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"schema2md", schemaPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	assertContains(t, stdout.String(), "# schema reference")
	assertContains(t, stdout.String(), "### settings.enabled")
	assertNotContains(t, stdout.String(), "Service configuration.")
}

func TestRunSchemaToMarkdownRootDetails(t *testing.T) {
	t.Parallel()

	schemaPath := writeSchemaFixture(t, "https://json-schema.org/draft/2020-12/schema")
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"schema2md", "--root-details", schemaPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	assertContains(t, stdout.String(), "Service configuration.")
}

func TestRunSchemaToMarkdownTemplateTable(t *testing.T) {
	t.Parallel()

	schemaPath := writeSchemaFixture(t, "https://json-schema.org/draft/2020-12/schema")
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"schema2md", "--template", "table", schemaPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	assertContains(t, stdout.String(), "| Attribute | Value |")
}

func TestRunSchemaToMarkdownFromYAMLFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "schema.yaml")
	body := "$schema: http://json-schema.org/draft-07/schema#\ntype: object\nproperties:\n  zeta:\n    type: string\n  alpha:\n    type: integer\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write yaml fixture: %v", err)
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"schema2md", path}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	rendered := stdout.String()
	if strings.Index(rendered, "## zeta") > strings.Index(rendered, "## alpha") {
		t.Fatalf("YAML declaration order lost:\n%s", rendered)
	}
}

func TestRunTreeDecodesYAMLByFileExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	valid := filepath.Join(dir, "schema.YML")
	if err := os.WriteFile(valid, []byte("properties:\n  port:\n    type: integer\n"), 0o600); err != nil {
		t.Fatalf("write yaml fixture: %v", err)
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	if code := run([]string{"tree", valid}, &stdout, &stderr); code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	assertContains(t, stdout.String(), `"path": "port"`)

	recursive := filepath.Join(dir, "recursive.yaml")
	if err := os.WriteFile(recursive, []byte("properties: &p\n  a:\n    properties: *p\n"), 0o600); err != nil {
		t.Fatalf("write yaml fixture: %v", err)
	}

	stdout.Reset()
	stderr.Reset()
	if code := run([]string{"tree", recursive}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}

	assertContains(t, stderr.String(), "decode schema")
}

func TestRunSchemaToMarkdownWritesMarkdownToOutputFile(t *testing.T) {
	t.Parallel()

	schemaPath := writeSchemaFixture(t, "https://json-schema.org/draft/2020-12/schema")
	outputPath := filepath.Join(t.TempDir(), "schema.md")

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"schema2md", "--title", "Schema Model", schemaPath, outputPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	if stdout.Len() != 0 {
		t.Fatalf("stdout should be empty when output path is provided, got: %s", stdout.String())
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("read output file: %v", err)
	}

	assertContains(t, string(content), "# Schema Model")
}

func TestRunSchemaToMarkdownWithTemplateFile(t *testing.T) {
	t.Parallel()

	schemaPath := writeSchemaFixture(t, "https://json-schema.org/draft/2020-12/schema")
	templatePath := filepath.Join(t.TempDir(), "custom.gotmpl")
	if err := os.WriteFile(templatePath, []byte("{{ range .Fields }}{{ .Path }};{{ end }}"), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"schema2md", "--template-file", templatePath, schemaPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	assertContains(t, stdout.String(), "name;token;settings;settings.enabled;settings.note;")
}

func TestRunSchemaToMarkdownEmbedsExampleWithModeAndFormat(t *testing.T) {
	t.Parallel()

	schemaPath := writeSchemaFixture(t, "https://json-schema.org/draft/2020-12/schema")
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"schema2md", "--mode", "required", "--format", "yaml", schemaPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	rendered := stdout.String()
	assertContains(t, rendered, "## Example yaml document")
	assertContains(t, rendered, "```yaml")
	assertContains(t, rendered, "enabled: false")
	assertNotContains(t, rendered, "note: <string>")
}

func TestRunExampleWritesDefaultAllToStdout(t *testing.T) {
	t.Parallel()

	schemaPath := writeSchemaFixture(t, "https://json-schema.org/draft/2020-12/schema")
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"example", schemaPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	assertContains(t, stdout.String(), `"mode": "safe"`)
	assertContains(t, stdout.String(), `"note": "<string>"`)
}

func TestRunExampleYAMLRequiredToOutputFile(t *testing.T) {
	t.Parallel()

	schemaPath := writeSchemaFixture(t, "https://json-schema.org/draft/2020-12/schema")
	outputPath := filepath.Join(t.TempDir(), "config.required.yaml")

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"example", "-m", "required", "-F", "yaml", schemaPath, outputPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("read required yaml example: %v", err)
	}

	assertContains(t, string(content), "# Human-readable service name.")
	assertContains(t, string(content), "name: <string>")
	assertContains(t, string(content), "enabled: false")
	assertNotContains(t, string(content), "mode:")
	assertNotContains(t, string(content), "note:")
}

func TestRunTemplateStdout(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"template", "-t", "table"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	assertContains(t, stdout.String(), "| Path | Kind | Required | Visibility |")
}

func TestRunVersion(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"version"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	assertContains(t, stdout.String(), "version:  dev")
}

func TestRunWarnsOnUnknownDraft(t *testing.T) {
	t.Parallel()

	schemaPath := writeSchemaFixture(t, "https://json-schema.org/draft/2099-01/schema")
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"schema2md", schemaPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	assertContains(t, stderr.String(), "level=WARN")
	assertContains(t, stderr.String(), "unsupported $schema value")
}

func TestRunVerboseLogsDebug(t *testing.T) {
	t.Parallel()

	schemaPath := writeSchemaFixture(t, "https://json-schema.org/draft/2020-12/schema")
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"--verbose", "tree", schemaPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr.String())
	}

	assertContains(t, stderr.String(), "level=DEBUG")
	assertContains(t, stderr.String(), "draft=2020-12")
}

func TestRunReturnsErrorForMissingInputFile(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"schema2md", filepath.Join(t.TempDir(), "missing.json")}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}

	assertContains(t, stderr.String(), "read schema input:")
}

func TestRunReturnsErrorForKeywordType(t *testing.T) {
	t.Parallel()

	stdin := strings.NewReader(`{"properties": {"port": {"type": 8080}}}`)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := runWithIO([]string{"tree"}, stdin, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d, stderr: %s", code, stderr.String())
	}

	assertContains(t, stderr.String(), "#/properties/port/type must be string or array of strings")
}

func TestRunReturnsErrorForEmptyStdin(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := runWithIO([]string{"example"}, strings.NewReader("  \n"), &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}

	assertContains(t, stderr.String(), "empty input")
}

func TestRunReturnsErrorForMissingCommand(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{}, &stdout, &stderr)
	if code != 2 {
		t.Fatalf("expected exit code 2, got %d, stderr: %s", code, stderr.String())
	}
}

func TestRunReturnsErrorForUnknownFormat(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"tree", "--format", "toml"}, &stdout, &stderr)
	if code != 2 {
		t.Fatalf("expected exit code 2, got %d, stderr: %s", code, stderr.String())
	}

	assertContains(t, stderr.String(), "Invalid value")
}

func TestRunHelpExitsZero(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"tree", "--help"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}

	assertContains(t, stdout.String(), "--checked")
}

func writeSchemaFixture(t *testing.T, schemaURI string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "schema.json")
	body := `{
  "$schema": "` + schemaURI + `",
  "$id": "urn:test",
  "type": "object",
  "description": "Service configuration.",
  "required": ["name", "settings"],
  "properties": {
    "name": {
      "type": "string",
      "description": "Human-readable service name."
    },
    "token": {
      "type": "string",
      "visibility": "secret"
    },
    "settings": {
      "type": "object",
      "required": ["enabled"],
      "properties": {
        "enabled": {
          "type": "boolean",
          "description": "Enables processing pipeline."
        },
        "note": {
          "type": "string"
        }
      }
    },
    "mode": {
      "type": "string",
      "enum": ["safe", "fast"]
    }
  }
}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write schema fixture: %v", err)
	}

	return path
}

func writeOpenAPIFixture(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "openapi.yaml")
	body := `openapi: 3.0.3
info:
  title: Fixture
  version: 1.0.0
paths: {}
components:
  schemas:
    Pet:
      type: object
      required: [name]
      properties:
        name:
          type: string
        tag:
          type: string
          x-visibility: frontend
    Node:
      type: object
      properties:
        next:
          $ref: "#/components/schemas/Node"
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write openapi fixture: %v", err)
	}

	return path
}

func assertContains(t *testing.T, haystack, needle string) {
	t.Helper()

	if !strings.Contains(haystack, needle) {
		t.Fatalf("missing substring %q in:\n%s", needle, haystack)
	}
}

func assertNotContains(t *testing.T, haystack, needle string) {
	t.Helper()

	if strings.Contains(haystack, needle) {
		t.Fatalf("unexpected substring %q in:\n%s", needle, haystack)
	}
}
