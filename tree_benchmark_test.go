// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"os"
	"path/filepath"
	"testing"
)

// BenchmarkParse measures ordered schema decoding cost.
func BenchmarkParse(b *testing.B) {
	schemaBytes := readBenchmarkFile(b, filepath.Join("testdata", "config.schema.json"))

	b.ReportAllocs()
	b.SetBytes(int64(len(schemaBytes)))

	for i := 0; i < b.N; i++ {
		if _, err := Parse(schemaBytes); err != nil {
			b.Fatalf("Parse: %v", err)
		}
	}
}

// BenchmarkBuild measures tree construction from decoded schema.
func BenchmarkBuild(b *testing.B) {
	doc, err := Parse(readBenchmarkFile(b, filepath.Join("testdata", "config.schema.json")))
	if err != nil {
		b.Fatalf("Parse: %v", err)
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Build(doc.Root, "", 0)
	}
}

// BenchmarkBuildChecked measures tree construction with cycle detection.
func BenchmarkBuildChecked(b *testing.B) {
	doc, err := Parse(readBenchmarkFile(b, filepath.Join("testdata", "config.schema.json")))
	if err != nil {
		b.Fatalf("Parse: %v", err)
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := BuildChecked(doc.Root, "", 0); err != nil {
			b.Fatalf("BuildChecked: %v", err)
		}
	}
}

// BenchmarkRenderListTemplate measures full in-memory render flow for list template.
func BenchmarkRenderListTemplate(b *testing.B) {
	benchmarkRenderTemplate(b, "list")
}

// BenchmarkRenderTableTemplate measures full in-memory render flow for table template.
func BenchmarkRenderTableTemplate(b *testing.B) {
	benchmarkRenderTemplate(b, "table")
}

// benchmarkRenderTemplate runs common in-memory benchmark for selected template.
func benchmarkRenderTemplate(b *testing.B, templateName string) {
	schemaPath := filepath.Join("testdata", "config.schema.json")
	schemaBytes := readBenchmarkFile(b, schemaPath)

	options := Options{
		SourcePath:   schemaPath,
		TemplateName: templateName,
	}

	b.ReportAllocs()
	b.SetBytes(int64(len(schemaBytes)))

	for i := 0; i < b.N; i++ {
		if _, err := Render(schemaBytes, options); err != nil {
			b.Fatalf("Render: %v", err)
		}
	}
}

// readBenchmarkFile loads benchmark fixture file and fails benchmark on read errors.
func readBenchmarkFile(b *testing.B, path string) []byte {
	b.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		b.Fatalf("read benchmark file %q: %v", path, err)
	}

	return data
}
