// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/nbrefine/internal/notebook"
	"github.com/pdiddy/nbrefine/pkg/types"
)

func sampleDocument() *types.Document {
	return &types.Document{
		Cells: []types.Cell{
			types.NewCell(types.CellMarkdown, "# Test Notebook"),
			types.NewCell(types.CellCode, "print('Hello World')"),
		},
		Metadata:      map[string]any{},
		NBFormat:      4,
		NBFormatMinor: 5,
	}
}

func TestExtractCellsFiltersRawCells(t *testing.T) {
	doc := sampleDocument()
	doc.Cells = append(doc.Cells, types.NewCell(types.CellRaw, "raw content"))

	cells := NewWriter(doc).ExtractCells()
	if len(cells) != 2 {
		t.Fatalf("got %d cells, want 2", len(cells))
	}
	for _, cell := range cells {
		if cell.Type == types.CellRaw {
			t.Errorf("raw cell leaked into extraction: %+v", cell)
		}
	}
}

func TestExtractCellsPreservesOrder(t *testing.T) {
	doc := &types.Document{
		Cells: []types.Cell{
			types.NewCell(types.CellCode, "first"),
			types.NewCell(types.CellMarkdown, "second"),
			types.NewCell(types.CellCode, "third"),
		},
		Metadata: map[string]any{},
		NBFormat: 4,
	}

	cells := NewWriter(doc).ExtractCells()
	want := []string{"first", "second", "third"}
	for i, content := range want {
		if cells[i].Content != content {
			t.Errorf("cell %d content = %q, want %q", i, cells[i].Content, content)
		}
	}
}

func TestWriteJSONFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := NewWriter(sampleDocument()).WriteJSON(path); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := `[
  {
    "type": "markdown",
    "content": "# Test Notebook"
  },
  {
    "type": "code",
    "content": "print('Hello World')"
  }
]
`
	if string(data) != want {
		t.Errorf("output file:\n%s\nwant:\n%s", data, want)
	}
}

func TestWriteJSONKeepsNonASCII(t *testing.T) {
	doc := &types.Document{
		Cells:    []types.Cell{types.NewCell(types.CellMarkdown, "# こんにちは <tag>")},
		Metadata: map[string]any{},
		NBFormat: 4,
	}

	path := filepath.Join(t.TempDir(), "out.json")
	if err := NewWriter(doc).WriteJSON(path); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "こんにちは") {
		t.Errorf("non-ASCII characters were escaped:\n%s", data)
	}
	if !strings.Contains(string(data), "<tag>") {
		t.Errorf("HTML characters were escaped:\n%s", data)
	}
}

func TestWriteJSONFailure(t *testing.T) {
	err := NewWriter(sampleDocument()).WriteJSON(filepath.Join(t.TempDir(), "missing", "out.json"))
	if !errors.Is(err, ErrWriteFailed) {
		t.Errorf("WriteJSON = %v, want ErrWriteFailed", err)
	}
}

func TestExtractToJSON(t *testing.T) {
	dir := t.TempDir()
	nbPath := filepath.Join(dir, "test.ipynb")
	content := `{
  "nbformat": 4,
  "nbformat_minor": 5,
  "metadata": {},
  "cells": [
    {"cell_type": "markdown", "metadata": {}, "source": "# Test Notebook"},
    {"cell_type": "code", "metadata": {}, "source": "print('Hello World')", "outputs": [], "execution_count": null}
  ]
}`
	if err := os.WriteFile(nbPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	outPath := filepath.Join(dir, "nested", "out.json")
	if err := ExtractToJSON(nbPath, outPath); err != nil {
		t.Fatalf("ExtractToJSON: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, snippet := range []string{`"# Test Notebook"`, `"print('Hello World')"`} {
		if !strings.Contains(string(data), snippet) {
			t.Errorf("output missing %s:\n%s", snippet, data)
		}
	}
}

func TestExtractToJSONPropagatesReadErrors(t *testing.T) {
	dir := t.TempDir()
	err := ExtractToJSON(filepath.Join(dir, "missing.ipynb"), filepath.Join(dir, "out.json"))
	if !errors.Is(err, notebook.ErrNotFound) {
		t.Errorf("ExtractToJSON = %v, want ErrNotFound", err)
	}
}
