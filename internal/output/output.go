// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output projects notebook documents to flat JSON content files.
package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/nbrefine/internal/notebook"
	"github.com/pdiddy/nbrefine/pkg/types"
)

// ErrWriteFailed reports a failure while serialising or writing the
// extraction output file.
var ErrWriteFailed = errors.New("failed to write output")

// Writer extracts content from an already-validated document and writes it
// as a JSON projection.
type Writer struct {
	doc *types.Document
}

// NewWriter returns a Writer over the given document.
func NewWriter(doc *types.Document) *Writer {
	return &Writer{doc: doc}
}

// ExtractCells projects only markdown and code cells to {type, content},
// in source order. Raw cells and any other type are dropped.
func (w *Writer) ExtractCells() []types.ExtractedCell {
	out := make([]types.ExtractedCell, 0, len(w.doc.Cells))
	for _, cell := range w.doc.Cells {
		if cell.CellType != types.CellMarkdown && cell.CellType != types.CellCode {
			continue
		}
		out = append(out, types.ExtractedCell{Type: cell.CellType, Content: cell.Source})
	}
	return out
}

// WriteJSON writes the projection to path as UTF-8 JSON with two-space
// indentation, leaving non-ASCII characters unescaped. Any failure is
// wrapped as ErrWriteFailed carrying the path and underlying message.
func (w *Writer) WriteJSON(path string) error {
	cells := w.ExtractCells()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cells); err != nil {
		return fmt.Errorf("%w to %s: %v", ErrWriteFailed, path, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w to %s: %v", ErrWriteFailed, path, err)
	}
	return nil
}

// ExtractToJSON reads and schema-validates the notebook at notebookPath,
// then writes its markdown and code content to outputPath, creating parent
// directories as needed. Per-cell validation is not run here; the schema
// check is the gate for extraction.
func ExtractToJSON(notebookPath, outputPath string) error {
	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w to %s: %v", ErrWriteFailed, outputPath, err)
		}
	}

	reader := notebook.NewReader(nil)
	doc, err := reader.Read(notebookPath)
	if err != nil {
		return err
	}

	return NewWriter(doc).WriteJSON(outputPath)
}
