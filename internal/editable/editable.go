// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package editable rewrites notebook cell metadata so every cell can be
// edited and deleted in Jupyter frontends.
package editable

import (
	"github.com/pdiddy/nbrefine/internal/notebook"
	"github.com/pdiddy/nbrefine/pkg/types"
)

// Editor makes notebook cells editable by rewriting their metadata.
type Editor struct {
	reader *notebook.Reader
}

// NewEditor returns an Editor using the default read pipeline.
func NewEditor() *Editor {
	return &Editor{reader: notebook.NewReader(nil)}
}

// MakeCellEditable sets editable and deletable on the cell's metadata and
// drops any locked key. The metadata map is created when absent. Applying
// it twice leaves the same state as applying it once.
func (e *Editor) MakeCellEditable(cell *types.Cell) {
	if cell.Metadata == nil {
		cell.Metadata = map[string]any{}
	}
	cell.Metadata["editable"] = true
	cell.Metadata["deletable"] = true
	delete(cell.Metadata, "locked")
}

// ConvertToEditable returns a copy of doc with every cell made editable,
// whatever its type. The input document is left untouched.
func (e *Editor) ConvertToEditable(doc *types.Document) *types.Document {
	prepared := doc.Clone()
	for i := range prepared.Cells {
		e.MakeCellEditable(&prepared.Cells[i])
	}
	return prepared
}

// UpdateFile reads and validates the notebook at path, makes every cell
// editable, and writes the result back to the same path.
func (e *Editor) UpdateFile(path string) error {
	_, err := e.updateFile(path)
	return err
}

func (e *Editor) updateFile(path string) (*types.Document, error) {
	doc, err := e.reader.ReadFromPath(path)
	if err != nil {
		return nil, err
	}

	prepared := e.ConvertToEditable(doc)

	if err := notebook.WriteDocument(prepared, path); err != nil {
		return nil, err
	}
	return prepared, nil
}
