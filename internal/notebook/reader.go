// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notebook

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/nbrefine/pkg/types"
)

// Reader orchestrates path validation, parsing, and document validation.
type Reader struct {
	validator *Validator
}

// NewReader returns a Reader using the given validator, or the default
// validator when nil.
func NewReader(validator *Validator) *Reader {
	if validator == nil {
		validator = NewValidator()
	}
	return &Reader{validator: validator}
}

// ValidatePath checks that path exists and carries the .ipynb extension,
// returning the cleaned path.
func (r *Reader) ValidatePath(path string) (string, error) {
	if err := r.validator.EnsureFileExists(path); err != nil {
		return "", err
	}
	if err := r.validator.EnsureNotebookExtension(path); err != nil {
		return "", err
	}
	return filepath.Clean(path), nil
}

// Read parses the file at path into a document and checks its structure.
// A JSON parse failure is reported as ErrInvalidJSON; a structural failure
// as ErrStructureInvalid. Anything else unexpected during the read is also
// reported as ErrStructureInvalid.
func (r *Reader) Read(path string) (*types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrStructureInvalid, err)
	}

	var doc types.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		switch err.(type) {
		case *json.SyntaxError, *json.UnmarshalTypeError:
			return nil, ErrInvalidJSON
		default:
			return nil, fmt.Errorf("%w: %v", ErrStructureInvalid, err)
		}
	}

	if err := r.validator.EnsureStructure(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate runs the document-level checks: structure, non-emptiness, and
// the unindexed cell-type check, in that order.
func (r *Reader) Validate(doc *types.Document) error {
	if err := r.validator.EnsureStructure(doc); err != nil {
		return err
	}
	if err := r.validator.EnsureHasCells(doc); err != nil {
		return err
	}
	return r.validator.ValidateCellTypes(doc)
}

// ValidateCells runs the per-cell checks over every cell. Cells are named
// by 1-based position in failure messages, matching how users count cells;
// the validator's own checks stay 0-based for callers that index directly.
func (r *Reader) ValidateCells(doc *types.Document) error {
	for i, cell := range doc.Cells {
		if err := r.validator.ValidateCell(cell, i+1); err != nil {
			return err
		}
	}
	return nil
}

// ReadFromPath is the full read pipeline: path checks, parse, document
// validation, and per-cell validation.
func (r *Reader) ReadFromPath(path string) (*types.Document, error) {
	doc, err := r.readFromPath(path)
	if err != nil {
		return nil, resolveErrorKind(err)
	}
	return doc, nil
}

func (r *Reader) readFromPath(path string) (*types.Document, error) {
	cleaned, err := r.ValidatePath(path)
	if err != nil {
		return nil, err
	}
	doc, err := r.Read(cleaned)
	if err != nil {
		return nil, err
	}
	if err := r.Validate(doc); err != nil {
		return nil, err
	}
	if err := r.ValidateCells(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// resolveErrorKind reclassifies any failure whose message mentions invalid
// JSON as a plain ErrInvalidJSON, whatever its original kind. This
// message-sniffing normalisation is a long-standing compatibility quirk of
// the read pipeline; it lives only at this seam, never in the parse routine.
func resolveErrorKind(err error) error {
	if strings.Contains(err.Error(), "invalid JSON") {
		return ErrInvalidJSON
	}
	return err
}

// ExtractCells projects every cell, whatever its type, to {type, content}.
// This is the unfiltered projection; the output stage has its own that keeps
// only markdown and code cells.
func (r *Reader) ExtractCells(doc *types.Document) []types.ExtractedCell {
	out := make([]types.ExtractedCell, len(doc.Cells))
	for i, cell := range doc.Cells {
		out[i] = types.ExtractedCell{Type: cell.CellType, Content: cell.Source}
	}
	return out
}
