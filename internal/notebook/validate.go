// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notebook reads and validates Jupyter notebook documents.
//
// The Validator holds the individual checks, each failing with its own
// sentinel kind; the Reader composes them into the read pipeline. Two
// cell-type checks exist side by side: EnsureCellType names the offending
// cell index, ValidateCellTypes reports the type alone. Callers pick the
// failure-message shape they need.
package notebook

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/nbrefine/pkg/types"
)

// validCellTypes is the set of recognised cell_type values.
var validCellTypes = map[string]bool{
	types.CellMarkdown: true,
	types.CellCode:     true,
	types.CellRaw:      true,
}

// Validator is a stateless set of notebook checks. The zero value is not
// usable; construct with NewValidator.
type Validator struct {
	structure StructureValidator
}

// NewValidator returns a Validator backed by the default format schema.
func NewValidator() *Validator {
	return &Validator{structure: FormatSchema{}}
}

// NewValidatorWith returns a Validator backed by the given structure
// validator. A nil value falls back to the default schema.
func NewValidatorWith(structure StructureValidator) *Validator {
	if structure == nil {
		structure = FormatSchema{}
	}
	return &Validator{structure: structure}
}

// EnsureFileExists fails with ErrNotFound when path does not exist.
func (v *Validator) EnsureFileExists(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return nil
}

// EnsureNotebookExtension fails with ErrInvalidFormat unless path ends
// in .ipynb.
func (v *Validator) EnsureNotebookExtension(path string) error {
	if ext := filepath.Ext(path); ext != ".ipynb" {
		return fmt.Errorf("%w, got: %s", ErrInvalidFormat, ext)
	}
	return nil
}

// EnsureStructure delegates to the structure validator and normalises any
// failure to ErrStructureInvalid, carrying the underlying message. The
// delegate owns the format rules; only its failure kind is reshaped here.
func (v *Validator) EnsureStructure(doc *types.Document) error {
	if err := v.structure.ValidateStructure(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrStructureInvalid, err)
	}
	return nil
}

// EnsureHasCells fails with ErrEmpty when the document has zero cells.
func (v *Validator) EnsureHasCells(doc *types.Document) error {
	if len(doc.Cells) == 0 {
		return ErrEmpty
	}
	return nil
}

// EnsureCellAttributes fails with ErrMalformedCell when the cell is not an
// object or is missing cell_type or source. The message names the cell by
// the index the caller supplies.
func (v *Validator) EnsureCellAttributes(cell types.Cell, index int) error {
	if !cell.IsObject() {
		return fmt.Errorf("%w: cell %d is not a valid cell object", ErrMalformedCell, index)
	}
	if !cell.HasCellType() {
		return fmt.Errorf("%w: cell %d is missing cell_type attribute", ErrMalformedCell, index)
	}
	if !cell.HasSource() {
		return fmt.Errorf("%w: cell %d is missing source content", ErrMalformedCell, index)
	}
	return nil
}

// EnsureCellType fails with ErrInvalidCellType unless the cell_type is one
// of markdown, code, or raw. The message names the cell index.
func (v *Validator) EnsureCellType(cell types.Cell, index int) error {
	if !validCellTypes[cell.CellType] {
		return fmt.Errorf("%w: cell %d has invalid type: %s", ErrInvalidCellType, index, cell.CellType)
	}
	return nil
}

// ValidateCell runs the required-attribute check, then the type check.
// The first failure wins.
func (v *Validator) ValidateCell(cell types.Cell, index int) error {
	if err := v.EnsureCellAttributes(cell, index); err != nil {
		return err
	}
	return v.EnsureCellType(cell, index)
}

// ValidateCellTypes fails with ErrInvalidCellType on the first cell whose
// type is not recognised. Unlike EnsureCellType the message carries only the
// offending type, not the index.
func (v *Validator) ValidateCellTypes(doc *types.Document) error {
	for _, cell := range doc.Cells {
		if !validCellTypes[cell.CellType] {
			return fmt.Errorf("%w: %s", ErrInvalidCellType, cell.CellType)
		}
	}
	return nil
}
