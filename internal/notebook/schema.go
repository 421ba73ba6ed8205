// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notebook

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/pdiddy/nbrefine/pkg/types"
)

// StructureValidator checks a document against the notebook format rules.
// Implementations report non-conformance with a descriptive error; the
// Validator normalises any failure to ErrStructureInvalid.
type StructureValidator interface {
	ValidateStructure(doc *types.Document) error
}

// FormatSchema is the default StructureValidator. It expresses the notebook
// v4 structural rules as validation rules: format version markers, top-level
// metadata, and per-cell required attributes. An empty cells list is
// structurally valid; emptiness is a separate check with its own failure kind.
type FormatSchema struct{}

// ValidateStructure checks doc against the notebook format rules.
func (FormatSchema) ValidateStructure(doc *types.Document) error {
	err := validation.ValidateStruct(doc,
		validation.Field(&doc.NBFormat, validation.Required, validation.Min(4)),
		validation.Field(&doc.NBFormatMinor, validation.Min(0)),
		validation.Field(&doc.Metadata, validation.NotNil),
		validation.Field(&doc.Cells, validation.NotNil),
	)
	if err != nil {
		return err
	}

	for i, cell := range doc.Cells {
		if err := checkCellShape(cell); err != nil {
			return fmt.Errorf("cells[%d]: %w", i, err)
		}
	}
	return nil
}

// checkCellShape applies the per-cell schema rules: the cell must be an
// object carrying cell_type (one of the recognised types) and source.
func checkCellShape(cell types.Cell) error {
	if !cell.IsObject() {
		return fmt.Errorf("expected an object")
	}
	if !cell.HasCellType() {
		return fmt.Errorf("'cell_type' is a required property")
	}
	if err := validation.Validate(cell.CellType,
		validation.In(types.CellMarkdown, types.CellCode, types.CellRaw),
	); err != nil {
		return fmt.Errorf("cell_type %q: %w", cell.CellType, err)
	}
	if !cell.HasSource() {
		return fmt.Errorf("'source' is a required property")
	}
	return nil
}
