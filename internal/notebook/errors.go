// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notebook

import "errors"

// Sentinel failure kinds for notebook reading and validation. Call sites wrap
// these with fmt.Errorf("...: %w", ...) so messages carry the path or cell
// index while callers classify with errors.Is.
var (
	// ErrNotFound reports a notebook path that does not exist.
	ErrNotFound = errors.New("notebook not found")

	// ErrInvalidFormat reports a file without the .ipynb extension.
	ErrInvalidFormat = errors.New("file must be a Jupyter notebook (.ipynb)")

	// ErrInvalidJSON reports a file whose contents could not be parsed as JSON.
	ErrInvalidJSON = errors.New("invalid JSON in notebook file")

	// ErrStructureInvalid reports a document that fails notebook format
	// validation. It also covers unexpected read failures that are not
	// JSON parse errors.
	ErrStructureInvalid = errors.New("notebook structure is invalid")

	// ErrEmpty reports a document with zero cells.
	ErrEmpty = errors.New("notebook contains no cells")

	// ErrMalformedCell reports a cell missing cell_type or source, or one
	// that is not an object at all.
	ErrMalformedCell = errors.New("malformed cell")

	// ErrInvalidCellType reports a cell_type outside {markdown, code, raw}.
	ErrInvalidCellType = errors.New("invalid cell type")
)
