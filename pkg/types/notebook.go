// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"fmt"
)

// Recognised notebook cell types.
const (
	CellMarkdown = "markdown"
	CellCode     = "code"
	CellRaw      = "raw"
)

// Document is a parsed Jupyter notebook: an ordered sequence of cells plus
// top-level metadata and the format version markers.
type Document struct {
	Cells         []Cell         `json:"cells"`
	Metadata      map[string]any `json:"metadata"`
	NBFormat      int            `json:"nbformat"`
	NBFormatMinor int            `json:"nbformat_minor"`
}

// Cell is one unit of a notebook document. Outputs, ExecutionCount, and
// Attachments are carried as raw JSON and never interpreted: they survive a
// read/transform/write round trip byte-for-byte.
//
// A Cell decoded from JSON tracks whether cell_type and source were present
// in the source object, so validation can distinguish a missing attribute
// from an empty one. Cells built in code should use NewCell, which marks
// both attributes present; the zero value reports them missing.
type Cell struct {
	ID             string
	CellType       string
	Source         string
	Metadata       map[string]any
	Outputs        json.RawMessage
	ExecutionCount json.RawMessage
	Attachments    json.RawMessage

	object    bool
	hasType   bool
	hasSource bool
}

// NewCell returns a cell with the given type and content, with both required
// attributes marked present.
func NewCell(cellType, source string) Cell {
	return Cell{
		CellType:  cellType,
		Source:    source,
		object:    true,
		hasType:   true,
		hasSource: true,
	}
}

// IsObject reports whether the cell came from a JSON object (or NewCell).
// A cell decoded from a non-object JSON value reports false.
func (c Cell) IsObject() bool { return c.object }

// HasCellType reports whether the cell_type attribute was present.
func (c Cell) HasCellType() bool { return c.hasType }

// HasSource reports whether the source attribute was present.
func (c Cell) HasSource() bool { return c.hasSource }

// UnmarshalJSON decodes a cell from its notebook JSON form. The source
// attribute may be a single string or a list of line strings; lists are
// joined into one string. A non-object value leaves the zero cell so
// validation can report it, rather than failing the whole parse.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		*c = Cell{}
		return nil
	}

	*c = Cell{object: true}

	if raw, ok := fields["cell_type"]; ok {
		c.hasType = true
		if err := json.Unmarshal(raw, &c.CellType); err != nil {
			return fmt.Errorf("decoding cell_type: %w", err)
		}
	}
	if raw, ok := fields["source"]; ok {
		c.hasSource = true
		c.Source = decodeSource(raw)
	}
	if raw, ok := fields["id"]; ok {
		if err := json.Unmarshal(raw, &c.ID); err != nil {
			return fmt.Errorf("decoding cell id: %w", err)
		}
	}
	if raw, ok := fields["metadata"]; ok {
		if err := json.Unmarshal(raw, &c.Metadata); err != nil {
			return fmt.Errorf("decoding cell metadata: %w", err)
		}
	}

	c.Outputs = fields["outputs"]
	c.ExecutionCount = fields["execution_count"]
	c.Attachments = fields["attachments"]
	return nil
}

// decodeSource accepts the two notebook source encodings: a plain string or
// a list of line strings (joined as-is, lines carry their own newlines).
func decodeSource(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var lines []string
	if err := json.Unmarshal(raw, &lines); err == nil {
		joined := ""
		for _, line := range lines {
			joined += line
		}
		return joined
	}
	return ""
}

// MarshalJSON encodes the cell in notebook JSON form. Source is always
// written as a single string. Code cells always carry outputs and
// execution_count, defaulting to empty/null when the cell was built in code.
func (c Cell) MarshalJSON() ([]byte, error) {
	fields := map[string]any{
		"cell_type": c.CellType,
		"source":    c.Source,
	}

	meta := c.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	fields["metadata"] = meta

	if c.ID != "" {
		fields["id"] = c.ID
	}
	if c.CellType == CellCode {
		if c.Outputs != nil {
			fields["outputs"] = c.Outputs
		} else {
			fields["outputs"] = []any{}
		}
		if c.ExecutionCount != nil {
			fields["execution_count"] = c.ExecutionCount
		} else {
			fields["execution_count"] = nil
		}
	}
	if c.Attachments != nil {
		fields["attachments"] = c.Attachments
	}
	return json.Marshal(fields)
}

// Clone returns a deep copy of the cell. Mutating the copy's metadata or raw
// fields never affects the original.
func (c Cell) Clone() Cell {
	out := c
	out.Metadata = cloneMap(c.Metadata)
	out.Outputs = cloneRaw(c.Outputs)
	out.ExecutionCount = cloneRaw(c.ExecutionCount)
	out.Attachments = cloneRaw(c.Attachments)
	return out
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := &Document{
		Metadata:      cloneMap(d.Metadata),
		NBFormat:      d.NBFormat,
		NBFormatMinor: d.NBFormatMinor,
	}
	if d.Cells != nil {
		out.Cells = make([]Cell, len(d.Cells))
		for i := range d.Cells {
			out.Cells[i] = d.Cells[i].Clone()
		}
	}
	return out
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		return cloneMap(tv)
	case []any:
		out := make([]any, len(tv))
		for i, item := range tv {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// ExtractedCell is a content-only projection of one cell: no metadata, no
// outputs, no execution state.
type ExtractedCell struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}
