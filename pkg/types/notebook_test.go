// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCellUnmarshalSourceForms(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "plain string source",
			data: `{"cell_type": "markdown", "source": "# Title"}`,
			want: "# Title",
		},
		{
			name: "line list source",
			data: `{"cell_type": "code", "source": ["import os\n", "print(os.getcwd())"]}`,
			want: "import os\nprint(os.getcwd())",
		},
		{
			name: "empty list source",
			data: `{"cell_type": "code", "source": []}`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cell Cell
			if err := json.Unmarshal([]byte(tt.data), &cell); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if cell.Source != tt.want {
				t.Errorf("Source = %q, want %q", cell.Source, tt.want)
			}
			if !cell.HasSource() {
				t.Error("HasSource() = false, want true")
			}
		})
	}
}

func TestCellUnmarshalPresence(t *testing.T) {
	var cell Cell
	if err := json.Unmarshal([]byte(`{"metadata": {}}`), &cell); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !cell.IsObject() {
		t.Error("IsObject() = false, want true")
	}
	if cell.HasCellType() {
		t.Error("HasCellType() = true for a cell without cell_type")
	}
	if cell.HasSource() {
		t.Error("HasSource() = true for a cell without source")
	}
}

func TestCellUnmarshalNonObject(t *testing.T) {
	var cell Cell
	if err := json.Unmarshal([]byte(`"not a cell"`), &cell); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cell.IsObject() {
		t.Error("IsObject() = true for a non-object value")
	}
}

func TestCellMarshalCodeDefaults(t *testing.T) {
	cell := NewCell(CellCode, "print(1)")
	data, err := json.Marshal(cell)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if string(fields["outputs"]) != "[]" {
		t.Errorf("outputs = %s, want []", fields["outputs"])
	}
	if string(fields["execution_count"]) != "null" {
		t.Errorf("execution_count = %s, want null", fields["execution_count"])
	}
}

func TestCellRoundTripPreservesOutputs(t *testing.T) {
	in := `{"cell_type": "code", "source": "1+1", "metadata": {}, "outputs": [{"output_type": "execute_result", "data": {"text/plain": ["2"]}}], "execution_count": 3}`

	var cell Cell
	if err := json.Unmarshal([]byte(in), &cell); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(cell)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if !strings.Contains(string(out), `"execute_result"`) {
		t.Errorf("outputs not preserved in %s", out)
	}
	if !strings.Contains(string(out), `"execution_count":3`) {
		t.Errorf("execution_count not preserved in %s", out)
	}
}

func TestDocumentClone(t *testing.T) {
	doc := &Document{
		Cells: []Cell{
			NewCell(CellMarkdown, "# Title"),
		},
		Metadata:      map[string]any{"kernelspec": map[string]any{"name": "python3"}},
		NBFormat:      4,
		NBFormatMinor: 5,
	}
	doc.Cells[0].Metadata = map[string]any{"locked": true}

	clone := doc.Clone()
	clone.Cells[0].Source = "changed"
	clone.Cells[0].Metadata["locked"] = false
	clone.Metadata["kernelspec"].(map[string]any)["name"] = "other"

	if doc.Cells[0].Source != "# Title" {
		t.Errorf("original source mutated: %q", doc.Cells[0].Source)
	}
	if doc.Cells[0].Metadata["locked"] != true {
		t.Errorf("original cell metadata mutated: %v", doc.Cells[0].Metadata)
	}
	if doc.Metadata["kernelspec"].(map[string]any)["name"] != "python3" {
		t.Errorf("original document metadata mutated: %v", doc.Metadata)
	}
}

func TestCloneKeepsPresenceFlags(t *testing.T) {
	cell := NewCell(CellCode, "")
	clone := cell.Clone()
	if !clone.HasCellType() || !clone.HasSource() || !clone.IsObject() {
		t.Error("clone lost presence flags")
	}
}
