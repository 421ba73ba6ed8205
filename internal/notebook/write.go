// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notebook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pdiddy/nbrefine/pkg/types"
)

// WriteDocument serialises doc to path as notebook JSON, replacing any
// existing file. Output uses one-space indentation and leaves non-ASCII
// characters unescaped. A nil top-level metadata map is written as {} so the
// result stays structurally valid.
func WriteDocument(doc *types.Document, path string) error {
	if doc.Metadata == nil {
		doc = doc.Clone()
		doc.Metadata = map[string]any{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", " ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding notebook: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing notebook %s: %w", path, err)
	}
	return nil
}
