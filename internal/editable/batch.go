// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package editable

import (
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/nbrefine/internal/catalog"
)

// Failure pairs a notebook path with the error that stopped its processing.
type Failure struct {
	Path string
	Err  error
}

// BatchSummary holds counts from a batch editable run.
type BatchSummary struct {
	Updated  int
	Skipped  int
	Failed   int
	Failures []Failure
}

// Total returns the number of notebooks processed.
func (s BatchSummary) Total() int {
	return s.Updated + s.Skipped + s.Failed
}

// HasFailures reports whether any notebooks failed.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// UpdateAll makes every listed notebook editable, writing per-path status
// lines to w. A failing notebook is reported and counted; it never aborts
// the rest of the batch. When cat is non-nil, notebooks whose checksum
// matches the last editable run are skipped unless force is set; successful
// runs are recorded with the rewritten file's checksum.
func (e *Editor) UpdateAll(paths []string, cat *catalog.Catalog, force bool, w io.Writer) BatchSummary {
	var summary BatchSummary

	for _, path := range paths {
		sum, err := catalog.Checksum(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", path, err)
			summary.Failed++
			summary.Failures = append(summary.Failures, Failure{Path: path, Err: err})
			continue
		}

		if cat != nil && !force {
			seen, err := cat.Seen(path, catalog.OpEditable, sum)
			if err != nil {
				fmt.Fprintf(w, "failed  %s: %v\n", path, err)
				summary.Failed++
				summary.Failures = append(summary.Failures, Failure{Path: path, Err: err})
				continue
			}
			if seen {
				fmt.Fprintf(w, "skipped %s\n", path)
				summary.Skipped++
				continue
			}
		}

		doc, err := e.updateFile(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", path, err)
			summary.Failed++
			summary.Failures = append(summary.Failures, Failure{Path: path, Err: err})
			continue
		}

		if cat != nil {
			newSum, err := catalog.Checksum(path)
			if err == nil {
				err = cat.Record(path, catalog.OpEditable, newSum, len(doc.Cells))
			}
			if err != nil {
				fmt.Fprintf(w, "warning %s: catalog not updated: %v\n", path, err)
			}
		}

		fmt.Fprintf(w, "updated %s (%d cells)\n", path, len(doc.Cells))
		summary.Updated++
	}

	return summary
}

// manifest is the on-disk shape of a batch manifest file.
type manifest struct {
	Notebooks []string `yaml:"notebooks"`
}

// LoadManifest reads a YAML manifest listing notebook paths under a
// top-level "notebooks" key.
func LoadManifest(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if len(m.Notebooks) == 0 {
		return nil, fmt.Errorf("manifest %s lists no notebooks", path)
	}
	return m.Notebooks, nil
}
