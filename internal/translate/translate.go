// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package translate converts notebook cell content into other languages
// through a pluggable translation backend.
//
// The package owns the per-cell decisions: which cells to send, which to
// pass through, and in what order. The backend owns the inference call.
// Markdown cells are always sent; code cells only when they carry comments
// or docstrings; raw and unknown cell types pass through unchanged.
package translate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/nbrefine/internal/notebook"
	"github.com/pdiddy/nbrefine/pkg/types"
)

// ErrUnsupportedLanguage reports a target language code outside the
// supported table.
var ErrUnsupportedLanguage = errors.New("invalid language code")

// SupportedLanguages maps target language codes to the display names used
// in translation prompts.
var SupportedLanguages = map[string]string{
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"ru": "Russian",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese",
}

// ContentKind tells the backend which prompt contract applies.
type ContentKind string

// Content kinds sent to the backend.
const (
	KindMarkdown ContentKind = "markdown"
	KindCode     ContentKind = "code"
)

// Request is one translation request to the backend. TargetLanguage is the
// display name from SupportedLanguages, not the code.
type Request struct {
	TargetLanguage string
	Content        string
	Kind           ContentKind
}

// Result is the structured response from the backend. Only
// TranslatedContent is consumed here; the rest is carried for callers that
// want provenance.
type Result struct {
	TranslatedContent string         `json:"translated_content"`
	SourceLanguage    string         `json:"source_language,omitempty"`
	Notes             string         `json:"notes,omitempty"`
	Metadata          map[string]any `json:"metadata,omitempty"`
}

// Backend abstracts the translation capability so tests can supply a mock.
// The production implementation calls the Claude API.
type Backend interface {
	Translate(ctx context.Context, req Request) (Result, error)
}

// Translator orchestrates per-cell translation over a backend.
type Translator struct {
	backend   Backend
	validator *notebook.Validator
}

// New returns a Translator over the given backend.
func New(backend Backend) *Translator {
	return &Translator{
		backend:   backend,
		validator: notebook.NewValidator(),
	}
}

// ValidateLanguage fails with ErrUnsupportedLanguage unless code is in the
// supported table.
func (t *Translator) ValidateLanguage(code string) error {
	if _, ok := SupportedLanguages[code]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedLanguage, code)
	}
	return nil
}

// IsMarkdown reports whether cellType is the markdown type.
func (t *Translator) IsMarkdown(cellType string) bool {
	return cellType == types.CellMarkdown
}

// IsCode reports whether cellType is the code type.
func (t *Translator) IsCode(cellType string) bool {
	return cellType == types.CellCode
}

// HasTranslatableCodeContent reports whether code content carries a comment
// or docstring marker. This is a coarse substring check, not a parser: a
// string literal containing # counts, a block comment in another comment
// syntax does not. Its exact behavior is relied on by callers; keep it as is.
func (t *Translator) HasTranslatableCodeContent(content string) bool {
	for _, marker := range []string{"#", `"""`, "'''"} {
		if strings.Contains(content, marker) {
			return true
		}
	}
	return false
}

// TranslateMarkdown sends markdown content to the backend and returns the
// translated text verbatim.
func (t *Translator) TranslateMarkdown(ctx context.Context, content, lang string) (string, error) {
	result, err := t.backend.Translate(ctx, Request{
		TargetLanguage: SupportedLanguages[lang],
		Content:        content,
		Kind:           KindMarkdown,
	})
	if err != nil {
		return "", err
	}
	return result.TranslatedContent, nil
}

// TranslateCode sends code content to the backend under the code contract:
// only comments and docstrings change, executable code stays byte-identical.
// Content with no comment or docstring marker is returned unchanged without
// a backend call.
func (t *Translator) TranslateCode(ctx context.Context, content, lang string) (string, error) {
	if !t.HasTranslatableCodeContent(content) {
		return content, nil
	}

	result, err := t.backend.Translate(ctx, Request{
		TargetLanguage: SupportedLanguages[lang],
		Content:        content,
		Kind:           KindCode,
	})
	if err != nil {
		return "", err
	}
	return result.TranslatedContent, nil
}

// TranslateCell validates the language, then dispatches on the cell type:
// markdown and code are translated, anything else passes through unchanged.
// The language check runs before any backend call could happen.
func (t *Translator) TranslateCell(ctx context.Context, content, cellType, lang string) (string, error) {
	if err := t.ValidateLanguage(lang); err != nil {
		return "", err
	}

	switch {
	case t.IsMarkdown(cellType):
		return t.TranslateMarkdown(ctx, content, lang)
	case t.IsCode(cellType):
		return t.TranslateCode(ctx, content, lang)
	default:
		return content, nil
	}
}

// TranslateDocument returns a translated copy of doc with every cell's
// source replaced, preserving cell count and order. The input document is
// left untouched. Structure is validated before any per-cell work; the
// first failing cell aborts the whole document.
func (t *Translator) TranslateDocument(ctx context.Context, doc *types.Document, lang string) (*types.Document, error) {
	if err := t.validator.EnsureStructure(doc); err != nil {
		return nil, err
	}

	translated := doc.Clone()
	for i := range translated.Cells {
		cell := &translated.Cells[i]
		source, err := t.TranslateCell(ctx, cell.Source, cell.CellType, lang)
		if err != nil {
			return nil, err
		}
		cell.Source = source
	}
	return translated, nil
}

// TranslateToFile translates doc and writes the result to path, creating
// parent directories as needed.
func (t *Translator) TranslateToFile(ctx context.Context, doc *types.Document, path, lang string) error {
	translated, err := t.TranslateDocument(ctx, doc, lang)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	return notebook.WriteDocument(translated, path)
}
