// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "nbrefine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIConfig holds shared settings for stages that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for rate-limited API calls
	// (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// TranslationConfig holds settings for the translation stage.
type TranslationConfig struct {
	AIConfig `yaml:",inline"`

	HTTPConfig `yaml:",inline"`
}

// CatalogConfig holds settings for the processing catalog.
type CatalogConfig struct {
	// Dir is the directory holding the catalog database (default ".nbrefine").
	Dir string `json:"dir" yaml:"dir"`
}

// BatchConfig holds settings for batch notebook processing.
type BatchConfig struct {
	// Root is the directory searched for notebooks.
	Root string `json:"root" yaml:"root"`

	// Pattern is the glob pattern matched against paths under Root
	// (default "**/*.ipynb").
	Pattern string `json:"pattern" yaml:"pattern"`

	// Manifest is an optional YAML file listing explicit notebook paths;
	// when set it replaces directory discovery.
	Manifest string `json:"manifest,omitempty" yaml:"manifest,omitempty"`

	// Force reprocesses notebooks even when the catalog shows them unchanged.
	Force bool `json:"force" yaml:"force"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Translation TranslationConfig `json:"translation" yaml:"translation"`
	Catalog     CatalogConfig     `json:"catalog" yaml:"catalog"`
	Batch       BatchConfig       `json:"batch" yaml:"batch"`
}
