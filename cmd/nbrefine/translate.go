// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/nbrefine/internal/notebook"
	"github.com/pdiddy/nbrefine/internal/translate"
	"github.com/pdiddy/nbrefine/pkg/types"
)

const defaultModel = "claude-sonnet-4-5-20250929"

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate notebook content to another language",
	Long: `Translate reads a notebook and translates its cell content through the
Claude API: markdown cells are translated whole, code cells have only their
comments and docstrings translated, and raw cells pass through unchanged.
The result is written as a new notebook.

Supported language codes: es, fr, de, it, pt, ru, ja, ko, zh.

The API key is read from .secrets/anthropic-api-key or the translation
section of the config file.`,
	RunE: runTranslate,
}

func runTranslate(cmd *cobra.Command, args []string) error {
	notebookPath, _ := cmd.Flags().GetString("notebook")
	language, _ := cmd.Flags().GetString("language")
	outputPath, _ := cmd.Flags().GetString("output")

	if notebookPath == "" {
		return fmt.Errorf("--notebook is required")
	}
	if language == "" {
		return fmt.Errorf("--language is required")
	}
	language = strings.ToLower(language)

	cfg, err := translationConfig(cmd)
	if err != nil {
		return err
	}

	translator := translate.New(&translate.ClaudeBackend{Config: cfg})

	// Refuse an unsupported language before touching the notebook.
	if err := translator.ValidateLanguage(language); err != nil {
		return err
	}

	reader := notebook.NewReader(nil)
	doc, err := reader.ReadFromPath(notebookPath)
	if err != nil {
		return err
	}

	if outputPath == "" {
		outputPath = translatedPath(notebookPath, language)
	}

	if err := translator.TranslateToFile(context.Background(), doc, outputPath, language); err != nil {
		return err
	}

	fmt.Printf("translated %s -> %s (%s)\n", notebookPath, outputPath, translate.SupportedLanguages[language])
	return nil
}

// translationConfig resolves the translation settings: flags, then config
// file, then defaults. The API key comes from .secrets/ unless the config
// file overrides it.
func translationConfig(cmd *cobra.Command) (types.TranslationConfig, error) {
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("translation.model")
	}
	if model == "" {
		model = defaultModel
	}

	apiKey := secretDefault("anthropic-api-key", viper.GetString("translation.api_key"))
	if apiKey == "" {
		return types.TranslationConfig{}, fmt.Errorf("no API key: create .secrets/anthropic-api-key or set translation.api_key")
	}

	maxRetries := viper.GetInt("translation.max_retries")

	timeout := viper.GetDuration("translation.timeout")
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	return types.TranslationConfig{
		AIConfig: types.AIConfig{
			Model:      model,
			APIKey:     apiKey,
			MaxRetries: maxRetries,
		},
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: "nbrefine/" + version,
		},
	}, nil
}

// translatedPath derives the default output path by suffixing the language
// code: notebook.ipynb -> notebook-de.ipynb.
func translatedPath(notebookPath, language string) string {
	ext := filepath.Ext(notebookPath)
	return strings.TrimSuffix(notebookPath, ext) + "-" + language + ext
}

func init() {
	translateCmd.Flags().String("notebook", "", "path to the input notebook")
	translateCmd.Flags().String("language", "", "target language code (e.g. 'de' for German)")
	translateCmd.Flags().String("output", "", "path for the translated notebook (default: <notebook>-<language>.ipynb)")
	translateCmd.Flags().String("model", "", "AI model identifier for translation")

	rootCmd.AddCommand(translateCmd)
}
