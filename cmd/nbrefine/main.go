// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the nbrefine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/nbrefine/internal/secrets"
	"github.com/pdiddy/nbrefine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the nbrefine CLI.
var rootCmd = &cobra.Command{
	Use:   "nbrefine",
	Short: "Validate, extract, prepare, and translate Jupyter notebooks",
	Long: `nbrefine processes Jupyter notebook files: it validates their structure,
extracts markdown and code content to flat JSON, rewrites cell metadata so
every cell is editable, and translates cell content to other languages
through the Claude API.

Each operation is a subcommand: extract, editable, translate, find, and
history. Batch runs record their work in a local catalog so unchanged
notebooks are skipped on subsequent runs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./nbrefine.yaml or ~/.config/nbrefine/config.yaml)")
	rootCmd.PersistentFlags().String("catalog-dir", "", "directory for the processing catalog (default: .nbrefine)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("nbrefine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "nbrefine"))
		}
	}

	viper.SetEnvPrefix("NBREFINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// catalogConfig resolves the catalog directory: flag, then config file,
// then the default.
func catalogConfig(cmd *cobra.Command) types.CatalogConfig {
	dir, _ := cmd.Flags().GetString("catalog-dir")
	if dir == "" {
		dir = viper.GetString("catalog.dir")
	}
	if dir == "" {
		dir = ".nbrefine"
	}
	return types.CatalogConfig{Dir: dir}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
