// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/nbrefine/internal/output"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract markdown and code cell content to a JSON file",
	Long: `Extract reads a notebook, validates its structure, and writes the content
of its markdown and code cells to a flat JSON file: an array of
{"type", "content"} objects in source order. Raw cells are dropped.`,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	notebookPath, _ := cmd.Flags().GetString("notebook")
	outputPath, _ := cmd.Flags().GetString("output")

	if notebookPath == "" {
		return fmt.Errorf("--notebook is required")
	}
	if outputPath == "" {
		return fmt.Errorf("--output is required")
	}

	if err := output.ExtractToJSON(notebookPath, outputPath); err != nil {
		return err
	}

	fmt.Printf("extracted %s -> %s\n", notebookPath, outputPath)
	return nil
}

func init() {
	extractCmd.Flags().String("notebook", "", "path to the input notebook")
	extractCmd.Flags().String("output", "", "path for the output JSON file")

	rootCmd.AddCommand(extractCmd)
}
