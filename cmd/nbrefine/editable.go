// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/nbrefine/internal/catalog"
	"github.com/pdiddy/nbrefine/internal/discover"
	"github.com/pdiddy/nbrefine/internal/editable"
)

var editableCmd = &cobra.Command{
	Use:   "editable",
	Short: "Make every cell of a notebook editable",
	Long: `Editable rewrites cell metadata so every cell can be edited and deleted in
Jupyter frontends, then writes the notebook back in place.

With --batch the command processes every notebook found under --dir (or
listed in a --manifest YAML file). Batch runs consult the processing
catalog and skip notebooks that are unchanged since the last run; --force
reprocesses them anyway.`,
	RunE: runEditable,
}

func runEditable(cmd *cobra.Command, args []string) error {
	batch, _ := cmd.Flags().GetBool("batch")
	editor := editable.NewEditor()

	if !batch {
		notebookPath, _ := cmd.Flags().GetString("notebook")
		if notebookPath == "" {
			return fmt.Errorf("--notebook is required (or use --batch)")
		}
		if err := editor.UpdateFile(notebookPath); err != nil {
			return err
		}
		fmt.Printf("updated %s\n", notebookPath)
		return nil
	}

	paths, err := batchPaths(cmd)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Println("No notebooks found.")
		return nil
	}

	cat, err := catalog.Open(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer cat.Close()

	force, _ := cmd.Flags().GetBool("force")
	summary := editor.UpdateAll(paths, cat, force, os.Stdout)

	fmt.Println()
	fmt.Println(batchSummaryTable(summary))

	if summary.HasFailures() {
		return fmt.Errorf("%d notebook(s) failed", summary.Failed)
	}
	return nil
}

// batchPaths resolves the notebook list for a batch run: an explicit
// manifest wins over directory discovery.
func batchPaths(cmd *cobra.Command) ([]string, error) {
	manifestPath, _ := cmd.Flags().GetString("manifest")
	if manifestPath != "" {
		return editable.LoadManifest(manifestPath)
	}

	dir, _ := cmd.Flags().GetString("dir")
	pattern, _ := cmd.Flags().GetString("pattern")
	return discover.Notebooks(dir, pattern)
}

// batchSummaryTable renders the batch outcome, one row per status plus
// a row per failure with its reason.
func batchSummaryTable(summary editable.BatchSummary) string {
	rows := [][]string{
		{"updated", fmt.Sprintf("%d", summary.Updated)},
		{"skipped", fmt.Sprintf("%d", summary.Skipped)},
		{"failed", fmt.Sprintf("%d", summary.Failed)},
		{"total", fmt.Sprintf("%d", summary.Total())},
	}
	out := renderTable([]string{"Status", "Notebooks"}, rows, []columnAlignment{alignLeft, alignRight})

	if len(summary.Failures) > 0 {
		failRows := make([][]string, 0, len(summary.Failures))
		for _, f := range summary.Failures {
			failRows = append(failRows, []string{f.Path, f.Err.Error()})
		}
		out += "\n" + renderTable([]string{"Failed Notebook", "Reason"}, failRows, []columnAlignment{alignLeft, alignLeft})
	}
	return out
}

func init() {
	editableCmd.Flags().String("notebook", "", "path to the notebook to update in place")
	editableCmd.Flags().Bool("batch", false, "process every notebook under --dir or in --manifest")
	editableCmd.Flags().String("dir", ".", "directory searched for notebooks in batch mode")
	editableCmd.Flags().String("pattern", discover.DefaultPattern, "glob pattern for batch discovery")
	editableCmd.Flags().String("manifest", "", "YAML file listing notebook paths for batch mode")
	editableCmd.Flags().Bool("force", false, "reprocess notebooks the catalog shows as unchanged")

	rootCmd.AddCommand(editableCmd)
}
