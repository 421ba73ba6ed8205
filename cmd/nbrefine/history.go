// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/nbrefine/internal/catalog"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the processing catalog",
	Long: `History lists the notebooks recorded in the processing catalog: which
operation ran, how many cells the notebook had, and when it was processed.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Open(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer cat.Close()

	runs, err := cat.Runs()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No processing history.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.Path,
			r.Operation,
			fmt.Sprintf("%d", r.CellCount),
			r.ProcessedAt.Format("2006-01-02 15:04"),
			shortChecksum(r.Checksum),
		})
	}

	fmt.Println(renderTable(
		[]string{"Notebook", "Operation", "Cells", "Processed", "Checksum"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
	))
	return nil
}

func shortChecksum(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
