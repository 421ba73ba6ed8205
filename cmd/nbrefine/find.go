// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/nbrefine/internal/discover"
)

var findCmd = &cobra.Command{
	Use:   "find [dir]",
	Short: "List notebook files under a directory",
	Long: `Find prints the path of every notebook under the given directory
(default: the current directory), one per line. Jupyter checkpoint copies
are excluded. The search pattern can be narrowed with --pattern.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFind,
}

func runFind(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	pattern, _ := cmd.Flags().GetString("pattern")

	paths, err := discover.Notebooks(root, pattern)
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		fmt.Println("No notebooks found.")
		return nil
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}

func init() {
	findCmd.Flags().String("pattern", discover.DefaultPattern, "glob pattern matched against paths under dir")

	rootCmd.AddCommand(findCmd)
}
