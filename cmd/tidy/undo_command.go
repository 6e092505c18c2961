package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"tidy/internal/organizer"
)

func newUndoCommand(ctx *commandContext) *cobra.Command {
	var undoAll bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "undo [dir]",
		Short: "Reverse the most recent organize operation",
		Long: `Reverse the most recent organize operation, moving every file back to
where it came from and removing the category directories the operation
created that are empty again. With --all, every recorded operation is
reversed, newest first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := ctx.openSession(cmd.Context(), targetFromArgs(args), false)
			if err != nil {
				return err
			}
			defer session.Close()

			var results []organizer.UndoResult
			if undoAll {
				results, err = session.organizer.UndoAll(cmd.Context())
			} else {
				var result *organizer.UndoResult
				result, err = session.organizer.UndoLast(cmd.Context())
				if result != nil {
					results = append(results, *result)
				}
			}
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, results)
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "Nothing to undo")
				return nil
			}

			// Per-record failures are outcomes, not a command failure.
			for _, result := range results {
				for _, outcome := range result.Report.Outcomes {
					if outcome.Restored {
						fmt.Fprintf(out, "  restored %s\n", filepath.Base(outcome.Record.Source))
					} else {
						fmt.Fprintf(out, "  failed: %s (%s)\n", filepath.Base(outcome.Record.Source), outcome.Reason)
					}
				}
				for _, dir := range result.RemovedDirs {
					fmt.Fprintf(out, "  removed empty directory %s\n", dir)
				}
			}
			fmt.Fprintf(out, "Undid %d operation(s)\n", len(results))
			return nil
		},
	}

	cmd.Flags().BoolVar(&undoAll, "all", false, "Undo every recorded operation")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the undo reports as JSON")
	return cmd
}
