package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history [dir]",
		Short: "Show the recorded organize operations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := ctx.openSession(cmd.Context(), targetFromArgs(args), true)
			if err != nil {
				return err
			}
			defer session.Close()

			entries := session.organizer.History()
			if jsonOutput {
				return writeJSON(cmd, entries)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "No history for %s\n", session.target)
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.Timestamp.Local().Format(time.DateTime),
					entry.File,
					titleCase(entry.Category),
					filepath.Base(entry.To),
					shortID(entry.OperationID),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"When", "File", "Category", "Stored As", "Operation"},
				rows,
				tableDestination(out),
			))
			fmt.Fprintf(out, "%d move(s) across %d operation(s)\n",
				len(entries), session.organizer.Operations())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the history as JSON")
	return cmd
}

// shortID abbreviates an operation id for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
