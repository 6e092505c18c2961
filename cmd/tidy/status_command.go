package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tidy/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status [dir]",
		Short: "Show environment checks and history summary for the target",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := ctx.openSession(cmd.Context(), targetFromArgs(args), true)
			if err != nil {
				return err
			}
			defer session.Close()

			results := preflight.RunAll(cmd.Context(), session.cfg, session.target)
			entries := session.organizer.History()

			if jsonOutput {
				return writeJSON(cmd, map[string]any{
					"target":     session.target,
					"checks":     results,
					"operations": session.organizer.Operations(),
					"moves":      len(entries),
					"categories": session.table.Categories(),
				})
			}

			out := cmd.OutOrStdout()
			colorize := tableDestination(out)

			for _, line := range renderSectionHeader("Environment", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, result := range results {
				kind := statusError
				if result.Passed {
					kind = statusOK
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}

			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("History", colorize) {
				fmt.Fprintln(out, line)
			}
			renderKeyValues(out, [][2]string{
				{"Target", session.target},
				{"Operations", fmt.Sprintf("%d", session.organizer.Operations())},
				{"Recorded moves", fmt.Sprintf("%d", len(entries))},
				{"History file", session.cfg.HistoryPath(session.target)},
				{"Backend", session.cfg.History.Backend},
			})
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit status as JSON")
	return cmd
}
