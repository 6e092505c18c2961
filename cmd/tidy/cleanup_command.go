package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCleanupCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "cleanup [dir]",
		Short: "Remove empty category directories from the target",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := ctx.openSession(cmd.Context(), targetFromArgs(args), false)
			if err != nil {
				return err
			}
			defer session.Close()

			removed, err := session.organizer.Cleanup(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, removed)
			}

			out := cmd.OutOrStdout()
			if len(removed) == 0 {
				fmt.Fprintln(out, "No empty category directories to remove")
				return nil
			}
			for _, dir := range removed {
				fmt.Fprintf(out, "  removed %s\n", dir)
			}
			fmt.Fprintf(out, "Removed %d directory(ies)\n", len(removed))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit removed directories as JSON")
	return cmd
}
