package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"tidy/internal/preflight"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var skipPreflight bool

	cmd := &cobra.Command{
		Use:   "organize [dir]",
		Short: "Move the directory's files into category folders",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := ctx.openSession(cmd.Context(), targetFromArgs(args), false)
			if err != nil {
				return err
			}
			defer session.Close()

			if !skipPreflight {
				results := preflight.RunAll(cmd.Context(), session.cfg, session.target)
				if !preflight.Passed(results) {
					printPreflightFailures(cmd, results)
					return fmt.Errorf("preflight checks failed for %s", session.target)
				}
			}

			report, err := session.organizer.OrganizeFiles(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			if len(report.Moved) == 0 {
				fmt.Fprintf(out, "Nothing to organize in %s\n", session.target)
			} else {
				fmt.Fprintf(out, "Organized %d file(s) in %s\n", len(report.Moved), session.target)
				for _, rec := range report.Moved {
					fmt.Fprintf(out, "  %s -> %s/%s\n",
						filepath.Base(rec.Source), titleCase(rec.Category), filepath.Base(rec.Destination))
				}
			}
			// Per-file failures are part of the report, not a command failure.
			for _, failure := range report.Failures {
				fmt.Fprintf(out, "  failed: %s (%s)\n", failure.File, failure.Reason)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the pass report as JSON")
	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Skip environment checks before organizing")
	return cmd
}

func printPreflightFailures(cmd *cobra.Command, results []preflight.Result) {
	out := cmd.ErrOrStderr()
	for _, result := range results {
		if result.Passed {
			continue
		}
		fmt.Fprintf(out, "  %s: %s\n", result.Name, result.Detail)
	}
}
