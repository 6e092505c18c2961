package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"tidy/internal/config"
	"tidy/internal/rules"
)

func newExtCommand(ctx *commandContext) *cobra.Command {
	extCmd := &cobra.Command{
		Use:   "ext",
		Short: "Manage extension to category mappings",
	}

	extCmd.AddCommand(newExtAddCommand(ctx))
	extCmd.AddCommand(newExtListCommand(ctx))

	return extCmd
}

func newExtAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <extension> <category>",
		Short: "Map a file extension to a category",
		Long: `Map a file extension to a category, overriding the built-in table.
Re-adding an extension replaces its previous mapping.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			ext, err := config.NormalizeExtension(args[0])
			if err != nil {
				return err
			}
			category := args[1]
			if category == "" {
				return fmt.Errorf("category cannot be empty")
			}

			if cfg.Extensions == nil {
				cfg.Extensions = map[string]string{}
			}
			cfg.Extensions[ext] = category
			if err := cfg.Save(ctx.configPath); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Mapped %s -> %s (saved to %s)\n",
				ext, category, ctx.configPath)
			return nil
		},
	}
}

func newExtListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the effective extension table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			table, err := rules.FromConfig(cfg)
			if err != nil {
				return err
			}

			extensions := table.Extensions()
			if jsonOutput {
				return writeJSON(cmd, extensions)
			}

			keys := make([]string, 0, len(extensions))
			for ext := range extensions {
				keys = append(keys, ext)
			}
			sort.Strings(keys)

			rows := make([][]string, 0, len(keys))
			for _, ext := range keys {
				rows = append(rows, []string{ext, titleCase(extensions[ext])})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Extension", "Category"},
				rows,
				tableDestination(cmd.OutOrStdout()),
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the extension table as JSON")
	return cmd
}
