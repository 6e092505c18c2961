package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tidy/internal/config"
	"tidy/internal/rules"
)

func newRuleCommand(ctx *commandContext) *cobra.Command {
	ruleCmd := &cobra.Command{
		Use:   "rule",
		Short: "Manage custom categorization rules",
	}

	ruleCmd.AddCommand(newRuleAddCommand(ctx))
	ruleCmd.AddCommand(newRuleListCommand(ctx))

	return ruleCmd
}

func newRuleAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <pattern> <category>",
		Short: "Add a regex rule that decides a category before extensions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern, category := args[0], args[1]

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			// Compile through the table so bad patterns fail here, not at the
			// next organize.
			probe := rules.NewTable()
			if err := probe.AddRule(pattern, category); err != nil {
				return err
			}

			cfg.Rules = append(cfg.Rules, config.Rule{Pattern: pattern, Category: category})
			if err := cfg.Save(ctx.configPath); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added rule %q -> %s (saved to %s)\n",
				pattern, category, ctx.configPath)
			return nil
		},
	}
}

func newRuleListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List custom rules in evaluation order",
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

			ruleList := table.Rules()
			if jsonOutput {
				return writeJSON(cmd, ruleList)
			}

			out := cmd.OutOrStdout()
			if len(ruleList) == 0 {
				fmt.Fprintln(out, "No custom rules configured")
				return nil
			}

			rows := make([][]string, 0, len(ruleList))
			for i, rule := range ruleList {
				rows = append(rows, []string{
					fmt.Sprintf("%d", i+1),
					rule.Pattern,
					titleCase(rule.Category),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Pattern", "Category"},
				rows,
				tableDestination(out),
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit rules as JSON")
	return cmd
}
