package cmd

import (
	"fmt"
	"os"

	"github.com/Lumos-Labs-HQ/seedling/internal/config"
	"github.com/Lumos-Labs-HQ/seedling/internal/plan"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	scaffoldOut   string
	scaffoldForce bool
)

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold <schema.sql>",
	Short: "Draft a seed plan from CREATE TABLE statements",
	Long: `Read CREATE TABLE statements and write a seed plan with one entry per
table. Generators are picked from column names and types; auto increment keys
are skipped and foreign keys become depends_on entries. Integer foreign keys
are drawn from 1..N, where N is the parent's row count for the run, so
seed --count keeps them in range. Review the plan before seeding.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		schemaSQL, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read schema: %w", err)
		}

		p := plan.FromSchema(string(schemaSQL), cfg.Seed.DefaultCount)
		if len(p.Tables) == 0 {
			color.Yellow("⚠️  No tables found in %s", args[0])
			return nil
		}

		out := cfg.PlanPath
		if scaffoldOut != "" {
			out = scaffoldOut
		}
		if _, err := os.Stat(out); err == nil && !scaffoldForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", out)
		}

		data, err := p.Marshal()
		if err != nil {
			return fmt.Errorf("failed to encode seed plan: %w", err)
		}
		cfg.PlanPath = out
		if err := cfg.EnsureDirectories(); err != nil {
			return err
		}
		if err := os.WriteFile(out, data, 0644); err != nil {
			return fmt.Errorf("failed to write seed plan: %w", err)
		}

		color.Green("✅ Wrote %d tables to %s", len(p.Tables), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scaffoldCmd)
	scaffoldCmd.Flags().StringVarP(&scaffoldOut, "out", "o", "", "Output plan file (default from config)")
	scaffoldCmd.Flags().BoolVarP(&scaffoldForce, "force", "f", false, "Overwrite an existing plan")
}
