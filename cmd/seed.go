package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/Lumos-Labs-HQ/seedling/fake"
	"github.com/Lumos-Labs-HQ/seedling/internal/config"
	"github.com/Lumos-Labs-HQ/seedling/internal/database"
	"github.com/Lumos-Labs-HQ/seedling/internal/plan"
	"github.com/Lumos-Labs-HQ/seedling/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	seedOnly  []string
	seedCount int
	seedPlan  string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert generated rows described by the seed plan",
	Long: `Build one multi-row INSERT per table in the seed plan and run them in
dependency order. Seeding stops at the first failing table; rows inserted by
earlier tables are kept.`,
	Example: `  seedling seed
  seedling seed --only users,posts --count 50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, mocks, err := loadMocks()
		if err != nil {
			return err
		}

		dbURL, err := cfg.GetDatabaseURL()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		target, err := database.Open(ctx, cfg.Database.Provider, cfg.Database.Mode, dbURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer target.Close()

		if err := target.Ping(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		color.Cyan("🌱 Seeding %d tables (%s, %s)...", len(mocks), cfg.Database.Provider, cfg.Database.Mode)

		start := time.Now()
		var total int64
		err = target.Run(ctx, mocks, func(i int, m *seeder.Mock, rows int64) {
			total += rows
			color.Green("  ✓ %-30s %d rows", m.Table().QualifiedName(), rows)
		})
		if err != nil {
			color.Red("  ✗ %s", database.Describe(err))
			return fmt.Errorf("seeding stopped: %w", err)
		}

		color.Green("\n✅ Inserted %d rows in %s", total, time.Since(start).Round(time.Millisecond))
		return nil
	},
}

// loadMocks reads the config and seed plan and applies the command flags.
func loadMocks() (*config.Config, []*seeder.Mock, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	if cfg.Seed.RandomSeed != 0 {
		fake.Seed(cfg.Seed.RandomSeed)
	}

	path := cfg.PlanPath
	if seedPlan != "" {
		path = seedPlan
	}
	p, err := plan.Load(path)
	if err != nil {
		return nil, nil, err
	}

	opts := plan.Options{
		DefaultCount:  cfg.Seed.DefaultCount,
		CountOverride: seedCount,
		Only:          seedOnly,
	}
	if cfg.Seed.Parameterized {
		opts.Placeholder = cfg.Placeholder()
	}

	mocks, err := p.Mocks(opts)
	if err != nil {
		return nil, nil, err
	}
	if len(mocks) == 0 {
		return nil, nil, fmt.Errorf("no tables selected from %s", path)
	}
	return cfg, mocks, nil
}

func addPlanFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&seedOnly, "only", nil, "Seed only these tables (comma separated)")
	cmd.Flags().IntVar(&seedCount, "count", 0, "Rows per table, overriding the plan")
	cmd.Flags().StringVar(&seedPlan, "plan", "", "Seed plan file (default from config)")
}

func init() {
	rootCmd.AddCommand(seedCmd)
	addPlanFlags(seedCmd)
}
