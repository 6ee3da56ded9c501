package main

import (
	"context"
	"fmt"

	"advertBack/internal/repositories"
	"advertBack/internal/seed"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	seedUsers         int
	seedReferenceOnly bool
	seedSkipMigrate   bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load reference data and generated test listings",
	Long: `Seed inserts the region and category dictionaries and the two demo
accounts, then tops the user table up to --users generated sellers with
3-8 listings each. Listings are skipped when the table already holds more
than 10000 rows.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedUsers < 0 {
			return fmt.Errorf("--users must not be negative")
		}
		e, closeFn, err := openEnv()
		if err != nil {
			return err
		}
		defer closeFn()

		ctx, cancel := context.WithTimeout(cmd.Context(), seed.Timeout)
		defer cancel()

		if !seedSkipMigrate {
			if err := repositories.Migrate(ctx, e.db, e.dialect); err != nil {
				return err
			}
		}

		s := seed.New(
			&repositories.RegionRepository{DB: e.db, Dialect: e.dialect},
			&repositories.CategoryRepository{DB: e.db, Dialect: e.dialect},
			&repositories.UserRepository{DB: e.db, Dialect: e.dialect},
			&repositories.AdvertisementRepository{DB: e.db, Dialect: e.dialect},
			e.log,
		)
		if err := s.Reference(ctx); err != nil {
			return err
		}
		if seedReferenceOnly {
			e.log.Info("reference data seeded")
			return nil
		}
		if err := s.Load(ctx, seedUsers); err != nil {
			return err
		}
		e.log.Info("seed complete", zap.Int("target_users", seedUsers))
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedUsers, "users", seed.DefaultUsers, "number of users to top the table up to")
	seedCmd.Flags().BoolVar(&seedReferenceOnly, "reference-only", false, "seed dictionaries and demo accounts only")
	seedCmd.Flags().BoolVar(&seedSkipMigrate, "skip-migrate", false, "do not create missing tables first")
}
