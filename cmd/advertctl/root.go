package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"advertBack/internal/config"
	"advertBack/internal/logger"
	"advertBack/internal/repositories"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "advertctl",
	Short: "Maintenance commands for the advertisement service",
	Long: `advertctl prepares the advertisement database.

  advertctl migrate               # create tables
  advertctl seed                  # reference data plus 5000 generated sellers
  advertctl seed --reference-only # regions, categories and demo accounts only`,
	SilenceUsage: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the YAML config file")
	rootCmd.AddCommand(migrateCmd, seedCmd)
}

// env bundles what every subcommand needs.
type env struct {
	cfg     config.Config
	log     *zap.Logger
	db      *sql.DB
	dialect repositories.Dialect
}

func openEnv() (*env, func(), error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		return nil, nil, err
	}
	restore := logger.Install(log)

	db, err := repositories.OpenDB(cfg.Database.Driver, cfg.Database.URL, cfg.Database.MaxIdleConns, cfg.Database.MaxOpenConns)
	if err != nil {
		restore()
		return nil, nil, err
	}

	closeFn := func() {
		_ = db.Close()
		restore()
		_ = log.Sync()
	}
	return &env{cfg: cfg, log: log, db: db, dialect: repositories.DialectFor(cfg.Database.Driver)}, closeFn, nil
}
