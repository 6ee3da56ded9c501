package main

import (
	"advertBack/internal/repositories"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the schema if it does not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, closeFn, err := openEnv()
		if err != nil {
			return err
		}
		defer closeFn()

		if err := repositories.Migrate(cmd.Context(), e.db, e.dialect); err != nil {
			return err
		}
		e.log.Info("schema ready", zap.String("dialect", e.dialect.String()))
		return nil
	},
}
