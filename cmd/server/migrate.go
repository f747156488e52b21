package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/config"
	"jobboard/internal/database/migration"

	"github.com/spf13/cobra"
)

var migrateStatus bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending SQL migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if migrateStatus {
			return printMigrationStatus(cmd, cfg)
		}
		return migrate(cmd.Context(), cfg)
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateStatus, "status", false, "list migrations and whether they are applied")
}

func migrate(ctx context.Context, cfg config.Config) error {
	c, err := app.NewContainer(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = c.Close()
	}()

	migCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	r := migration.Runner{Dir: cfg.App.MigrationsDir, Logger: log.Default()}
	return r.Run(migCtx, c.DB.SQLDB())
}

func printMigrationStatus(cmd *cobra.Command, cfg config.Config) error {
	c, err := app.NewContainer(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = c.Close()
	}()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	states, err := migration.Runner{Dir: cfg.App.MigrationsDir}.Status(ctx, c.DB.SQLDB())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, st := range states {
		applied := "pending"
		if st.AppliedAt != nil {
			applied = st.AppliedAt.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(out, "V%-4d %-32s %s\n", st.Version, st.Name, applied)
	}
	return nil
}
