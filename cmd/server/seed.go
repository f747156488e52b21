package main

import (
	"context"
	"log"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/config"
	"jobboard/internal/database/seeder"

	"github.com/spf13/cobra"
)

var seedDemo bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed default settings, the admin account and optional demo data",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		c, err := app.NewContainer(cfg)
		if err != nil {
			return err
		}
		defer func() {
			_ = c.Close()
		}()

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		r := seeder.Runner{Seeders: seeder.Defaults(cfg.Seed, seedDemo)}
		if err := r.Run(ctx, c.DB); err != nil {
			return err
		}
		log.Printf("[Seeder] done | demo=%t", seedDemo)
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedDemo, "demo", false, "also insert demo companies and jobs")
}
