package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/config"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  runServe,
}

var migrateOnStart bool

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply pending migrations before serving")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if migrateOnStart {
		if err := migrate(ctx, cfg); err != nil {
			return err
		}
	}

	bootstrap, cleanup, err := app.Bootstrap(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Printf("cleanup error: %v", err)
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		return err
	}

	go app.RunJobExpiry(ctx, bootstrap.Container.Jobs, cfg.App.JobExpiryInterval, bootstrap.Container.Logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- bootstrap.Fiber.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := bootstrap.Fiber.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
	return nil
}
