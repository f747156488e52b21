package seeder

import (
	"context"
	"errors"

	"jobboard/internal/database"
	"jobboard/internal/domain/settings"
	"jobboard/internal/repository"
)

// SettingsSeeder writes the default settings row when none exists yet.
type SettingsSeeder struct{}

func (SettingsSeeder) Name() string { return "settings" }

func (SettingsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "app_settings", "id", "payload", "updated_at"); err != nil {
		return err
	}

	store := repository.NewPostgresSettingsRepository(db)
	_, err := store.Load(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, settings.ErrNotFound) {
		return err
	}
	return store.Save(ctx, settings.Defaults())
}
