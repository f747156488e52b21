package repository

import (
	"context"
	"encoding/json"

	"jobboard/internal/database"
	"jobboard/internal/domain/settings"
)

type PostgresSettingsRepository struct {
	db database.DB
}

func NewPostgresSettingsRepository(db database.DB) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{db: db}
}

func (r *PostgresSettingsRepository) Load(ctx context.Context) (settings.Settings, error) {
	var payload []byte
	row := r.db.QueryRow(ctx, `SELECT payload FROM app_settings WHERE id = 1`)
	if err := row.Scan(&payload); err != nil {
		if isNoRows(err) {
			return settings.Settings{}, settings.ErrNotFound
		}
		return settings.Settings{}, err
	}

	// start from defaults so keys added after the row was written get a value
	s := settings.Defaults()
	if err := json.Unmarshal(payload, &s); err != nil {
		return settings.Settings{}, err
	}
	return s, nil
}

func (r *PostgresSettingsRepository) Save(ctx context.Context, s settings.Settings) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO app_settings (id, payload, updated_at) VALUES (1, $1, now())
		 ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
		payload,
	)
	return err
}
