package seeder

import "jobboard/internal/config"

// Defaults returns the seeders run by the seed command, in order. The demo
// dataset is opt-in.
func Defaults(cfg config.SeedConfig, demo bool) []Seeder {
	out := []Seeder{
		SettingsSeeder{},
		AdminSeeder{Email: cfg.AdminEmail, Password: cfg.AdminPassword, DisplayName: cfg.AdminName},
	}
	if demo {
		out = append(out, DemoSeeder{})
	}
	return out
}
