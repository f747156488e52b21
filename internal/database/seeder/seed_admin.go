package seeder

import (
	"context"
	"fmt"
	"strings"

	"jobboard/internal/database"
	ucauth "jobboard/internal/usecase/auth"

	"github.com/google/uuid"
)

// AdminSeeder creates the bootstrap administrator. It is a no-op when no
// email is configured or the account already exists.
type AdminSeeder struct {
	Email       string
	Password    string
	DisplayName string
}

func (AdminSeeder) Name() string { return "admin" }

func (s AdminSeeder) Run(ctx context.Context, db database.DB) error {
	email := ucauth.NormalizeEmail(s.Email)
	if email == "" {
		return nil
	}
	if !ucauth.IsValidPassword(s.Password) {
		return fmt.Errorf("admin password must be at least 8 characters")
	}
	if err := EnsureTableColumns(ctx, db, "users", "id", "full_name", "email", "password_hash", "role", "status"); err != nil {
		return err
	}

	hash, err := ucauth.HashPassword(s.Password)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(s.DisplayName)
	if name == "" {
		name = "Administrator"
	}

	_, err = db.Exec(
		ctx,
		`INSERT INTO users (id, full_name, email, password_hash, role, status)
		 VALUES ($1, $2, $3, $4, 'admin', 'active')
		 ON CONFLICT (email) DO NOTHING`,
		uuid.New(),
		name,
		email,
		hash,
	)
	return err
}
