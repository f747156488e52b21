package repository

import (
	"context"
	"database/sql"
	"errors"

	"jobboard/internal/database"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const userColumns = `id, full_name, email, phone_number, password_hash, role, status, bio, skills, created_at, updated_at`

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, u user.User) error {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	status := u.Status
	if status == "" {
		status = user.StatusActive
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, full_name, email, phone_number, password_hash, role, status, bio, skills)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.FullName, u.Email, u.PhoneNumber, u.PasswordHash, string(u.Role), string(status), u.Bio, skills,
	)
	if isUniqueViolation(err) {
		return user.ErrAlreadyExists
	}
	return err
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) UpdateUser(ctx context.Context, u user.User) error {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	n, err := r.db.Exec(ctx,
		`UPDATE users
		 SET full_name = $2, email = $3, phone_number = $4, password_hash = $5,
		     role = $6, status = $7, bio = $8, skills = $9, updated_at = now()
		 WHERE id = $1`,
		u.ID, u.FullName, u.Email, u.PhoneNumber, u.PasswordHash, string(u.Role), string(u.Status), u.Bio, skills,
	)
	if isUniqueViolation(err) {
		return user.ErrAlreadyExists
	}
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) ListUsers(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserRepository) CountByRole(ctx context.Context) (user.RoleCounts, error) {
	rows, err := r.db.Query(ctx, `SELECT role, COUNT(1) FROM users GROUP BY role`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := user.RoleCounts{}
	for _, role := range user.Roles {
		out[role] = 0
	}
	for rows.Next() {
		var role string
		var c int
		if err := rows.Scan(&role, &c); err != nil {
			return nil, err
		}
		out[user.Role(role)] = c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	var role, status string
	err := row.Scan(
		&u.ID, &u.FullName, &u.Email, &u.PhoneNumber, &u.PasswordHash,
		&role, &status, &u.Bio, &u.Skills, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.Role = user.Role(role)
	u.Status = user.Status(status)
	return u, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
