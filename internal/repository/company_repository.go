package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/company"

	"github.com/google/uuid"
)

const companyColumns = `id, name, description, website, location, industry, email, phone, status, owner_id, created_at, updated_at`

type PostgresCompanyRepository struct {
	db database.DB
}

func NewPostgresCompanyRepository(db database.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

func (r *PostgresCompanyRepository) CreateCompany(ctx context.Context, c company.Company) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO companies (id, name, description, website, location, industry, email, phone, status, owner_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.Name, c.Description, c.Website, c.Location, c.Industry, c.Email, c.Phone,
		string(c.Status), nullableUUID(c.OwnerID),
	)
	if isUniqueViolation(err) {
		return company.ErrAlreadyExists
	}
	return err
}

func (r *PostgresCompanyRepository) GetCompanyByID(ctx context.Context, id uuid.UUID) (company.Company, error) {
	row := r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	return scanCompany(row)
}

func (r *PostgresCompanyRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM companies WHERE lower(name) = lower($1))`, name)
	if err := row.Scan(&exists); err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}

func (r *PostgresCompanyRepository) UpdateCompany(ctx context.Context, c company.Company) error {
	n, err := r.db.Exec(ctx,
		`UPDATE companies
		 SET name = $2, description = $3, website = $4, location = $5, industry = $6,
		     email = $7, phone = $8, updated_at = now()
		 WHERE id = $1`,
		c.ID, c.Name, c.Description, c.Website, c.Location, c.Industry, c.Email, c.Phone,
	)
	if isUniqueViolation(err) {
		return company.ErrAlreadyExists
	}
	if err != nil {
		return err
	}
	if n == 0 {
		return company.ErrNotFound
	}
	return nil
}

func (r *PostgresCompanyRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status company.Status) error {
	n, err := r.db.Exec(ctx, `UPDATE companies SET status = $2, updated_at = now() WHERE id = $1`, id, string(status))
	if err != nil {
		return err
	}
	if n == 0 {
		return company.ErrNotFound
	}
	return nil
}

func (r *PostgresCompanyRepository) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return company.ErrNotFound
	}
	return nil
}

func (r *PostgresCompanyRepository) ListCompanies(ctx context.Context) ([]company.Company, error) {
	rows, err := r.db.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]company.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanCompany(row database.Row) (company.Company, error) {
	var c company.Company
	var status string
	var owner *uuid.UUID
	err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.Website, &c.Location, &c.Industry,
		&c.Email, &c.Phone, &status, &owner, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return company.Company{}, company.ErrNotFound
		}
		return company.Company{}, err
	}
	c.Status = company.Status(status)
	if owner != nil {
		c.OwnerID = *owner
	}
	return c, nil
}

func nullableUUID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
