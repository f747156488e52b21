package repository

import (
	"context"
	"fmt"
	"strings"

	"jobboard/internal/database"
	"jobboard/internal/domain/job"

	"github.com/google/uuid"
)

// Jobs are always read with their company and application count resolved.
// A deleted company leaves company_id NULL and the LEFT JOIN yields no name.
const jobSelect = `SELECT j.id, j.title, j.description, j.requirements, j.salary::float8, j.location,
	j.job_type, j.experience_level, j.positions, j.status, j.company_id, j.created_by,
	c.name, (SELECT COUNT(1) FROM applications a WHERE a.job_id = j.id),
	j.created_at, j.updated_at
	FROM jobs j
	LEFT JOIN companies c ON c.id = j.company_id`

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) CreateJob(ctx context.Context, j job.Job) error {
	reqs := j.Requirements
	if reqs == nil {
		reqs = []string{}
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, title, description, requirements, salary, location, job_type,
		                   experience_level, positions, status, company_id, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		j.ID, j.Title, j.Description, reqs, j.Salary, j.Location, j.JobType,
		j.ExperienceLevel, j.Positions, string(j.Status), nullableUUID(j.CompanyID), nullableUUID(j.CreatedBy),
	)
	return err
}

func (r *PostgresJobRepository) GetJobByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx, jobSelect+` WHERE j.id = $1`, id)
	return scanJob(row)
}

func (r *PostgresJobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status job.Status) error {
	n, err := r.db.Exec(ctx, `UPDATE jobs SET status = $2, updated_at = now() WHERE id = $1`, id, string(status))
	if err != nil {
		return err
	}
	if n == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) DeleteJob(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) ListJobs(ctx context.Context, f job.ListFilter) ([]job.Job, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	where := make([]string, 0, 3)
	args := make([]any, 0, 5)
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(f.Keywords) > 0 {
		ors := make([]string, 0, len(f.Keywords))
		for _, kw := range f.Keywords {
			kw = strings.TrimSpace(kw)
			if kw == "" {
				continue
			}
			p := next("%" + kw + "%")
			ors = append(ors, "j.title ILIKE "+p+" OR j.description ILIKE "+p)
		}
		if len(ors) > 0 {
			where = append(where, "("+strings.Join(ors, " OR ")+")")
		}
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		where = append(where, "j.location ILIKE "+next("%"+loc+"%"))
	}
	if f.Status != "" {
		where = append(where, "j.status = "+next(string(f.Status)))
	}

	q := jobSelect
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY j.created_at DESC LIMIT " + next(limit) + " OFFSET " + next(offset)

	return r.queryJobs(ctx, q, args...)
}

func (r *PostgresJobRepository) ListAllJobs(ctx context.Context) ([]job.Job, error) {
	return r.queryJobs(ctx, jobSelect+` ORDER BY j.created_at DESC`)
}

func (r *PostgresJobRepository) queryJobs(ctx context.Context, q string, args ...any) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJob(row database.Row) (job.Job, error) {
	var j job.Job
	var status string
	var companyID, createdBy *uuid.UUID
	var companyName *string
	err := row.Scan(
		&j.ID, &j.Title, &j.Description, &j.Requirements, &j.Salary, &j.Location,
		&j.JobType, &j.ExperienceLevel, &j.Positions, &status, &companyID, &createdBy,
		&companyName, &j.ApplicationCount, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	j.Status = job.Status(status)
	if createdBy != nil {
		j.CreatedBy = *createdBy
	}
	if companyID != nil {
		j.CompanyID = *companyID
		if companyName != nil {
			j.Company = &job.CompanyRef{ID: *companyID, Name: *companyName}
		}
	}
	return j, nil
}
