package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/application"

	"github.com/google/uuid"
)

const applicationSelect = `SELECT a.id, a.job_id, a.applicant_id, a.status, a.created_at, a.updated_at,
	j.title, j.created_by, c.name, u.full_name, u.email
	FROM applications a
	LEFT JOIN jobs j ON j.id = a.job_id
	LEFT JOIN companies c ON c.id = j.company_id
	LEFT JOIN users u ON u.id = a.applicant_id`

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

// CreateApplication locks the job row so concurrent applies to one job
// serialize, then inserts only while the job is under limit.
func (r *PostgresApplicationRepository) CreateApplication(ctx context.Context, a application.Application, limit int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `SELECT 1 FROM jobs WHERE id = $1 FOR UPDATE`, a.JobID); err != nil {
		return err
	}

	n, err := tx.Exec(ctx,
		`INSERT INTO applications (id, job_id, applicant_id, status)
		 SELECT $1::uuid, $2::uuid, $3::uuid, $4::text
		 WHERE $5::int <= 0 OR (SELECT COUNT(1) FROM applications WHERE job_id = $2::uuid) < $5::int`,
		a.ID, a.JobID, a.ApplicantID, string(a.Status), limit,
	)
	if isUniqueViolation(err) {
		return application.ErrAlreadyApplied
	}
	if err != nil {
		return err
	}
	if n == 0 {
		return application.ErrLimitReached
	}
	return tx.Commit(ctx)
}

func (r *PostgresApplicationRepository) GetApplicationByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx, applicationSelect+` WHERE a.id = $1`, id)
	return scanApplication(row)
}

func (r *PostgresApplicationRepository) ExistsForApplicant(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND applicant_id = $2)`,
		jobID, applicantID,
	)
	if err := row.Scan(&exists); err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) error {
	n, err := r.db.Exec(ctx, `UPDATE applications SET status = $2, updated_at = now() WHERE id = $1`, id, string(status))
	if err != nil {
		return err
	}
	if n == 0 {
		return application.ErrNotFound
	}
	return nil
}

func (r *PostgresApplicationRepository) DeleteApplication(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return application.ErrNotFound
	}
	return nil
}

func (r *PostgresApplicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]application.Application, error) {
	return r.queryApplications(ctx, applicationSelect+` WHERE a.applicant_id = $1 ORDER BY a.created_at DESC`, applicantID)
}

func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error) {
	return r.queryApplications(ctx, applicationSelect+` WHERE a.job_id = $1 ORDER BY a.created_at DESC`, jobID)
}

func (r *PostgresApplicationRepository) ListAllApplications(ctx context.Context) ([]application.Application, error) {
	return r.queryApplications(ctx, applicationSelect+` ORDER BY a.created_at DESC`)
}

func (r *PostgresApplicationRepository) queryApplications(ctx context.Context, q string, args ...any) ([]application.Application, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanApplication(row database.Row) (application.Application, error) {
	var a application.Application
	var status string
	var jobID, applicantID, jobOwner *uuid.UUID
	var jobTitle, companyName, fullName, email *string
	err := row.Scan(
		&a.ID, &jobID, &applicantID, &status, &a.CreatedAt, &a.UpdatedAt,
		&jobTitle, &jobOwner, &companyName, &fullName, &email,
	)
	if err != nil {
		if isNoRows(err) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	a.Status = application.Status(status)

	if jobID != nil {
		a.JobID = *jobID
		if jobTitle != nil {
			ref := &application.JobRef{ID: *jobID, Title: *jobTitle}
			if companyName != nil {
				ref.CompanyName = *companyName
			}
			if jobOwner != nil {
				ref.CreatedBy = *jobOwner
			}
			a.Job = ref
		}
	}
	if applicantID != nil {
		a.ApplicantID = *applicantID
		if fullName != nil || email != nil {
			ref := &application.UserRef{ID: *applicantID}
			if fullName != nil {
				ref.FullName = *fullName
			}
			if email != nil {
				ref.Email = *email
			}
			a.Applicant = ref
		}
	}
	return a, nil
}
