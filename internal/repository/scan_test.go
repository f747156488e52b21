package repository

import (
	"context"
	"testing"
	"time"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scanAt = time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)

func jobRow(companyID, companyName any) valuesRow {
	return valuesRow{values: []any{
		uuid.New(), "Go Dev", "Build APIs", []string{"go", "sql"}, 1500.0, "Remote",
		"full-time", "mid", 2, "active", companyID, uuid.New(),
		companyName, 4, scanAt, scanAt,
	}}
}

func TestScanJob_ResolvesCompany(t *testing.T) {
	companyID := uuid.New()

	j, err := scanJob(jobRow(companyID, "Acme"))
	require.NoError(t, err)
	require.NotNil(t, j.Company)
	assert.Equal(t, companyID, j.CompanyID)
	assert.Equal(t, "Acme", j.CompanyName())
	assert.Equal(t, job.StatusActive, j.Status)
	assert.Equal(t, 4, j.ApplicationCount)
	assert.Equal(t, []string{"go", "sql"}, j.Requirements)
}

func TestScanJob_UnresolvedCompany(t *testing.T) {
	cases := []struct {
		name        string
		companyID   any
		companyName any
	}{
		{"company deleted", nil, nil},
		{"company row missing", uuid.New(), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			j, err := scanJob(jobRow(tc.companyID, tc.companyName))
			require.NoError(t, err)
			assert.Nil(t, j.Company)
			assert.Equal(t, "", j.CompanyName())
			assert.Equal(t, "Go Dev", j.Title)
		})
	}
}

func TestScanJob_NoRows(t *testing.T) {
	_, err := scanJob(valuesRow{err: pgx.ErrNoRows})
	assert.ErrorIs(t, err, job.ErrNotFound)
}

func applicationRow(jobID, applicantID, title, owner, companyName, fullName, email any) valuesRow {
	return valuesRow{values: []any{
		uuid.New(), jobID, applicantID, "interviewing", scanAt, scanAt,
		title, owner, companyName, fullName, email,
	}}
}

func TestScanApplication_Resolved(t *testing.T) {
	jobID, applicantID, owner := uuid.New(), uuid.New(), uuid.New()

	a, err := scanApplication(applicationRow(jobID, applicantID, "Go Dev", owner, "Acme", "Ann Lee", "ann@x.io"))
	require.NoError(t, err)
	assert.Equal(t, application.StatusInterviewing, a.Status)
	require.NotNil(t, a.Job)
	assert.Equal(t, application.JobRef{ID: jobID, Title: "Go Dev", CompanyName: "Acme", CreatedBy: owner}, *a.Job)
	require.NotNil(t, a.Applicant)
	assert.Equal(t, "Ann Lee", a.Applicant.FullName)
	assert.Equal(t, "Go Dev", a.JobTitle())
}

func TestScanApplication_DanglingReferences(t *testing.T) {
	a, err := scanApplication(applicationRow(nil, nil, nil, nil, nil, nil, nil))
	require.NoError(t, err)
	assert.Nil(t, a.Job)
	assert.Nil(t, a.Applicant)
	assert.Equal(t, uuid.Nil, a.JobID)
	assert.Equal(t, "", a.JobTitle())

	// ids survive but the joined rows are gone
	jobID, applicantID := uuid.New(), uuid.New()
	a, err = scanApplication(applicationRow(jobID, applicantID, nil, nil, nil, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, jobID, a.JobID)
	assert.Equal(t, applicantID, a.ApplicantID)
	assert.Nil(t, a.Job)
	assert.Nil(t, a.Applicant)
}

func TestListAllApplications_KeepsUnresolvedRows(t *testing.T) {
	db := &fakeDB{rows: []valuesRow{
		applicationRow(uuid.New(), uuid.New(), "Go Dev", uuid.New(), nil, "Ann", nil),
		applicationRow(nil, nil, nil, nil, nil, nil, nil),
	}}

	got, err := NewPostgresApplicationRepository(db).ListAllApplications(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "", got[0].Job.CompanyName)
	assert.Equal(t, "", got[0].Applicant.Email)
	assert.Nil(t, got[1].Job)
	assert.Contains(t, db.lastQuery, "LEFT JOIN jobs")
}

func TestGetApplicationByID_NotFound(t *testing.T) {
	db := &fakeDB{row: valuesRow{err: pgx.ErrNoRows}}

	_, err := NewPostgresApplicationRepository(db).GetApplicationByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, application.ErrNotFound)
}
