package seeder

import (
	"context"
	"fmt"
	"time"

	"jobboard/internal/database"

	"github.com/google/uuid"
)

// DemoSeeder inserts a handful of active companies and jobs spread over the
// last months so the dashboard has something to chart.
type DemoSeeder struct{}

func (DemoSeeder) Name() string { return "demo" }

type demoJob struct {
	Title           string
	Location        string
	JobType         string
	ExperienceLevel string
	Salary          float64
	Description     string
	MonthsAgo       int
}

type demoCompany struct {
	Name     string
	Industry string
	Location string
	Website  string
	Jobs     []demoJob
}

var demoCompanies = []demoCompany{
	{
		Name:     "Northwind Labs",
		Industry: "Software",
		Location: "Jakarta, ID",
		Website:  "https://northwind.example.com",
		Jobs: []demoJob{
			{Title: "Backend Engineer (Go)", Location: "Jakarta, ID", JobType: "Full-time", ExperienceLevel: "Mid", Salary: 18000000, Description: "Build and maintain Go services, REST APIs, and PostgreSQL-backed systems.", MonthsAgo: 0},
			{Title: "Fullstack Engineer (React + Go)", Location: "Bandung, ID", JobType: "Full-time", ExperienceLevel: "Senior", Salary: 24000000, Description: "Develop web apps with React and backend services in Go.", MonthsAgo: 2},
		},
	},
	{
		Name:     "CloudKita",
		Industry: "Infrastructure",
		Location: "Remote",
		Website:  "https://cloudkita.example.com",
		Jobs: []demoJob{
			{Title: "DevOps Engineer", Location: "Remote", JobType: "Full-time", ExperienceLevel: "Mid", Salary: 20000000, Description: "Operate CI/CD, Docker, Kubernetes, and cloud infrastructure.", MonthsAgo: 1},
			{Title: "Site Reliability Engineer", Location: "Jakarta, ID", JobType: "Full-time", ExperienceLevel: "Senior", Salary: 26000000, Description: "Improve reliability and observability across distributed services.", MonthsAgo: 4},
		},
	},
	{
		Name:     "InsightWorks",
		Industry: "Data",
		Location: "Surabaya, ID",
		Website:  "https://insightworks.example.com",
		Jobs: []demoJob{
			{Title: "Data Engineer", Location: "Surabaya, ID", JobType: "Full-time", ExperienceLevel: "Mid", Salary: 17000000, Description: "Build data pipelines and tune PostgreSQL for analytics.", MonthsAgo: 3},
			{Title: "QA Automation Engineer", Location: "Remote", JobType: "Contract", ExperienceLevel: "Junior", Salary: 9000000, Description: "Write automated tests for APIs and web apps.", MonthsAgo: 5},
		},
	},
}

func (DemoSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "companies", "id", "name", "industry", "location", "website", "status", "created_at"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "jobs", "id", "title", "description", "salary", "location", "job_type", "experience_level", "status", "company_id", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	now := time.Now().UTC()
	for _, co := range demoCompanies {
		companyID, err := upsertDemoCompany(ctx, tx, co, now)
		if err != nil {
			return err
		}

		for _, j := range co.Jobs {
			createdAt := now.AddDate(0, -j.MonthsAgo, 0)
			_, err := tx.Exec(
				ctx,
				`INSERT INTO jobs (id, title, description, salary, location, job_type, experience_level, status, company_id, created_at, updated_at)
				 SELECT $1, $2, $3, $4, $5, $6, $7, 'active', $8, $9, $9
				 WHERE NOT EXISTS (SELECT 1 FROM jobs WHERE title = $2 AND company_id = $8)`,
				uuid.New(),
				j.Title,
				j.Description,
				j.Salary,
				j.Location,
				j.JobType,
				j.ExperienceLevel,
				companyID,
				createdAt,
			)
			if err != nil {
				return fmt.Errorf("insert job %s: %w", j.Title, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func upsertDemoCompany(ctx context.Context, tx database.Tx, co demoCompany, now time.Time) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(
		ctx,
		`INSERT INTO companies (id, name, industry, location, website, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, 'active', $6, $6)
		 ON CONFLICT (name) DO UPDATE SET updated_at = companies.updated_at
		 RETURNING id`,
		uuid.New(),
		co.Name,
		co.Industry,
		co.Location,
		co.Website,
		now,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("upsert company %s: %w", co.Name, err)
	}
	return id, nil
}
