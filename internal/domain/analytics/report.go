package analytics

import (
	"time"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/company"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
)

// Snapshot holds the four collections read at (roughly) the same moment.
type Snapshot struct {
	Users        []user.User
	Jobs         []job.Job
	Companies    []company.Company
	Applications []application.Application
}

type Options struct {
	WindowDays          int
	TopN                int
	ActivityPerCategory int
	ActivityTotal       int
	Year                int
}

func DefaultOptions() Options {
	return Options{
		WindowDays:          DefaultWindowDays,
		TopN:                DefaultTopN,
		ActivityPerCategory: DefaultActivityPerCategory,
		ActivityTotal:       DefaultActivityTotal,
		Year:                AllTime,
	}
}

type MonthlySeries struct {
	Users        []MonthCount `json:"users"`
	Jobs         []MonthCount `json:"jobs"`
	Applications []MonthCount `json:"applications"`
}

type Report struct {
	Stats          Stats         `json:"stats"`
	Monthly        MonthlySeries `json:"monthly"`
	TopCompanies   []RankEntry   `json:"top_companies"`
	TopJobs        []RankEntry   `json:"top_jobs"`
	RecentActivity []Activity    `json:"recent_activity"`
	WindowDays     int           `json:"window_days"`
	Year           int           `json:"year"`
	GeneratedAt    time.Time     `json:"generated_at"`
}

func BuildReport(s Snapshot, now time.Time, opts Options) Report {
	if opts.WindowDays <= 0 {
		opts.WindowDays = DefaultWindowDays
	}
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}

	return Report{
		Stats: ComputeStats(s.Users, s.Jobs, s.Companies, s.Applications, now, opts.WindowDays),
		Monthly: MonthlySeries{
			Users:        MonthlyBuckets(UserTimes(s.Users), opts.Year),
			Jobs:         MonthlyBuckets(JobTimes(s.Jobs), opts.Year),
			Applications: MonthlyBuckets(ApplicationTimes(s.Applications), opts.Year),
		},
		TopCompanies:   TopN(s.Jobs, job.Job.CompanyName, opts.TopN),
		TopJobs:        TopN(s.Applications, application.Application.JobTitle, opts.TopN),
		RecentActivity: RecentActivity(s.Users, s.Jobs, s.Applications, now, opts.ActivityPerCategory, opts.ActivityTotal),
		WindowDays:     opts.WindowDays,
		Year:           opts.Year,
		GeneratedAt:    now,
	}
}
