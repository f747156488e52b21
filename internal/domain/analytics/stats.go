// Package analytics turns point-in-time snapshots of users, jobs, companies and
// applications into the numbers shown on the admin dashboard. Every function is
// pure: callers pass the snapshot and the reference time explicitly.
package analytics

import (
	"math"
	"time"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/company"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
)

const (
	DefaultWindowDays = 30

	// UnknownKey collects records whose role or status is outside the known enumeration.
	UnknownKey = "unknown"
)

type CollectionStats struct {
	Total         int            `json:"total"`
	Breakdown     map[string]int `json:"breakdown"`
	GrowthPercent int            `json:"growth_percent"`
}

type Stats struct {
	Users        CollectionStats `json:"users"`
	Jobs         CollectionStats `json:"jobs"`
	Companies    CollectionStats `json:"companies"`
	Applications CollectionStats `json:"applications"`
}

func ComputeStats(
	users []user.User,
	jobs []job.Job,
	companies []company.Company,
	applications []application.Application,
	now time.Time,
	windowDays int,
) Stats {
	userRoles := make([]user.Role, 0, len(users))
	for _, u := range users {
		userRoles = append(userRoles, u.Role)
	}
	jobStatuses := make([]job.Status, 0, len(jobs))
	for _, j := range jobs {
		jobStatuses = append(jobStatuses, j.Status)
	}
	companyStatuses := make([]company.Status, 0, len(companies))
	for _, c := range companies {
		companyStatuses = append(companyStatuses, c.Status)
	}
	appStatuses := make([]application.Status, 0, len(applications))
	for _, a := range applications {
		appStatuses = append(appStatuses, a.Status)
	}

	return Stats{
		Users: CollectionStats{
			Total:         len(users),
			Breakdown:     breakdown(userRoles, user.Roles),
			GrowthPercent: Growth(UserTimes(users), now, windowDays),
		},
		Jobs: CollectionStats{
			Total:         len(jobs),
			Breakdown:     breakdown(jobStatuses, job.Statuses),
			GrowthPercent: Growth(JobTimes(jobs), now, windowDays),
		},
		Companies: CollectionStats{
			Total:         len(companies),
			Breakdown:     breakdown(companyStatuses, company.Statuses),
			GrowthPercent: Growth(CompanyTimes(companies), now, windowDays),
		},
		Applications: CollectionStats{
			Total:         len(applications),
			Breakdown:     breakdown(appStatuses, application.Statuses),
			GrowthPercent: Growth(ApplicationTimes(applications), now, windowDays),
		},
	}
}

// Growth compares records created inside the trailing window against records
// created before it: round((recent-older)/older*100). With no older records it
// is 100 when anything is recent and 0 otherwise.
func Growth(createdAts []time.Time, now time.Time, windowDays int) int {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	cutoff := now.Add(-time.Duration(windowDays) * 24 * time.Hour)

	recent, older := 0, 0
	for _, t := range createdAts {
		if t.Before(cutoff) {
			older++
			continue
		}
		recent++
	}

	if older == 0 {
		if recent > 0 {
			return 100
		}
		return 0
	}

	ratio := float64(recent-older) / float64(older) * 100
	// half-up, so -50.5 becomes -50 rather than -51
	return int(math.Floor(ratio + 0.5))
}

func breakdown[T ~string](values []T, known []T) map[string]int {
	out := make(map[string]int, len(known)+1)
	for _, k := range known {
		out[string(k)] = 0
	}
	for _, v := range values {
		if _, ok := out[string(v)]; ok && v != "" {
			out[string(v)]++
			continue
		}
		out[UnknownKey]++
	}
	return out
}

func UserTimes(users []user.User) []time.Time {
	out := make([]time.Time, 0, len(users))
	for _, u := range users {
		out = append(out, u.CreatedAt)
	}
	return out
}

func JobTimes(jobs []job.Job) []time.Time {
	out := make([]time.Time, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.CreatedAt)
	}
	return out
}

func CompanyTimes(companies []company.Company) []time.Time {
	out := make([]time.Time, 0, len(companies))
	for _, c := range companies {
		out = append(out, c.CreatedAt)
	}
	return out
}

func ApplicationTimes(applications []application.Application) []time.Time {
	out := make([]time.Time, 0, len(applications))
	for _, a := range applications {
		out = append(out, a.CreatedAt)
	}
	return out
}
