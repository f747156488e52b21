package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

const (
	DefaultActivityPerCategory = 3
	DefaultActivityTotal       = 8
)

type ActivityType string

const (
	ActivityUser        ActivityType = "user"
	ActivityJob         ActivityType = "job"
	ActivityApplication ActivityType = "application"
)

type Activity struct {
	Type      ActivityType `json:"type"`
	SubjectID uuid.UUID    `json:"subject_id"`
	Message   string       `json:"message"`
	TimeAgo   string       `json:"time_ago"`
	CreatedAt time.Time    `json:"created_at"`
}

// RecentActivity picks the newest perCategory records from each source, merges
// them newest first and keeps at most total entries. Equal timestamps keep the
// user, job, application source order.
func RecentActivity(
	users []user.User,
	jobs []job.Job,
	applications []application.Application,
	now time.Time,
	perCategory, total int,
) []Activity {
	if perCategory <= 0 {
		perCategory = DefaultActivityPerCategory
	}
	if total <= 0 {
		total = DefaultActivityTotal
	}

	out := make([]Activity, 0, 3*perCategory)

	for _, u := range newest(users, func(u user.User) time.Time { return u.CreatedAt }, perCategory) {
		out = append(out, UserActivity(u, now))
	}
	for _, j := range newest(jobs, func(j job.Job) time.Time { return j.CreatedAt }, perCategory) {
		out = append(out, JobActivity(j, now))
	}
	for _, a := range newest(applications, func(a application.Application) time.Time { return a.CreatedAt }, perCategory) {
		out = append(out, ApplicationActivity(a, now))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if len(out) > total {
		out = out[:total]
	}
	return out
}

func UserActivity(u user.User, now time.Time) Activity {
	role := strings.ToLower(strings.TrimSpace(string(u.Role)))
	if role == "" {
		role = "user"
	}
	return Activity{
		Type:      ActivityUser,
		SubjectID: u.ID,
		Message:   fmt.Sprintf("New %s registered - %s", role, orDefault(u.FullName, "Unknown")),
		TimeAgo:   FormatTimeAgo(u.CreatedAt, now),
		CreatedAt: u.CreatedAt,
	}
}

func JobActivity(j job.Job, now time.Time) Activity {
	return Activity{
		Type:      ActivityJob,
		SubjectID: j.ID,
		Message:   "New job posted - " + orDefault(j.Title, "Unknown"),
		TimeAgo:   FormatTimeAgo(j.CreatedAt, now),
		CreatedAt: j.CreatedAt,
	}
}

func ApplicationActivity(a application.Application, now time.Time) Activity {
	return Activity{
		Type:      ActivityApplication,
		SubjectID: a.ID,
		Message:   "New application for " + orDefault(a.JobTitle(), "Unknown Job"),
		TimeAgo:   FormatTimeAgo(a.CreatedAt, now),
		CreatedAt: a.CreatedAt,
	}
}

// FormatTimeAgo renders now-createdAt as whole minutes under an hour, whole
// hours under a day, and whole days otherwise.
func FormatTimeAgo(createdAt, now time.Time) string {
	mins := int64(now.Sub(createdAt) / time.Minute)
	if mins < 0 {
		mins = 0
	}
	switch {
	case mins < 60:
		return fmt.Sprintf("%d minutes ago", mins)
	case mins < 1440:
		return fmt.Sprintf("%d hours ago", mins/60)
	default:
		return fmt.Sprintf("%d days ago", mins/1440)
	}
}

// newest returns up to n records ordered by timestamp descending without
// touching the caller's slice.
func newest[T any](records []T, at func(T) time.Time, n int) []T {
	cp := make([]T, len(records))
	copy(cp, records)
	sort.SliceStable(cp, func(i, j int) bool {
		return at(cp[i]).After(at(cp[j]))
	})
	if len(cp) > n {
		cp = cp[:n]
	}
	return cp
}

func orDefault(s, def string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return s
}
