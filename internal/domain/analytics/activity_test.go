package analytics

import (
	"testing"
	"time"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minutesAgo(n int) time.Time {
	return refNow.Add(-time.Duration(n) * time.Minute)
}

func TestFormatTimeAgo(t *testing.T) {
	tests := []struct {
		at   time.Time
		want string
	}{
		{at: refNow, want: "0 minutes ago"},
		{at: minutesAgo(2), want: "2 minutes ago"},
		{at: minutesAgo(59), want: "59 minutes ago"},
		{at: minutesAgo(60), want: "1 hours ago"},
		{at: minutesAgo(1439), want: "23 hours ago"},
		{at: minutesAgo(1440), want: "1 days ago"},
		{at: minutesAgo(10 * 1440), want: "10 days ago"},
		{at: refNow.Add(-90 * time.Second), want: "1 minutes ago"},
		{at: refNow.Add(time.Hour), want: "0 minutes ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTimeAgo(tt.at, refNow))
	}
}

func TestRecentActivity_SortsByTimestampNotText(t *testing.T) {
	users := []user.User{
		{FullName: "Ann", Role: user.RoleSeeker, CreatedAt: minutesAgo(10)},
	}
	jobs := []job.Job{
		{Title: "Go Developer", CreatedAt: minutesAgo(2)},
	}
	apps := []application.Application{
		{Job: &application.JobRef{Title: "Go Developer"}, CreatedAt: minutesAgo(3 * 60)},
	}

	got := RecentActivity(users, jobs, apps, refNow, 3, 8)

	require.Len(t, got, 3)
	assert.Equal(t, "New job posted - Go Developer", got[0].Message)
	assert.Equal(t, "2 minutes ago", got[0].TimeAgo)
	assert.Equal(t, "New seeker registered - Ann", got[1].Message)
	assert.Equal(t, "10 minutes ago", got[1].TimeAgo)
	assert.Equal(t, "New application for Go Developer", got[2].Message)
	assert.Equal(t, "3 hours ago", got[2].TimeAgo)
}

func TestRecentActivity_Limits(t *testing.T) {
	var users []user.User
	var jobs []job.Job
	var apps []application.Application
	for i := 0; i < 5; i++ {
		users = append(users, user.User{FullName: "u", Role: user.RoleRecruiter, CreatedAt: minutesAgo(i)})
		jobs = append(jobs, job.Job{Title: "j", CreatedAt: minutesAgo(10 + i)})
		apps = append(apps, application.Application{CreatedAt: minutesAgo(20 + i)})
	}

	got := RecentActivity(users, jobs, apps, refNow, 3, 8)

	require.Len(t, got, 8)
	perType := map[ActivityType]int{}
	for i, a := range got {
		perType[a.Type]++
		if i > 0 {
			assert.False(t, a.CreatedAt.After(got[i-1].CreatedAt), "non-increasing timestamps")
		}
	}
	assert.Equal(t, 3, perType[ActivityUser])
	assert.Equal(t, 3, perType[ActivityJob])
	assert.Equal(t, 2, perType[ActivityApplication])
	assert.Equal(t, "New application for Unknown Job", got[7].Message)
}

func TestRecentActivity_DoesNotMutateInput(t *testing.T) {
	users := []user.User{
		{FullName: "old", CreatedAt: minutesAgo(100)},
		{FullName: "new", CreatedAt: minutesAgo(1)},
	}

	got := RecentActivity(users, nil, nil, refNow, 1, 8)

	require.Len(t, got, 1)
	assert.Equal(t, "New user registered - new", got[0].Message)
	assert.Equal(t, "old", users[0].FullName)
}

func TestRecentActivity_Defaults(t *testing.T) {
	var jobs []job.Job
	for i := 0; i < 6; i++ {
		jobs = append(jobs, job.Job{CreatedAt: minutesAgo(i)})
	}
	got := RecentActivity(nil, jobs, nil, refNow, 0, 0)
	assert.Len(t, got, DefaultActivityPerCategory)
	assert.Equal(t, "New job posted - Unknown", got[0].Message)
}

func TestBuildReport(t *testing.T) {
	snap := Snapshot{
		Users: []user.User{{FullName: "Ann", Role: user.RoleSeeker, CreatedAt: minutesAgo(5)}},
		Jobs: []job.Job{
			{Title: "Go Developer", Company: &job.CompanyRef{Name: "Acme"}, CreatedAt: minutesAgo(30)},
		},
		Applications: []application.Application{
			{Job: &application.JobRef{Title: "Go Developer"}, CreatedAt: minutesAgo(1)},
		},
	}

	r := BuildReport(snap, refNow, Options{})

	assert.Equal(t, DefaultWindowDays, r.WindowDays)
	assert.Equal(t, []RankEntry{{Key: "Acme", Count: 1}}, r.TopCompanies)
	assert.Equal(t, []RankEntry{{Key: "Go Developer", Count: 1}}, r.TopJobs)
	assert.Len(t, r.Monthly.Users, 12)
	assert.Equal(t, 1, r.Monthly.Jobs[int(time.June)-1].Count)
	require.Len(t, r.RecentActivity, 3)
	assert.Equal(t, ActivityApplication, r.RecentActivity[0].Type)
	assert.Equal(t, refNow, r.GeneratedAt)

	assert.Equal(t, r, BuildReport(snap, refNow, Options{}))
}
