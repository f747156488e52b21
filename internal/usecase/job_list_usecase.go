package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/search"

	"github.com/google/uuid"
)

type JobListParams struct {
	Keyword  string
	Location string
	Status   string
	Limit    int
	Offset   int
}

type JobListItem struct {
	JobID            uuid.UUID `json:"job_id"`
	Title            string    `json:"title"`
	CompanyName      string    `json:"company_name"`
	Location         string    `json:"location"`
	JobType          string    `json:"job_type"`
	ExperienceLevel  string    `json:"experience_level"`
	Salary           float64   `json:"salary"`
	Status           string    `json:"status"`
	ApplicationCount int       `json:"application_count"`
	CreatedAt        time.Time `json:"created_at"`
}

type JobListUsecase interface {
	ListJobs(ctx context.Context, params JobListParams) ([]JobListItem, error)
}

type JobList struct {
	jobs   job.Repository
	cache  Cache
	ttl    time.Duration
	logger *log.Logger
}

func NewJobListUsecase(jobs job.Repository, cache Cache, ttl time.Duration, logger *log.Logger) *JobList {
	return &JobList{jobs: jobs, cache: cache, ttl: ttl, logger: logger}
}

func (u *JobList) ListJobs(ctx context.Context, params JobListParams) ([]JobListItem, error) {
	limit := params.Limit
	if limit == 0 {
		limit = 20
	}
	if limit < 0 || limit > 50 {
		return nil, ErrInvalidInput
	}
	if params.Offset < 0 {
		return nil, ErrInvalidInput
	}
	params.Limit = limit

	// public listings default to active postings only
	status := job.StatusActive
	if strings.TrimSpace(params.Status) != "" {
		st, ok := job.ParseStatus(params.Status)
		if !ok {
			return nil, ErrInvalidInput
		}
		status = st
	}
	params.Status = string(status)

	cacheKey := JobsSearchCacheKey(params)
	lockKey := JobsSearchLockKey(cacheKey)

	if u.cache != nil {
		var cached []JobListItem
		hit, err := u.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && hit {
			u.logf("[Jobs] Cache HIT: %s", cacheKey)
			return cached, nil
		}
		u.logf("[Jobs] Cache MISS: %s", cacheKey)
	}

	lockAcquired := false
	if u.cache != nil {
		ok, err := u.cache.SetIfNotExists(ctx, lockKey, "1", 30*time.Second)
		if err == nil && ok {
			lockAcquired = true
			u.logf("[Jobs] Lock acquired: %s", lockKey)
		} else if err == nil {
			var cached []JobListItem
			if waitForCache(ctx, u.cache, cacheKey, &cached) {
				u.logf("[Jobs] Cache HIT: %s", cacheKey)
				return cached, nil
			}
			u.logf("[Jobs] Lock wait fallback: %s", lockKey)
		}
	}

	rows, err := u.jobs.ListJobs(ctx, job.ListFilter{
		Keywords: search.ProcessQuery(params.Keyword).Variants,
		Location: params.Location,
		Status:   status,
		Limit:    params.Limit,
		Offset:   params.Offset,
	})
	if err != nil {
		if lockAcquired {
			_ = u.cache.Delete(ctx, lockKey)
		}
		return nil, ErrInternal
	}

	out := make([]JobListItem, 0, len(rows))
	for _, j := range rows {
		out = append(out, JobListItem{
			JobID:            j.ID,
			Title:            j.Title,
			CompanyName:      j.CompanyName(),
			Location:         j.Location,
			JobType:          j.JobType,
			ExperienceLevel:  j.ExperienceLevel,
			Salary:           j.Salary,
			Status:           string(j.Status),
			ApplicationCount: j.ApplicationCount,
			CreatedAt:        j.CreatedAt,
		})
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, out, u.ttl); err == nil {
			u.logf("[Jobs] Cache SET: %s", cacheKey)
		}
		if lockAcquired {
			_ = u.cache.Delete(ctx, lockKey)
		}
	}
	return out, nil
}

func (u *JobList) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
