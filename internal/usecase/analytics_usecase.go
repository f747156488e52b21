package usecase

import (
	"context"
	"log"
	"time"

	"jobboard/internal/domain/analytics"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/company"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/settings"
	"jobboard/internal/domain/user"

	"golang.org/x/sync/errgroup"
)

type userLister interface {
	ListUsers(ctx context.Context) ([]user.User, error)
}

type jobLister interface {
	ListAllJobs(ctx context.Context) ([]job.Job, error)
}

type companyLister interface {
	ListCompanies(ctx context.Context) ([]company.Company, error)
}

type applicationLister interface {
	ListAllApplications(ctx context.Context) ([]application.Application, error)
}

type SettingsProvider interface {
	Get() settings.Settings
}

// DashboardQuery overrides the settings-driven window and selects the year for
// the monthly series. Zero values keep the defaults.
type DashboardQuery struct {
	WindowDays int
	Year       int
}

type AnalyticsUsecase interface {
	Dashboard(ctx context.Context, q DashboardQuery) (analytics.Report, error)
}

type AnalyticsConfig struct {
	CacheTTL     time.Duration
	FetchTimeout time.Duration
}

type Analytics struct {
	users        userLister
	jobs         jobLister
	companies    companyLister
	applications applicationLister
	settings     SettingsProvider
	cache        Cache
	cfg          AnalyticsConfig
	logger       *log.Logger

	now   func() time.Time
	build func(analytics.Snapshot, time.Time, analytics.Options) analytics.Report
}

func NewAnalyticsUsecase(
	users userLister,
	jobs jobLister,
	companies companyLister,
	applications applicationLister,
	settings SettingsProvider,
	cache Cache,
	cfg AnalyticsConfig,
	logger *log.Logger,
) *Analytics {
	return &Analytics{
		users:        users,
		jobs:         jobs,
		companies:    companies,
		applications: applications,
		settings:     settings,
		cache:        cache,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
		build:        analytics.BuildReport,
	}
}

// WithClock replaces the wall clock used as the report's "now".
func (u *Analytics) WithClock(now func() time.Time) *Analytics {
	if now != nil {
		u.now = now
	}
	return u
}

func (u *Analytics) Dashboard(ctx context.Context, q DashboardQuery) (analytics.Report, error) {
	if q.WindowDays < 0 || q.WindowDays > 365 || q.Year < 0 || q.Year > 9999 {
		return analytics.Report{}, ErrInvalidInput
	}

	opts := u.options(q)
	cacheKey := AnalyticsReportCacheKey(opts.WindowDays, opts.Year)
	lockKey := AnalyticsLockKey(cacheKey)

	if u.cache != nil {
		var cached analytics.Report
		hit, err := u.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && hit {
			u.logf("[Analytics] Cache HIT: %s", cacheKey)
			return cached, nil
		}
		u.logf("[Analytics] Cache MISS: %s", cacheKey)
	}

	lockAcquired := false
	if u.cache != nil {
		ok, err := u.cache.SetIfNotExists(ctx, lockKey, "1", 30*time.Second)
		if err == nil && ok {
			lockAcquired = true
		} else if err == nil {
			var cached analytics.Report
			if waitForCache(ctx, u.cache, cacheKey, &cached) {
				u.logf("[Analytics] Cache HIT: %s", cacheKey)
				return cached, nil
			}
		}
	}
	release := func() {
		if lockAcquired {
			_ = u.cache.Delete(ctx, lockKey)
		}
	}

	snap, err := u.fetch(ctx)
	if err != nil {
		release()
		u.logf("[Analytics] fetch failed: %v", err)
		return analytics.Report{}, ErrInternal
	}

	start := time.Now()
	report := u.build(snap, u.now(), opts)
	u.logf("[Analytics] report built users=%d jobs=%d companies=%d applications=%d took=%s",
		len(snap.Users), len(snap.Jobs), len(snap.Companies), len(snap.Applications), time.Since(start))

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, report, u.cfg.CacheTTL); err == nil {
			u.logf("[Analytics] Cache SET: %s", cacheKey)
		}
	}
	release()
	return report, nil
}

func (u *Analytics) options(q DashboardQuery) analytics.Options {
	opts := analytics.DefaultOptions()
	if u.settings != nil {
		s := u.settings.Get()
		opts.WindowDays = s.AnalyticsWindowDays
		opts.TopN = s.AnalyticsTopN
		opts.ActivityPerCategory = s.AnalyticsActivityPerCategory
		opts.ActivityTotal = s.AnalyticsActivityTotal
	}
	if q.WindowDays > 0 {
		opts.WindowDays = q.WindowDays
	}
	if opts.WindowDays <= 0 {
		opts.WindowDays = analytics.DefaultWindowDays
	}
	opts.Year = q.Year
	return opts
}

// fetch reads the four collections concurrently. Any failure cancels the rest
// and no partial snapshot is returned.
func (u *Analytics) fetch(ctx context.Context) (analytics.Snapshot, error) {
	if u.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.cfg.FetchTimeout)
		defer cancel()
	}

	var snap analytics.Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := u.users.ListUsers(gctx)
		snap.Users = v
		return err
	})
	g.Go(func() error {
		v, err := u.jobs.ListAllJobs(gctx)
		snap.Jobs = v
		return err
	})
	g.Go(func() error {
		v, err := u.companies.ListCompanies(gctx)
		snap.Companies = v
		return err
	})
	g.Go(func() error {
		v, err := u.applications.ListAllApplications(gctx)
		snap.Applications = v
		return err
	})
	if err := g.Wait(); err != nil {
		return analytics.Snapshot{}, err
	}
	return snap, nil
}

func (u *Analytics) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
