package usecase

import (
	"context"
	"encoding/json"
	"path"
	"sync"
	"time"

	"jobboard/internal/domain/analytics"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/company"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/settings"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	gets    int
	sets    int
	deleted []string
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.sets++
	c.data[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, pattern)
	for k := range c.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *memCache) SetIfNotExists(_ context.Context, key string, value string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; ok {
		return false, nil
	}
	c.data[key] = []byte(value)
	return true, nil
}

type fakeJobRepo struct {
	job.Repository
	items      []job.Job
	err        error
	lastFilter job.ListFilter
	calls      int
}

func (f *fakeJobRepo) ListJobs(_ context.Context, flt job.ListFilter) ([]job.Job, error) {
	f.calls++
	f.lastFilter = flt
	return f.items, f.err
}

func (f *fakeJobRepo) ListAllJobs(context.Context) ([]job.Job, error) {
	f.calls++
	return f.items, f.err
}

type fakeUsers struct {
	items []user.User
	err   error
}

func (f fakeUsers) ListUsers(context.Context) ([]user.User, error) { return f.items, f.err }

type fakeCompanies struct {
	items []company.Company
	err   error
}

func (f fakeCompanies) ListCompanies(context.Context) ([]company.Company, error) {
	return f.items, f.err
}

type fakeApplications struct {
	items []application.Application
	err   error
}

func (f fakeApplications) ListAllApplications(context.Context) ([]application.Application, error) {
	return f.items, f.err
}

type staticSettings settings.Settings

func (s staticSettings) Get() settings.Settings { return settings.Settings(s) }

type recordingHub struct {
	got []analytics.Activity
}

func (h *recordingHub) BroadcastActivity(a analytics.Activity) { h.got = append(h.got, a) }

func companyRef(name string) *job.CompanyRef {
	return &job.CompanyRef{ID: uuid.New(), Name: name}
}
