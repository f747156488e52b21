package handler

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/analytics"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/policy"
	"jobboard/internal/domain/settings"
	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"
	jobuc "jobboard/internal/usecase/job"
	settingsuc "jobboard/internal/usecase/settings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJobList struct {
	got   usecase.JobListParams
	items []usecase.JobListItem
	err   error
}

func (f *fakeJobList) ListJobs(ctx context.Context, params usecase.JobListParams) ([]usecase.JobListItem, error) {
	f.got = params
	return f.items, f.err
}

type fakeJobs struct {
	JobUsecase
	posted jobuc.PostInput
	actor  policy.Subject
	err    error
}

func (f *fakeJobs) Post(ctx context.Context, actor policy.Subject, in jobuc.PostInput) (job.Job, error) {
	f.actor = actor
	f.posted = in
	if f.err != nil {
		return job.Job{}, f.err
	}
	return job.Job{ID: uuid.New(), Title: in.Title, Status: job.StatusPending}, nil
}

func (f *fakeJobs) Get(ctx context.Context, id uuid.UUID) (job.Job, error) {
	return job.Job{}, jobuc.ErrNotFound
}

type fakeSettings struct {
	current settings.Settings
	saved   *settings.Settings
}

func (f *fakeSettings) Get() settings.Settings { return f.current }

func (f *fakeSettings) Update(ctx context.Context, next settings.Settings) (settings.Settings, error) {
	if err := next.Validate(); err != nil {
		return settings.Settings{}, settingsuc.ErrInvalidInput
	}
	f.saved = &next
	f.current = next
	return next, nil
}

func (f *fakeSettings) Reset(ctx context.Context) (settings.Settings, error) {
	f.current = settings.Defaults()
	return f.current, nil
}

func newHandlerApp(actor *policy.Subject) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())
	if actor != nil {
		app.Use(func(c fiber.Ctx) error {
			c.Locals(middleware.CtxUserIDKey, actor.UserID)
			c.Locals(middleware.CtxRoleKey, actor.Role)
			return c.Next()
		})
	}
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (int, response.Envelope) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := app.Test(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var out response.Envelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return res.StatusCode, out
}

func TestListJobsPassesQuery(t *testing.T) {
	list := &fakeJobList{items: []usecase.JobListItem{{Title: "Go Dev"}}}
	app := newHandlerApp(nil)
	NewJobsHandler(list, &fakeJobs{}).RegisterPublicRoutes(app.Group("/jobs"))

	status, body := doJSON(t, app, http.MethodGet, "/jobs?keyword=go&location=Jakarta&limit=10&offset=5", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "go", list.got.Keyword)
	assert.Equal(t, "Jakarta", list.got.Location)
	assert.Equal(t, 10, list.got.Limit)
	assert.Equal(t, 5, list.got.Offset)

	items, ok := body.Data.([]any)
	require.True(t, ok)
	assert.Len(t, items, 1)
}

func TestListJobsRejectsBadLimit(t *testing.T) {
	app := newHandlerApp(nil)
	NewJobsHandler(&fakeJobList{}, &fakeJobs{}).RegisterPublicRoutes(app.Group("/jobs"))

	status, _ := doJSON(t, app, http.MethodGet, "/jobs?limit=abc", "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	app = newHandlerApp(nil)
	NewJobsHandler(&fakeJobList{err: usecase.ErrInvalidInput}, &fakeJobs{}).RegisterPublicRoutes(app.Group("/jobs"))
	status, _ = doJSON(t, app, http.MethodGet, "/jobs?limit=500", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestGetJobNotFound(t *testing.T) {
	app := newHandlerApp(nil)
	NewJobsHandler(&fakeJobList{}, &fakeJobs{}).RegisterPublicRoutes(app.Group("/jobs"))

	status, body := doJSON(t, app, http.MethodGet, "/jobs/"+uuid.NewString(), "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Job not found", body.Message)

	status, _ = doJSON(t, app, http.MethodGet, "/jobs/not-a-uuid", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestPostJobValidationAndDenial(t *testing.T) {
	actor := policy.Subject{UserID: uuid.New(), Role: user.RoleRecruiter}
	jobs := &fakeJobs{}
	app := newHandlerApp(&actor)
	NewJobsHandler(&fakeJobList{}, jobs).RegisterRoutes(app.Group("/jobs"))

	status, body := doJSON(t, app, http.MethodPost, "/jobs", `{"title":""}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "Validation failed", body.Message)

	companyID := uuid.New()
	status, _ = doJSON(t, app, http.MethodPost, "/jobs", `{"title":"Go Dev","company_id":"`+companyID.String()+`","salary":1000}`)
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, companyID, jobs.posted.CompanyID)
	assert.Equal(t, actor, jobs.actor)

	jobs.err = usecase.Denied(policy.Deny("not the owner of this resource"))
	status, body = doJSON(t, app, http.MethodPost, "/jobs", `{"title":"Go Dev","company_id":"`+companyID.String()+`"}`)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "not the owner of this resource", body.Message)
}

func TestPostJobRequiresSubject(t *testing.T) {
	app := newHandlerApp(nil)
	NewJobsHandler(&fakeJobList{}, &fakeJobs{}).RegisterRoutes(app.Group("/jobs"))

	status, _ := doJSON(t, app, http.MethodPost, "/jobs", `{"title":"Go Dev"}`)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAdminUpdateSettingsMergesBody(t *testing.T) {
	actor := policy.Subject{UserID: uuid.New(), Role: user.RoleAdmin}
	st := &fakeSettings{current: settings.Defaults()}
	app := newHandlerApp(&actor)
	NewAdminHandler(nil, nil, nil, nil, nil, st).RegisterRoutes(app.Group("/admin"))

	status, _ := doJSON(t, app, http.MethodPut, "/admin/settings", `{"allow_registration":false,"analytics_top_n":10}`)
	assert.Equal(t, fiber.StatusOK, status)
	require.NotNil(t, st.saved)
	assert.False(t, st.saved.AllowRegistration)
	assert.Equal(t, 10, st.saved.AnalyticsTopN)
	assert.Equal(t, settings.Defaults().SiteName, st.saved.SiteName)

	status, _ = doJSON(t, app, http.MethodPost, "/admin/settings/reset", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, st.current.AllowRegistration)
}

type fakeAnalytics struct {
	got usecase.DashboardQuery
	err error
}

func (f *fakeAnalytics) Dashboard(ctx context.Context, q usecase.DashboardQuery) (analytics.Report, error) {
	f.got = q
	return analytics.Report{WindowDays: q.WindowDays, Year: q.Year}, f.err
}

func TestAdminAnalyticsQuery(t *testing.T) {
	actor := policy.Subject{UserID: uuid.New(), Role: user.RoleAdmin}
	an := &fakeAnalytics{}
	app := newHandlerApp(&actor)
	NewAdminHandler(nil, nil, nil, nil, an, nil).RegisterRoutes(app.Group("/admin"))

	status, _ := doJSON(t, app, http.MethodGet, "/admin/analytics?window=7&year=2024", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, usecase.DashboardQuery{WindowDays: 7, Year: 2024}, an.got)

	an.err = usecase.ErrInvalidInput
	status, _ = doJSON(t, app, http.MethodGet, "/admin/analytics?window=900", "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = doJSON(t, app, http.MethodGet, "/admin/analytics?year=x", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}
