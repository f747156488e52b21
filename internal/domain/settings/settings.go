package settings

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
)

var ErrNotFound = errors.New("settings not found")

// Settings is the admin-editable, process-wide configuration. It is loaded once
// at startup and written back only through a Store.
type Settings struct {
	SiteName        string `json:"site_name" validate:"required,max=120"`
	SiteDescription string `json:"site_description" validate:"max=500"`
	SiteURL         string `json:"site_url" validate:"omitempty,url"`
	AdminEmail      string `json:"admin_email" validate:"omitempty,email"`

	AllowRegistration      bool `json:"allow_registration"`
	AllowProfileUpdates    bool `json:"allow_profile_updates"`
	AllowJobPosting        bool `json:"allow_job_posting"`
	RequireJobApproval     bool `json:"require_job_approval"`
	RequireCompanyApproval bool `json:"require_company_approval"`

	MaxApplicationsPerJob int `json:"max_applications_per_job" validate:"gte=0,lte=100000"`
	MaxJobDurationDays    int `json:"max_job_duration_days" validate:"gte=1,lte=365"`
	SessionTimeoutHours   int `json:"session_timeout_hours" validate:"gte=1,lte=720"`

	AnalyticsWindowDays          int `json:"analytics_window_days" validate:"gte=1,lte=365"`
	AnalyticsTopN                int `json:"analytics_top_n" validate:"gte=1,lte=50"`
	AnalyticsActivityPerCategory int `json:"analytics_activity_per_category" validate:"gte=1,lte=50"`
	AnalyticsActivityTotal       int `json:"analytics_activity_total" validate:"gte=1,lte=200"`
}

func Defaults() Settings {
	return Settings{
		SiteName:        "Job Portal",
		SiteDescription: "Find your dream job or hire the perfect candidate",
		SiteURL:         "http://localhost:5173",
		AdminEmail:      "admin@jobportal.com",

		AllowRegistration:      true,
		AllowProfileUpdates:    true,
		AllowJobPosting:        true,
		RequireJobApproval:     true,
		RequireCompanyApproval: true,

		MaxApplicationsPerJob: 100,
		MaxJobDurationDays:    90,
		SessionTimeoutHours:   24,

		AnalyticsWindowDays:          30,
		AnalyticsTopN:                5,
		AnalyticsActivityPerCategory: 3,
		AnalyticsActivityTotal:       8,
	}
}

var validate = validator.New()

func (s Settings) Validate() error {
	return validate.Struct(s)
}

// Store persists Settings. Load returns ErrNotFound when nothing was saved yet.
type Store interface {
	Load(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) error
}
