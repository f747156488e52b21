package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/domain/policy"
	"jobboard/internal/infrastructure/cache"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/repository"
	"jobboard/internal/usecase"
	appuc "jobboard/internal/usecase/application"
	ucauth "jobboard/internal/usecase/auth"
	companyuc "jobboard/internal/usecase/company"
	jobuc "jobboard/internal/usecase/job"
	settingsuc "jobboard/internal/usecase/settings"
	useruc "jobboard/internal/usecase/user"
	"jobboard/internal/ws"
)

// Container owns the process-wide dependencies. NewContainer only opens the
// database, which is all the migrate and seed commands need; InitServices
// builds the rest for the HTTP server.
type Container struct {
	Config config.Config
	DB     database.DB
	Logger *log.Logger

	Cache *cache.Redis
	Hub   *ws.Hub
	JWT   jwt.Service
	Authz *policy.Authorizer

	Settings     *settingsuc.Service
	Auth         *ucauth.Service
	Users        *useruc.Service
	Companies    *companyuc.Service
	Jobs         *jobuc.Service
	Applications *appuc.Service
	JobList      *usecase.JobList
	Analytics    *usecase.Analytics
}

func NewContainer(cfg config.Config) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	return &Container{Config: cfg, DB: db, Logger: log.Default()}, nil
}

func (c *Container) InitServices(ctx context.Context) error {
	if c == nil || c.DB == nil {
		return fmt.Errorf("nil container")
	}
	cfg := c.Config
	logger := c.Logger

	c.Cache = cache.NewRedis(cfg.Redis, logger)
	c.Hub = ws.NewHub(logger)
	c.JWT = jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	c.Authz = policy.NewAuthorizer()

	userRepo := repository.NewPostgresUserRepository(c.DB)
	companyRepo := repository.NewPostgresCompanyRepository(c.DB)
	jobRepo := repository.NewPostgresJobRepository(c.DB)
	applicationRepo := repository.NewPostgresApplicationRepository(c.DB)
	settingsRepo := repository.NewPostgresSettingsRepository(c.DB)

	changes := usecase.NewChanges(c.Cache, c.Hub, logger)

	c.Settings = settingsuc.NewService(settingsRepo, changes, logger)
	if err := c.Settings.Load(ctx); err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	c.Auth = ucauth.NewService(userRepo, c.JWT, c.Settings, changes, logger)
	c.Users = useruc.NewService(userRepo, c.Settings, changes, logger)
	c.Companies = companyuc.NewService(companyRepo, c.Authz, c.Settings, changes, logger)
	c.Jobs = jobuc.NewService(jobRepo, companyRepo, c.Authz, c.Settings, changes, logger)
	c.Applications = appuc.NewService(applicationRepo, jobRepo, c.Authz, c.Settings, changes, logger)
	c.JobList = usecase.NewJobListUsecase(jobRepo, c.Cache, cfg.Redis.TTL, logger)
	c.Analytics = usecase.NewAnalyticsUsecase(
		userRepo,
		jobRepo,
		companyRepo,
		applicationRepo,
		c.Settings,
		c.Cache,
		usecase.AnalyticsConfig{CacheTTL: cfg.Analytics.CacheTTL, FetchTimeout: cfg.Analytics.FetchTimeout},
		logger,
	)

	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
