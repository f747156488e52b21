package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"jobboard/internal/config"
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/delivery/http/routes"
	v1 "jobboard/internal/delivery/http/routes/v1"
	"jobboard/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container and the HTTP app and starts the activity
// hub. The hub stops when ctx is cancelled.
func Bootstrap(ctx context.Context, cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := c.InitServices(ctx); err != nil {
		_ = c.Close()
		return nil, nil, err
	}

	go c.Hub.Run(ctx)

	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware(logger)
	app.Use(errMw.Middleware())

	accessMw := middleware.NewAccessLogMiddleware(logger)
	app.Use(accessMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	cookie := handler.AuthCookieConfig{
		Secure:     strings.EqualFold(c.Config.App.Environment, "production"),
		AccessTTL:  c.Config.JWT.AccessExpiresIn,
		RefreshTTL: c.Config.JWT.RefreshExpiresIn,
	}

	h := v1.Handlers{
		Auth:        handler.NewAuthHandler(c.Auth, cookie),
		User:        handler.NewUserHandler(c.Users),
		Jobs:        handler.NewJobsHandler(c.JobList, c.Jobs),
		Company:     handler.NewCompanyHandler(c.Companies),
		Application: handler.NewApplicationHandler(c.Applications),
		Admin: handler.NewAdminHandler(
			c.Users,
			c.Jobs,
			c.Companies,
			c.Applications,
			c.Analytics,
			c.Settings,
		),
		ActivityWS: ws.NewHandler(c.Hub, c.Logger),
	}
	mw := v1.Middlewares{
		Auth:   middleware.NewAuthMiddleware(c.JWT),
		Policy: middleware.NewPolicyMiddleware(c.Authz),
	}

	routes.NewRegistry(handler.NewHealthHandler(c.DB, c.Cache), h, mw).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
