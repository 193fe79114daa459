package router

import (
	"github.com/oksasatya/go-event-registration/internal/application"
	"github.com/oksasatya/go-event-registration/internal/container"
	"github.com/oksasatya/go-event-registration/internal/infrastructure/notify"
	pginfra "github.com/oksasatya/go-event-registration/internal/infrastructure/postgres"
	"github.com/oksasatya/go-event-registration/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-event-registration/internal/interface/http"
	"github.com/oksasatya/go-event-registration/internal/interface/middleware"
	"github.com/oksasatya/go-event-registration/internal/router/modules"
	"github.com/oksasatya/go-event-registration/pkg/helpers"
	"github.com/oksasatya/go-event-registration/pkg/metrics"
)

type moduleDeps struct {
	Auth           *handlers.AuthHandler
	Events         *handlers.EventHandler
	AdminEvents    *handlers.AdminEventHandler
	AdminUsers     *handlers.UserHandler
	Tokens         *helpers.JWTManager
	MetricsEnabled bool
}

// optional collaborators are only set when configured, so the services
// never see a typed-nil interface
func eventIndex() application.EventIndex {
	if es := container.GetES(); es != nil {
		return search.NewEventIndex(es, container.GetConfig().ESEventsIndex)
	}
	return nil
}

func notifier() application.Notifier {
	cfg := container.GetConfig()
	if pub := container.GetRabbitPub(); pub != nil && cfg.MailSendEnabled {
		return notify.NewEmailNotifier(pub, cfg.AppName, cfg.EventURL)
	}
	return nil
}

func buildDeps() moduleDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	events := pginfra.NewEventRepository(pool)
	regs := pginfra.NewRegistrationRepository(pool)
	index := eventIndex()

	authSvc := application.NewAuthService(users, container.GetJWT(), logger)
	eventSvc := application.NewEventService(events, container.GetImageStore(), index, logger)
	regSvc := application.NewRegistrationService(events, regs, notifier(), logger)
	userSvc := application.NewUserService(users, index, logger)

	return moduleDeps{
		Auth:           handlers.NewAuthHandler(authSvc, logger),
		Events:         handlers.NewEventHandler(eventSvc, regSvc, logger),
		AdminEvents:    handlers.NewAdminEventHandler(eventSvc, logger),
		AdminUsers:     handlers.NewUserHandler(userSvc, logger),
		Tokens:         container.GetJWT(),
		MetricsEnabled: cfg.MetricsEnabled,
	}
}

// InitMiddleware adds the request-scoped middleware, behind CORS so preflights stay cheap.
func InitMiddleware(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	if cfg.HTTPLogEnabled {
		r.Use(middleware.RequestLogger(logger))
	}
	if cfg.MetricsEnabled {
		r.Use(middleware.Metrics())
	}
	r.Use(middleware.RateLimit(container.GetRateCounter(), cfg.RateLimitMax, cfg.RateLimitWindow, middleware.KeyByIP(), logger))
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	d := buildDeps()

	health := modules.NewHealthModule(nil)
	if d.MetricsEnabled {
		health.Gatherer = metrics.Registry
	}
	r.Add(health)
	r.Add(modules.NewAuthModule(d.Auth, d.Tokens))
	r.Add(modules.NewEventModule(d.Events, d.Tokens))
	r.Add(modules.NewAdminEventModule(d.AdminEvents, d.Tokens))
	r.Add(modules.NewUserModule(d.AdminUsers, d.Tokens))
}
