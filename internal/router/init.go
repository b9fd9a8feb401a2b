package router

import (
	"github.com/oksasatya/go-hris/internal/application"
	"github.com/oksasatya/go-hris/internal/container"
	pginfra "github.com/oksasatya/go-hris/internal/infrastructure/postgres"
	"github.com/oksasatya/go-hris/internal/infrastructure/queue"
	"github.com/oksasatya/go-hris/internal/infrastructure/redisstore"
	"github.com/oksasatya/go-hris/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-hris/internal/interface/http"
	"github.com/oksasatya/go-hris/internal/interface/middleware"
	"github.com/oksasatya/go-hris/internal/router/modules"
	"github.com/oksasatya/go-hris/internal/web"
)

// Services are the application services built from the container.
type Services struct {
	Auth       *application.AuthService
	Users      *application.UserService
	References *application.ReferenceService
}

// BuildServices wires repositories and optional backends into the application layer.
// Absent backends are left as nil interfaces, which the services treat as disabled.
func BuildServices() Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool, cfg.StoreTimeout)
	refs := pginfra.NewReferenceRepository(pool, cfg.StoreTimeout)

	var (
		sessions application.SessionStore
		cache    application.ReferenceCache
		index    application.UserIndex
		notifier application.Notifier
	)
	if rdb := container.RedisCmdable(); rdb != nil {
		sessions = redisstore.NewSessionStore(rdb)
		cache = redisstore.NewReferenceCache(rdb, cfg.ReferenceCacheTTL)
	}
	if es := container.GetES(); es != nil {
		index = search.NewUserIndex(es, cfg.ESUsersIndex, cfg.StoreTimeout)
	}
	if pub := container.GetRabbitPub(); pub != nil {
		notifier = queue.NewEmailNotifier(pub, cfg.AppName, cfg.LoginURL)
	}

	return Services{
		Auth: application.NewAuthService(users, refs, sessions, container.GetJWT(), index, notifier, logger, application.Defaults{
			OrganizationID: cfg.DefaultOrganizationID,
			RoleID:         cfg.DefaultRoleID,
		}),
		Users:      application.NewUserService(users, index, notifier, logger),
		References: application.NewReferenceService(refs, cache, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) error {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	svc := BuildServices()

	pages, err := web.New(cfg.AppName)
	if err != nil {
		return err
	}

	limits := modules.Limits{}
	if cfg.RateLimitEnabled {
		limits.Redis = container.RedisCmdable()
		if cfg.Env == "development" {
			limits.Allow = middleware.AllowPrivateIP()
		}
	}

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Auth, logger, cfg.CookieDomain, cfg.CookieSecure), svc.Auth, limits))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Users, logger), svc.Auth, cfg.SessionRequired))
	r.Add(modules.NewReferenceModule(handlers.NewReferenceHandler(svc.References, logger), svc.Auth, cfg.SessionRequired))
	if cfg.DebugMetricsEnabled {
		r.Use(modules.CountRequests())
		r.Add(modules.NewDebugModule(limits))
	}

	r.AddRoot(modules.NewHealthModule(handlers.NewHealthHandler(container.GetPGPool(), logger, cfg.StoreTimeout)))
	r.AddRoot(modules.NewWebModule(pages))
	return nil
}
