package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/memberhub/portal/config"
	"github.com/memberhub/portal/internal/adapters/backend"
	"github.com/memberhub/portal/internal/adapters/memstore"
	"github.com/memberhub/portal/internal/adapters/reaper"
	redisstore "github.com/memberhub/portal/internal/adapters/redis"
	"github.com/memberhub/portal/internal/observability/metrics"
	"github.com/memberhub/portal/internal/ports"
	"github.com/memberhub/portal/internal/service"
)

// ServiceContainer holds every service the HTTP layer and the admin CLI use.
type ServiceContainer struct {
	Auth          *service.AuthService
	Events        *service.EventService
	Members       *service.MemberService
	Announcements *service.AnnouncementService
	Messages      *service.MessageService
	Admin         *service.AdminService

	Sessions ports.SessionStore
	Reaper   *reaper.Runner // set only for the in-memory store; Redis expires keys itself
	Metrics  *metrics.Collector
	Registry *prometheus.Registry
}

// ServiceDeps contains the infrastructure services are built on.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient // nil selects the in-memory session store
	Logger      *slog.Logger
}

// NewServices wires the backend client, the session store and the domain services.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps with config are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	registry := prometheus.NewRegistry()
	metrics.RegisterRuntime(registry)
	collector := metrics.NewCollector(registry)

	client, err := backend.New(backend.Options{
		BaseURL:    cfg.Backend.URL,
		Timeout:    cfg.Backend.Timeout,
		CookieName: cfg.Backend.CookieName,
		Logger:     logger,
		Metrics:    collector,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create backend client: %w", err)
	}

	sessions, sweeper, err := newSessionStore(deps.RedisClient, cfg.Session, logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	sanitizer := service.NewTextSanitizer()
	return ServiceContainer{
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Backend:  client,
			Sessions: sessions,
			Config: service.AuthServiceConfig{
				SessionTTL:      cfg.Session.TTL,
				RefreshInterval: cfg.Session.RefreshInterval,
				TokenExpiry:     backend.TokenExpiry,
				Logger:          logger,
				Metrics:         collector,
			},
		}),
		Events: service.MustNewEventService(service.EventServiceOptions{
			Backend:   client,
			Sanitizer: sanitizer,
			Logger:    logger,
		}),
		Members: service.MustNewMemberService(service.MemberServiceOptions{
			Backend: client,
			Logger:  logger,
		}),
		Announcements: service.MustNewAnnouncementService(service.AnnouncementServiceOptions{
			Backend:   client,
			Sanitizer: sanitizer,
			Logger:    logger,
		}),
		Messages: service.MustNewMessageService(service.MessageServiceOptions{
			Backend: client,
			Logger:  logger,
		}),
		Admin: service.MustNewAdminService(service.AdminServiceOptions{
			Backends: service.AdminBackends{
				Members:       client,
				Events:        client,
				Announcements: client,
				Messages:      client,
			},
		}),
		Sessions: sessions,
		Reaper:   sweeper,
		Metrics:  collector,
		Registry: registry,
	}, nil
}

//nolint:ireturn // either store satisfies the port
func newSessionStore(
	client redis.UniversalClient,
	cfg config.SessionConfig,
	logger *slog.Logger,
) (ports.SessionStore, *reaper.Runner, error) {
	if client != nil {
		return redisstore.NewSessionStore(client, redisstore.SessionStoreOptions{Prefix: cfg.KeyPrefix}), nil, nil
	}
	store := memstore.NewSessionStore(nil)
	runner, err := reaper.NewRunner(reaper.RunnerOptions{
		Store:    store,
		Interval: cfg.SweepInterval,
		Logger:   logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create session reaper: %w", err)
	}
	return store, runner, nil
}

// ConnectSessionBackend returns a Redis client unless cfg selects in-memory sessions,
// in which case both results are nil.
//
//nolint:ireturn // see ConnectRedis
func ConnectSessionBackend(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (redis.UniversalClient, error) {
	if cfg.UseMemorySessions() {
		if logger != nil {
			logger.WarnContext(ctx, "using in-memory session store; sessions are lost on restart")
		}
		return nil, nil
	}
	client, err := ConnectRedis(ctx, cfg.Redis, logger)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return client, nil
}
