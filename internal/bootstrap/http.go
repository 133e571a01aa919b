package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/memberhub/portal/config"
	httpx "github.com/memberhub/portal/internal/http"
	"github.com/memberhub/portal/internal/observability/metrics"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// Portal is a built but not yet started HTTP server plus the resources it owns.
type Portal struct {
	Server     *http.Server
	limiter    *httpx.RateLimiter
	background []backgroundTask
	logger     *slog.Logger
}

type backgroundTask struct {
	name string
	run  func(ctx context.Context) error
}

// BuildRouterServices maps the application config and services onto the router's inputs.
func BuildRouterServices(cfg *HTTPServerConfig) (httpx.RouterServices, error) {
	if cfg == nil || cfg.Config == nil {
		return httpx.RouterServices{}, errors.New("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config

	loc, err := appCfg.Location()
	if err != nil {
		return httpx.RouterServices{}, fmt.Errorf("load time zone: %w", err)
	}
	secure := appCfg.HTTP.SecureCookies()

	rs := httpx.RouterServices{
		Auth:          cfg.Services.Auth,
		Events:        cfg.Services.Events,
		Members:       cfg.Services.Members,
		Announcements: cfg.Services.Announcements,
		Messages:      cfg.Services.Messages,
		Admin:         cfg.Services.Admin,
		Cookie: httpx.SessionCookie{
			Name:   appCfg.Session.CookieName,
			Domain: appCfg.HTTP.CookieDomain,
			Secure: secure,
		},
		CSRF: httpx.CSRFConfig{
			CookieDomain: appCfg.HTTP.CookieDomain,
			Secure:       secure,
		},
		Location: loc,
		IsDev:    appCfg.IsDev,
		Logger:   logger,
	}
	if cfg.Services.Metrics != nil {
		rs.Metrics = cfg.Services.Metrics
	}
	if appCfg.Observability.Metrics.Enabled && cfg.Services.Registry != nil {
		rs.MetricsHandler = metrics.Handler(cfg.Services.Registry)
		rs.MetricsPath = appCfg.Observability.Metrics.Path
	}
	if appCfg.HTTP.CompressionEnabled {
		logger.Info("HTTP compression enabled", "level", appCfg.HTTP.CompressionLevel)
		rs.Compression = &httpx.CompressionConfig{Level: appCfg.HTTP.CompressionLevel, Logger: logger}
	}
	if rl := appCfg.Security.RateLimit; rl.Enabled {
		rs.RateLimiter = httpx.NewRateLimiter(httpx.RateLimiterConfig{
			PerMinute:  rl.PerMinute,
			Burst:      rl.Burst,
			TrustProxy: rl.TrustProxy,
			Metrics:    rs.Metrics,
			Logger:     logger,
		})
	}
	return rs, nil
}

// NewPortal builds the router and wraps it in an http.Server using the configured timeouts.
func NewPortal(cfg *HTTPServerConfig) (*Portal, error) {
	rs, err := BuildRouterServices(cfg)
	if err != nil {
		return nil, err
	}
	handler, err := httpx.NewRouter(rs)
	if err != nil {
		if rs.RateLimiter != nil {
			rs.RateLimiter.Stop()
		}
		return nil, fmt.Errorf("build router: %w", err)
	}

	h := cfg.Config.HTTP
	p := &Portal{
		Server: &http.Server{
			Addr:         h.Addr,
			Handler:      handler,
			ReadTimeout:  h.ReadTimeout,
			WriteTimeout: h.WriteTimeout,
			IdleTimeout:  h.IdleTimeout,
		},
		limiter: rs.RateLimiter,
		logger:  rs.Logger,
	}
	if cfg.Services.Reaper != nil {
		p.background = append(p.background, backgroundTask{name: "session reaper", run: cfg.Services.Reaper.Run})
	}
	return p, nil
}

// Shutdown stops accepting requests and waits for in-flight ones until ctx ends.
func (p *Portal) Shutdown(ctx context.Context) error {
	if p.limiter != nil {
		p.limiter.Stop()
	}
	p.logger.InfoContext(ctx, "shutting down HTTP server")
	if err := p.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	p.logger.InfoContext(ctx, "HTTP server stopped")
	return nil
}

// RunWithShutdown serves until SIGINT/SIGTERM or a listener error, then shuts down
// within cfg.HTTP.ShutdownTimeout.
func RunWithShutdown(ctx context.Context, p *Portal, cfg config.HTTPConfig) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	bgCtx, cancelBackground := context.WithCancel(ctx)
	var wg sync.WaitGroup
	for _, task := range p.background {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := task.run(bgCtx); err != nil && !errors.Is(err, context.Canceled) {
				p.logger.Error("background task failed", "task", task.name, "error", err)
			}
		}()
	}
	defer func() {
		cancelBackground()
		wg.Wait()
	}()

	errCh := make(chan error, 1)
	go func() {
		p.logger.InfoContext(ctx, "starting HTTP server", "addr", p.Server.Addr)
		if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		p.logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		if serveErr == nil {
			return nil
		}
		p.logger.Error("HTTP server failed", "error", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()
	return errors.Join(serveErr, p.Shutdown(shutdownCtx))
}
