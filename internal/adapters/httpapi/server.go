// Package httpapi exposes route planning and lock queries over HTTP.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/fairway/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// RequestIDHeader carries the request id in both directions.
	RequestIDHeader = "X-Request-ID"

	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Service is the application surface served over HTTP.
type Service interface {
	Route(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error)
	LockStatus(ctx context.Context, id int64, at time.Time) (*domain.LockReport, error)
	LocksNearby(ctx context.Context, center orb.Point, radiusKm float64) ([]domain.NearbyLock, error)
}

// Server routes HTTP requests to a Service.
type Server struct {
	engine   *gin.Engine
	svc      Service
	logger   ports.Logger
	registry *prometheus.Registry
	metrics  *httpMetrics
	now      func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithClock replaces the clock used when a lock status request has no time.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithCollectors registers extra Prometheus collectors on /metrics.
func WithCollectors(cs ...prometheus.Collector) Option {
	return func(s *Server) {
		s.registry.MustRegister(cs...)
	}
}

// New creates a Server.
func New(svc Service, logger ports.Logger, cfg domain.ServerConfig, opts ...Option) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		engine:   gin.New(),
		svc:      svc,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		now:      time.Now,
	}
	s.metrics = newHTTPMetrics(s.registry)
	for _, opt := range opts {
		opt(s)
	}

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowOrigins) == 0 || (len(cfg.AllowOrigins) == 1 && cfg.AllowOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowOrigins
	}
	corsCfg.AddAllowHeaders(RequestIDHeader)
	corsCfg.AddExposeHeaders(RequestIDHeader)

	s.engine.Use(gin.Recovery(), requestID(), s.metrics.middleware(), cors.New(corsCfg))
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/health", s.health)
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	api := s.engine.Group("/api")
	api.POST("/route", s.route)
	api.GET("/locks/nearby", s.locksNearby)
	api.GET("/locks/:id/status", s.lockStatus)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	if s.logger != nil {
		s.logger.Info("listening on " + addr)
	}

	select {
	case err := <-errCh:
		return zerr.With(zerr.Wrap(domain.ErrServerFailed, err.Error()), "addr", addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrServerFailed, err.Error()), "addr", addr)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return zerr.With(zerr.Wrap(domain.ErrServerFailed, err.Error()), "addr", addr)
	}
	return nil
}
