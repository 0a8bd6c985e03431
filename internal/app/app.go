// Package app implements the application layer for fairway.
package app

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/paulmach/orb"
	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/fairway/internal/adapters/detector"
	"go.trai.ch/fairway/internal/adapters/httpapi"
	"go.trai.ch/fairway/internal/adapters/linear"
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/fairway/internal/core/ports"
	"go.trai.ch/fairway/internal/engine/graphstore"
	"go.trai.ch/fairway/internal/engine/locks"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Planner plans a route and reports tier progress.
type Planner interface {
	PlanWith(ctx context.Context, req domain.RouteRequest, obs ports.PlanObserver) (*domain.RouteResult, error)
}

// LockFinder is a lock directory that can also search around a position.
type LockFinder interface {
	ports.LockDirectory
	Nearby(ctx context.Context, center orb.Point, radiusKm float64) ([]domain.NearbyLock, error)
}

// Watcher reloads its data when the backing file changes, until ctx is done.
type Watcher interface {
	Watch(ctx context.Context, logger ports.Logger, debounce time.Duration) error
}

// App represents the main application logic.
type App struct {
	planner Planner
	locks   LockFinder
	logger  ports.Logger
	cfg     *domain.Config
	graphs  *graphstore.Store
	stdout  io.Writer
	stderr  io.Writer
}

// PlanOptions configures PlanTrip.
type PlanOptions struct {
	// OutputMode is one of auto, summary or geojson.
	OutputMode string
	// Indent pretty-prints GeoJSON output.
	Indent bool
}

// New creates a new App instance. locks may be nil when no lock directory is loaded.
func New(planner Planner, lockDir LockFinder, log ports.Logger, cfg *domain.Config) *App {
	if cfg == nil {
		cfg = domain.DefaultConfig()
	}
	return &App{
		planner: planner,
		locks:   lockDir,
		logger:  log,
		cfg:     cfg,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
}

// WithOutput replaces the streams PlanTrip writes to.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithGraphStore exposes the graph cache counters on /metrics.
func (a *App) WithGraphStore(s *graphstore.Store) *App {
	a.graphs = s
	return a
}

// Plan plans req and hands progress and the result to renderer.
func (a *App) Plan(ctx context.Context, req domain.RouteRequest, renderer ports.Renderer) error {
	result, err := a.planner.PlanWith(ctx, req, renderer)
	if err != nil {
		return zerr.Wrap(err, "failed to plan route")
	}
	return renderer.Render(result)
}

// PlanTrip plans req and writes it in the detected or requested output mode.
func (a *App) PlanTrip(ctx context.Context, req domain.RouteRequest, opts PlanOptions) error {
	mode := detector.ResolveMode(detector.DetectEnvironment(), opts.OutputMode)

	var renderer ports.Renderer
	if mode == detector.ModeGeoJSON {
		renderer = linear.NewFeatureRenderer(a.stdout, opts.Indent)
	} else {
		renderer = linear.NewRenderer(a.stdout, a.stderr)
	}
	return a.Plan(ctx, req, renderer)
}

// Route plans req without progress reporting.
func (a *App) Route(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error) {
	return a.planner.PlanWith(ctx, req, nil)
}

// LockStatus evaluates the schedule of lock id at the given time.
func (a *App) LockStatus(ctx context.Context, id int64, at time.Time) (*domain.LockReport, error) {
	if a.locks == nil {
		return nil, zerr.Wrap(domain.ErrLockDataUnavailable, "no lock directory loaded")
	}
	lock, err := a.locks.Lock(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.LockReport{
		Lock:   *lock,
		At:     at,
		Status: locks.IsOpen(*lock, at),
	}, nil
}

// LocksNearby lists the locks within radiusKm of center, nearest first.
func (a *App) LocksNearby(ctx context.Context, center orb.Point, radiusKm float64) ([]domain.NearbyLock, error) {
	if a.locks == nil {
		return nil, zerr.Wrap(domain.ErrLockDataUnavailable, "no lock directory loaded")
	}
	if !domain.ValidPoint(center) {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidInput, "position out of range"), "position", center)
	}
	return a.locks.Nearby(ctx, center, radiusKm)
}

// Serve runs the HTTP API on addr until ctx is done. An empty addr uses the
// configured address.
func (a *App) Serve(ctx context.Context, addr string) error {
	if addr == "" {
		addr = a.cfg.Server.Addr
	}

	var opts []httpapi.Option
	if a.graphs != nil {
		opts = append(opts, httpapi.WithCollectors(graphCollectors(a.graphs)...))
	}
	srv := httpapi.New(a, a.logger, a.cfg.Server, opts...)

	g, gctx := errgroup.WithContext(ctx)
	if w, ok := a.locks.(Watcher); ok && a.cfg.Locks.Watch {
		g.Go(func() error {
			if err := w.Watch(gctx, a.logger, 0); err != nil {
				a.logger.Warn("lock file watch stopped: " + err.Error())
			}
			return nil
		})
	}
	g.Go(func() error {
		return srv.Run(gctx, addr)
	})
	return g.Wait()
}

func graphCollectors(s *graphstore.Store) []prometheus.Collector {
	counter := func(name, help string, read func(graphstore.Stats) int64) prometheus.Collector {
		return prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "fairway",
			Subsystem: "graph_cache",
			Name:      name,
			Help:      help,
		}, func() float64 { return float64(read(s.Stats())) })
	}

	return []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "fairway",
			Subsystem: "graph_cache",
			Name:      "entries",
			Help:      "Region graphs currently cached.",
		}, func() float64 { return float64(s.Stats().Entries) }),
		counter("hits_total", "Region graph lookups served from cache.", func(st graphstore.Stats) int64 { return st.Hits }),
		counter("misses_total", "Region graph lookups that required a build.", func(st graphstore.Stats) int64 { return st.Misses }),
		counter("builds_total", "Region graphs built.", func(st graphstore.Stats) int64 { return st.Builds }),
		counter("fetch_failures_total", "Waterway fetches that failed.", func(st graphstore.Stats) int64 { return st.FetchFailures }),
	}
}
