// Package coordinator plans routes over a ladder of routing tiers.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/fairway/internal/core/geo"
	"go.trai.ch/fairway/internal/core/ports"
	"go.trai.ch/fairway/internal/engine/locks"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// DurationAdjuster revises a travel time for water currents.
type DurationAdjuster interface {
	AdjustDuration(ctx context.Context, line orb.LineString, distanceKm, boatSpeedKmh float64) (float64, *domain.CurrentAdjustment)
}

// Settings holds the coordinator's tunables. Zero values fall back to defaults.
type Settings struct {
	PrimaryTimeout   time.Duration
	GraphTimeout     time.Duration
	LockBufferMeters float64
	DefaultSpeedKmh  float64
}

func (s Settings) withDefaults() Settings {
	if s.PrimaryTimeout <= 0 {
		s.PrimaryTimeout = domain.DefaultPrimaryTimeout
	}
	if s.GraphTimeout <= 0 {
		s.GraphTimeout = domain.DefaultGraphTimeout
	}
	if s.LockBufferMeters <= 0 {
		s.LockBufferMeters = domain.DefaultLockBufferMeters
	}
	if s.DefaultSpeedKmh <= 0 {
		s.DefaultSpeedKmh = domain.DefaultBoatSpeedKmh
	}
	return s
}

// Coordinator plans a route by trying the primary network router, then the
// waterway graph search, then the direct line. The winning geometry is annotated
// with locks, lock warnings and a current-adjusted duration.
type Coordinator struct {
	primary  ports.Router
	graph    ports.Router
	locks    ports.LockDirectory
	adjuster DurationAdjuster
	logger   ports.Logger
	tracer   ports.Tracer
	settings Settings
}

// New creates a Coordinator. primary, graph, lockDir and adjuster may be nil to
// disable the corresponding step.
func New(
	primary ports.Router,
	graph ports.Router,
	lockDir ports.LockDirectory,
	adjuster DurationAdjuster,
	logger ports.Logger,
	tracer ports.Tracer,
	settings Settings,
) *Coordinator {
	return &Coordinator{
		primary:  primary,
		graph:    graph,
		locks:    lockDir,
		adjuster: adjuster,
		logger:   logger,
		tracer:   tracer,
		settings: settings.withDefaults(),
	}
}

type tier struct {
	kind    domain.RoutingType
	router  ports.Router
	timeout time.Duration
}

// tierOutcome is the result of one tier: a route or the reason it was skipped.
type tierOutcome struct {
	route *domain.RouteResult
	err   error
}

func (o tierOutcome) ok() bool {
	return o.err == nil && o.route != nil
}

// Plan plans a route for req.
func (c *Coordinator) Plan(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error) {
	return c.PlanWith(ctx, req, nil)
}

// PlanWith plans a route for req and reports tier progress to obs, which may be nil.
// Only invalid input and caller cancellation are returned as errors.
func (c *Coordinator) PlanWith(
	ctx context.Context,
	req domain.RouteRequest,
	obs ports.PlanObserver,
) (*domain.RouteResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, span := c.tracer.Start(ctx, "plan", ports.WithAttribute("waypoints", len(req.Waypoints)))
	defer span.End()

	var (
		result   *domain.RouteResult
		attempts []domain.TierAttempt
	)

	if !identical(req.Waypoints) {
		for _, t := range c.tiers() {
			outcome := c.runTier(ctx, t, req, obs)
			if err := ctx.Err(); err != nil {
				span.RecordError(err)
				return nil, zerr.Wrap(err, "route planning cancelled")
			}
			if outcome.ok() {
				result = outcome.route
				break
			}
			c.logger.Warn(fmt.Sprintf("%s tier unavailable: %v", t.kind, outcome.err))
			attempts = append(attempts, domain.TierAttempt{Tier: t.kind, Reason: outcome.err.Error()})
		}
	}

	if result == nil {
		tierStarted(obs, domain.RoutingDirectLine)
		result = DirectRoute(req)
		tierCompleted(obs, domain.RoutingDirectLine, nil)
	}
	if len(result.Geometry) < 2 {
		// The direct line always has at least two points for a valid request.
		return nil, zerr.With(zerr.Wrap(domain.ErrNoRouteFound, "route has no geometry"), "routing_type", string(result.RoutingType))
	}

	result.Attempts = attempts
	span.SetAttribute("routing_type", string(result.RoutingType))

	if err := c.annotate(ctx, req, result); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return result, nil
}

func (c *Coordinator) tiers() []tier {
	var out []tier
	if c.primary != nil {
		out = append(out, tier{kind: domain.RoutingPrimaryNetwork, router: c.primary, timeout: c.settings.PrimaryTimeout})
	}
	if c.graph != nil {
		out = append(out, tier{kind: domain.RoutingGraphSearch, router: c.graph, timeout: c.settings.GraphTimeout})
	}
	return out
}

func (c *Coordinator) runTier(ctx context.Context, t tier, req domain.RouteRequest, obs ports.PlanObserver) tierOutcome {
	ctx, span := c.tracer.Start(ctx, string(t.kind), ports.WithAttribute("tier", string(t.kind)))
	defer span.End()

	tierStarted(obs, t.kind)

	tctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	route, err := t.router.Route(tctx, req)
	switch {
	case err != nil && errors.Is(tctx.Err(), context.DeadlineExceeded) && ctx.Err() == nil:
		err = zerr.With(zerr.Wrap(domain.ErrTierUnavailable, "tier timed out"), "timeout", t.timeout.String())
	case err == nil && (route == nil || len(route.Geometry) < 2):
		err = zerr.Wrap(domain.ErrTierUnavailable, "tier returned an empty route")
	}

	if err != nil {
		span.RecordError(err)
	}
	tierCompleted(obs, t.kind, err)
	return tierOutcome{route: route, err: err}
}

// annotate runs the current adjustment and lock annotation concurrently.
func (c *Coordinator) annotate(ctx context.Context, req domain.RouteRequest, result *domain.RouteResult) error {
	speed := c.settings.DefaultSpeedKmh
	if req.Boat != nil && req.Boat.SpeedKmh > 0 {
		speed = req.Boat.SpeedKmh
	}

	var (
		hours    = result.DistanceMeters / 1000 / speed
		info     *domain.CurrentAdjustment
		hits     []domain.LockHit
		warnings []domain.LockWarning
	)

	g, gctx := errgroup.WithContext(ctx)
	if c.adjuster != nil {
		g.Go(func() error {
			hours, info = c.adjuster.AdjustDuration(gctx, result.Geometry, result.DistanceMeters/1000, speed)
			return gctx.Err()
		})
	}
	if c.locks != nil {
		g.Go(func() error {
			var err error
			hits, err = c.locksOnRoute(gctx, result.Geometry)
			if err != nil {
				return err
			}
			if req.Departure != nil {
				warnings = locks.CheckAvailability(hits, *req.Departure, speed)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return zerr.Wrap(err, "route annotation cancelled")
	}

	if result.DurationSeconds == nil {
		seconds := hours * 3600
		result.DurationSeconds = &seconds
	}
	result.CurrentAdjustment = info
	result.Locks = hits
	result.LockWarnings = warnings
	return nil
}

// locksOnRoute degrades to no locks when the directory fails. Only cancellation
// is returned.
func (c *Coordinator) locksOnRoute(ctx context.Context, line orb.LineString) ([]domain.LockHit, error) {
	bound := geo.PadMeters(line.Bound(), c.settings.LockBufferMeters)
	records, err := c.locks.LocksNear(ctx, bound)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Warn(zerr.Wrap(err, domain.ErrLockDataUnavailable.Error()).Error())
		return nil, nil
	}
	return locks.FindLocksOnRoute(line, records, c.settings.LockBufferMeters), nil
}

// DirectRoute joins the waypoints with straight segments.
func DirectRoute(req domain.RouteRequest) *domain.RouteResult {
	line, meters := domain.DirectLine(req.Waypoints)

	return &domain.RouteResult{
		Geometry:         line,
		DistanceMeters:   meters,
		RoutingType:      domain.RoutingDirectLine,
		BoatRestrictions: req.Boat.Restrictions(),
	}
}

func identical(points []orb.Point) bool {
	for _, p := range points[1:] {
		if p != points[0] {
			return false
		}
	}
	return true
}

func tierStarted(obs ports.PlanObserver, kind domain.RoutingType) {
	if obs != nil {
		obs.OnTierStart(kind)
	}
}

func tierCompleted(obs ports.PlanObserver, kind domain.RoutingType, err error) {
	if obs != nil {
		obs.OnTierComplete(kind, err)
	}
}
