package pathfinder

import (
	"context"
	"fmt"

	"github.com/paulmach/orb"
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/fairway/internal/core/geo"
	"go.trai.ch/fairway/internal/core/ports"
	"go.trai.ch/zerr"
)

// GraphProvider returns the waterway graph for a region.
type GraphProvider interface {
	GetOrBuildGraph(ctx context.Context, center orb.Point, radiusKm float64) (*domain.Graph, error)
}

// GraphRouter is the graph-search routing tier. Each consecutive waypoint pair is
// routed over its own region graph; pairs that cannot be routed fall back to a
// straight line.
type GraphRouter struct {
	graphs         GraphProvider
	logger         ports.Logger
	cutoffMeters   float64
	regionBufferKm float64
}

// NewGraphRouter creates a GraphRouter. Pairs farther apart than cutoffKm are not
// searched; bufferKm is added to half the pair distance to size the fetched region.
func NewGraphRouter(graphs GraphProvider, logger ports.Logger, cutoffKm, bufferKm float64) *GraphRouter {
	if cutoffKm <= 0 {
		cutoffKm = domain.DefaultSegmentCutoffKm
	}
	if bufferKm < 0 {
		bufferKm = domain.DefaultRegionBufferKm
	}
	return &GraphRouter{
		graphs:         graphs,
		logger:         logger,
		cutoffMeters:   cutoffKm * 1000,
		regionBufferKm: bufferKm,
	}
}

// Route routes every waypoint pair and merges the pieces into one geometry.
// It fails with domain.ErrTierUnavailable when no pair was routed over the graph.
func (r *GraphRouter) Route(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error) {
	if len(req.Waypoints) < 2 {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidInput, "at least two waypoints required"), "waypoints", len(req.Waypoints))
	}

	var (
		line     orb.LineString
		total    float64
		segments = make([]domain.SegmentInfo, 0, len(req.Waypoints)-1)
		routed   int
	)

	for i := 1; i < len(req.Waypoints); i++ {
		piece, info, err := r.routePair(ctx, i-1, req.Waypoints[i-1], req.Waypoints[i])
		if err != nil {
			return nil, err
		}
		if info.Method == domain.SegmentGraph {
			routed++
		} else {
			r.logger.Info(fmt.Sprintf("waypoints %d-%d routed direct: %s", info.From, info.To, info.Reason))
		}
		line = appendPiece(line, piece)
		total += info.DistanceMeters
		segments = append(segments, info)
	}

	if routed == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrTierUnavailable, "no waypoint pair routed over the waterway graph"), "pairs", len(segments))
	}

	return &domain.RouteResult{
		Geometry:         line,
		DistanceMeters:   total,
		RoutingType:      domain.RoutingGraphSearch,
		WaterwayRouted:   true,
		BoatRestrictions: req.Boat.Restrictions(),
		Segments:         segments,
	}, nil
}

func (r *GraphRouter) routePair(ctx context.Context, idx int, a, b orb.Point) (orb.LineString, domain.SegmentInfo, error) {
	dist := geo.HaversineMeters(a, b)
	direct := func(reason string) (orb.LineString, domain.SegmentInfo, error) {
		return orb.LineString{a, b}, domain.SegmentInfo{
			From:           idx,
			To:             idx + 1,
			Method:         domain.SegmentDirect,
			DistanceMeters: dist,
			Reason:         reason,
		}, nil
	}

	switch {
	case dist == 0:
		return direct("identical waypoints")
	case dist > r.cutoffMeters:
		return direct(fmt.Sprintf("pair longer than %.0f km", r.cutoffMeters/1000))
	}

	radiusKm := dist/2000 + r.regionBufferKm
	g, err := r.graphs.GetOrBuildGraph(ctx, geo.Midpoint(a, b), radiusKm)
	if err != nil {
		return nil, domain.SegmentInfo{}, err
	}
	if g.Empty() {
		return direct("no waterway data for region")
	}

	path, meters, ok := FindPath(g, a, b)
	if !ok {
		return direct("no connected path in waterway graph")
	}

	return path, domain.SegmentInfo{
		From:           idx,
		To:             idx + 1,
		Method:         domain.SegmentGraph,
		DistanceMeters: meters,
	}, nil
}

// appendPiece returns a new line with piece appended, dropping a leading point
// identical to the current trailing point.
func appendPiece(line, piece orb.LineString) orb.LineString {
	if len(line) > 0 && len(piece) > 0 && line[len(line)-1] == piece[0] {
		piece = piece[1:]
	}
	out := make(orb.LineString, 0, len(line)+len(piece))
	out = append(out, line...)
	return append(out, piece...)
}
