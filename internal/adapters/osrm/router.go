// Package osrm implements the primary network routing tier against an OSRM server
// running a waterway profile.
package osrm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/sony/gobreaker"
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/zerr"
)

const codeOk = "Ok"

var (
	lockKeywords   = []string{"lock", "schleuse", "sluis", "écluse"}
	bridgeKeywords = []string{"bridge", "brücke", "brug", "pont"}

	// Two points on the Elbe at Magdeburg.
	healthProbe = []orb.Point{{11.6167, 52.1205}, {11.6267, 52.1305}}
)

// Router queries an OSRM server. Consecutive transport failures open a circuit
// breaker so a dead server is skipped quickly.
type Router struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// Option configures a Router.
type Option func(*Router)

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Router) {
		r.httpClient = c
	}
}

// New creates a Router for the server at cfg.URL.
func New(cfg domain.PrimaryConfig, opts ...Option) *Router {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultPrimaryTimeout
	}
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = domain.DefaultBreakerMaxFailures
	}
	breakerTimeout := cfg.BreakerTimeout
	if breakerTimeout <= 0 {
		breakerTimeout = domain.DefaultBreakerTimeout
	}

	r := &Router{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	r.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "osrm",
		MaxRequests: 1,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// A server that answers without a route is healthy.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrPrimaryRouterNoRoute)
		},
	})
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// HealthCheck asks the server for a short known route.
func (r *Router) HealthCheck(ctx context.Context) error {
	resp, err := r.query(ctx, healthProbe, url.Values{"overview": {"false"}})
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrPrimaryRouterUnhealthy, err.Error()), "url", r.baseURL)
	}
	if resp.Code != codeOk {
		err := zerr.With(zerr.Wrap(domain.ErrPrimaryRouterUnhealthy, "unexpected response code"), "url", r.baseURL)
		return zerr.With(err, "code", resp.Code)
	}
	return nil
}

// Route implements ports.Router. Every failure wraps domain.ErrTierUnavailable.
func (r *Router) Route(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error) {
	out, err := r.breaker.Execute(func() (any, error) {
		return r.route(ctx, req)
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrTierUnavailable, err.Error()), "url", r.baseURL)
	}
	result, _ := out.(*domain.RouteResult)
	return result, nil
}

// State reports the breaker state, for diagnostics.
func (r *Router) State() string {
	return r.breaker.State().String()
}

func (r *Router) route(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error) {
	resp, err := r.query(ctx, req.Waypoints, url.Values{
		"overview":    {"full"},
		"geometries":  {"geojson"},
		"steps":       {"true"},
		"annotations": {"true"},
	})
	if err != nil {
		return nil, err
	}
	if resp.Code != codeOk || len(resp.Routes) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrPrimaryRouterNoRoute, "no route in response"), "code", resp.Code)
	}

	best := resp.Routes[0]
	var line orb.LineString
	if best.Geometry != nil {
		line, _ = best.Geometry.Geometry().(orb.LineString)
	}
	if len(line) < 2 {
		return nil, zerr.Wrap(domain.ErrPrimaryRouterNoRoute, "route without line geometry")
	}

	result := &domain.RouteResult{
		Geometry:         line,
		DistanceMeters:   best.Distance,
		RoutingType:      domain.RoutingPrimaryNetwork,
		WaterwayRouted:   true,
		BoatRestrictions: req.Boat.Restrictions(),
		Infrastructure:   extractInfrastructure(best.Legs),
	}
	if best.Duration > 0 {
		result.DurationSeconds = domain.Float64(best.Duration)
	}
	return result, nil
}

func (r *Router) query(ctx context.Context, points []orb.Point, params url.Values) (*routeResponse, error) {
	coords := make([]string, len(points))
	for i, p := range points {
		coords[i] = strconv.FormatFloat(p.Lon(), 'f', -1, 64) + "," + strconv.FormatFloat(p.Lat(), 'f', -1, 64)
	}
	endpoint := fmt.Sprintf("%s/route/v1/driving/%s?%s", r.baseURL, strings.Join(coords, ";"), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, zerr.Wrap(domain.ErrPrimaryRouterRequestFailed, err.Error())
	}

	res, err := r.httpClient.Do(req)
	if err != nil {
		return nil, zerr.Wrap(domain.ErrPrimaryRouterRequestFailed, err.Error())
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, zerr.Wrap(domain.ErrPrimaryRouterRequestFailed, err.Error())
	}

	var out routeResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrPrimaryRouterRequestFailed, "invalid response body"), "status", res.StatusCode)
	}
	// OSRM answers NoRoute and friends with 400 and a code.
	if res.StatusCode != http.StatusOK && out.Code == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrPrimaryRouterRequestFailed, "unexpected status"), "status", res.StatusCode)
	}
	return &out, nil
}

// extractInfrastructure finds locks and bridges in step names. Distances are the
// summed step lengths before the step.
func extractInfrastructure(legs []leg) []domain.Infrastructure {
	var (
		out      []domain.Infrastructure
		distance float64
	)
	for _, l := range legs {
		for _, s := range l.Steps {
			if len(s.Maneuver.Location) == 2 {
				name := strings.ToLower(s.Name)
				point := orb.Point{s.Maneuver.Location[0], s.Maneuver.Location[1]}
				if containsAny(name, lockKeywords) {
					out = append(out, domain.Infrastructure{
						Kind: domain.InfrastructureLock, Name: s.Name, Point: point, DistanceFromStartMeters: distance,
					})
				}
				if containsAny(name, bridgeKeywords) {
					out = append(out, domain.Infrastructure{
						Kind: domain.InfrastructureBridge, Name: s.Name, Point: point, DistanceFromStartMeters: distance,
					})
				}
			}
			distance += s.Distance
		}
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

type routeResponse struct {
	Code   string  `json:"code"`
	Routes []route `json:"routes"`
}

type route struct {
	Geometry *geojson.Geometry `json:"geometry"`
	Distance float64           `json:"distance"`
	Duration float64           `json:"duration"`
	Legs     []leg             `json:"legs"`
}

type leg struct {
	Steps []step `json:"steps"`
}

type step struct {
	Name     string   `json:"name"`
	Distance float64  `json:"distance"`
	Maneuver maneuver `json:"maneuver"`
}

type maneuver struct {
	Location []float64 `json:"location"`
}
