// Package overpass implements ports.WaterwaySource against the OSM Overpass API.
package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/fairway/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/time/rate"
)

const (
	waterwayFilter = "river|canal|stream|fairway"
	maxBodyBytes   = 64 << 20
)

// Client fetches waterway ways from a list of Overpass endpoints, trying each in turn.
type Client struct {
	endpoints  []string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     ports.Logger
	timeoutSec int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// New creates a Client. Requests are paced at cfg.RequestsPerSecond across all endpoints.
func New(cfg domain.OverpassConfig, logger ports.Logger, opts ...Option) *Client {
	endpoints := cfg.Endpoints
	if len(endpoints) == 0 {
		endpoints = domain.DefaultOverpassEndpoints
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultOverpassTimeout
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	c := &Client{
		endpoints:  slices.Clone(endpoints),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
		timeoutSec: int(timeout.Seconds()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchWaterwayFeatures returns the navigable ways inside bound, ordered by way id.
func (c *Client) FetchWaterwayFeatures(ctx context.Context, bound orb.Bound) ([]domain.Way, error) {
	query := Query(bound, c.timeoutSec)

	var lastErr error
	for _, endpoint := range c.endpoints {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, zerr.Wrap(err, domain.ErrWaterwayFetchFailed.Error())
		}

		ways, err := c.fetch(ctx, endpoint, query)
		if err == nil {
			return ways, nil
		}
		if ctx.Err() != nil {
			return nil, zerr.Wrap(ctx.Err(), domain.ErrWaterwayFetchFailed.Error())
		}
		lastErr = err
		if c.logger != nil {
			c.logger.Warn(fmt.Sprintf("overpass endpoint %s failed: %v", endpoint, err))
		}
	}

	err := zerr.Wrap(domain.ErrWaterwayFetchFailed, "all overpass endpoints failed")
	err = zerr.With(err, "endpoints", len(c.endpoints))
	if lastErr != nil {
		err = zerr.With(err, "last_error", lastErr.Error())
	}
	return nil, err
}

func (c *Client) fetch(ctx context.Context, endpoint, query string) ([]domain.Way, error) {
	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, zerr.With(zerr.New("unexpected status"), "status", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	return ParseWays(body)
}

// Query builds the Overpass QL query for the waterways inside bound.
func Query(bound orb.Bound, timeoutSec int) string {
	if timeoutSec <= 0 {
		timeoutSec = int(domain.DefaultOverpassTimeout.Seconds())
	}
	return fmt.Sprintf(
		"[out:json][timeout:%d];(way[\"waterway\"~\"%s\"](%f,%f,%f,%f););out body;>;out skel qt;",
		timeoutSec, waterwayFilter,
		bound.Min.Lat(), bound.Min.Lon(), bound.Max.Lat(), bound.Max.Lon(),
	)
}

// ParseWays decodes an Overpass JSON document into ways. Node references that are
// missing from the document are dropped; ways left with fewer than two points are skipped.
func ParseWays(data []byte) ([]domain.Way, error) {
	// Overpass headers carry a numeric version; only the element list goes to osm.
	var envelope struct {
		Elements json.RawMessage `json:"elements"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrWaterwayParseFailed, err.Error()), "bytes", len(data))
	}
	if len(envelope.Elements) == 0 {
		return nil, zerr.Wrap(domain.ErrWaterwayParseFailed, "response has no elements")
	}

	var doc osm.OSM
	if err := json.Unmarshal([]byte(`{"elements":`+string(envelope.Elements)+`}`), &doc); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrWaterwayParseFailed, err.Error()), "bytes", len(data))
	}

	nodes := make(map[osm.NodeID]orb.Point, len(doc.Nodes))
	for _, n := range doc.Nodes {
		nodes[n.ID] = orb.Point{n.Lon, n.Lat}
	}

	ways := make([]domain.Way, 0, len(doc.Ways))
	for _, w := range doc.Ways {
		points := make([]orb.Point, 0, len(w.Nodes))
		for _, wn := range w.Nodes {
			if p, ok := nodes[wn.ID]; ok {
				points = append(points, p)
			}
		}
		if len(points) < 2 {
			continue
		}
		ways = append(ways, domain.Way{
			ID:     int64(w.ID),
			Kind:   wayKind(w.Tags),
			Name:   w.Tags.Find("name"),
			Oneway: domain.ParseOneway(w.Tags.Find("oneway")),
			Points: points,
		})
	}

	slices.SortStableFunc(ways, func(a, b domain.Way) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
	return ways, nil
}

func wayKind(tags osm.Tags) domain.WaterwayKind {
	if tags.Find("route") == "ferry" {
		return domain.WaterwayFerry
	}
	switch k := domain.WaterwayKind(tags.Find("waterway")); k {
	case domain.WaterwayRiver, domain.WaterwayCanal, domain.WaterwayFairway,
		domain.WaterwayStream, domain.WaterwayTidalChannel,
		domain.WaterwayDitch, domain.WaterwayDrain:
		return k
	default:
		return domain.WaterwayUnknown
	}
}
