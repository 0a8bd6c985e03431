// Package pegelonline lists German federal waterway gauges and their latest readings.
package pegelonline

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/paulmach/orb"
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

const (
	stationsPath = "/stations.json"

	seriesWaterLevel   = "W"
	seriesFlowVelocity = "VA"

	msToKmh = 3.6
)

// Client implements ports.GaugeSource. The full station list is fetched once per
// cache period and filtered by bounding box locally. A failed fetch is remembered
// for a short backoff so callers fail fast while the service is down.
type Client struct {
	baseURL    string
	httpClient *http.Client
	ttl        time.Duration
	backoff    time.Duration
	now        func() time.Time

	flight    singleflight.Group
	mu        sync.Mutex
	stations  []domain.Gauge
	fetchedAt time.Time
	failErr   error
	failedAt  time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// New creates a Client from cfg.
func New(cfg domain.GaugeConfig, opts ...Option) *Client {
	base := cfg.URL
	if base == "" {
		base = domain.DefaultGaugeURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultGaugeTimeout
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = domain.DefaultGaugeCacheTTL
	}

	c := &Client{
		baseURL:    strings.TrimRight(base, "/"),
		httpClient: &http.Client{Timeout: timeout},
		ttl:        ttl,
		backoff:    domain.DefaultGaugeFailureBackoff,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Gauges returns the gauges inside bound in station list order.
func (c *Client) Gauges(ctx context.Context, bound orb.Bound) ([]domain.Gauge, error) {
	stations, err := c.all(ctx)
	if err != nil {
		return nil, err
	}

	var out []domain.Gauge
	for _, g := range stations {
		if bound.Contains(g.Point) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (c *Client) all(ctx context.Context) ([]domain.Gauge, error) {
	c.mu.Lock()
	now := c.now()
	if c.stations != nil && now.Sub(c.fetchedAt) < c.ttl {
		stations := c.stations
		c.mu.Unlock()
		return stations, nil
	}
	if c.failErr != nil && now.Sub(c.failedAt) < c.backoff {
		err := c.failErr
		c.mu.Unlock()
		return nil, err
	}
	c.mu.Unlock()

	// The shared fetch is bounded by the HTTP client timeout; each caller only
	// waits as long as its own context allows.
	ch := c.flight.DoChan("stations", func() (any, error) {
		stations, err := c.fetch(context.WithoutCancel(ctx))

		c.mu.Lock()
		defer c.mu.Unlock()
		if err != nil {
			c.failErr, c.failedAt = err, c.now()
			return nil, err
		}
		c.stations, c.fetchedAt = stations, c.now()
		c.failErr = nil
		return stations, nil
	})

	select {
	case <-ctx.Done():
		return nil, zerr.Wrap(domain.ErrGaugeRequestFailed, ctx.Err().Error())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		stations, _ := res.Val.([]domain.Gauge)
		return stations, nil
	}
}

func (c *Client) fetch(ctx context.Context) ([]domain.Gauge, error) {
	url := c.baseURL + stationsPath + "?includeTimeseries=true&includeCurrentMeasurement=true"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, zerr.Wrap(domain.ErrGaugeRequestFailed, err.Error())
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, zerr.Wrap(domain.ErrGaugeRequestFailed, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, zerr.With(zerr.Wrap(domain.ErrGaugeRequestFailed, "unexpected status"), "status", resp.StatusCode)
	}

	var stations []station
	if err := json.NewDecoder(resp.Body).Decode(&stations); err != nil {
		return nil, zerr.Wrap(domain.ErrGaugeRequestFailed, err.Error())
	}

	gauges := make([]domain.Gauge, 0, len(stations))
	for _, s := range stations {
		if g, ok := s.gauge(); ok {
			gauges = append(gauges, g)
		}
	}
	return gauges, nil
}

type station struct {
	UUID       string       `json:"uuid"`
	ShortName  string       `json:"shortname"`
	LongName   string       `json:"longname"`
	Latitude   *float64     `json:"latitude"`
	Longitude  *float64     `json:"longitude"`
	Water      water        `json:"water"`
	Timeseries []timeseries `json:"timeseries"`
}

type water struct {
	ShortName string `json:"shortname"`
	LongName  string `json:"longname"`
}

type timeseries struct {
	ShortName          string       `json:"shortname"`
	Unit               string       `json:"unit"`
	CurrentMeasurement *measurement `json:"currentMeasurement"`
}

type measurement struct {
	Timestamp time.Time `json:"timestamp"`
	Value     *float64  `json:"value"`
}

// gauge converts s. Stations without coordinates or without any current reading are dropped.
func (s station) gauge() (domain.Gauge, bool) {
	if s.Latitude == nil || s.Longitude == nil {
		return domain.Gauge{}, false
	}

	name := s.LongName
	if name == "" {
		name = s.ShortName
	}
	g := domain.Gauge{
		ID:    s.UUID,
		Name:  name,
		Water: s.Water.LongName,
		Point: orb.Point{*s.Longitude, *s.Latitude},
	}

	for _, ts := range s.Timeseries {
		m := ts.CurrentMeasurement
		if m == nil || m.Value == nil {
			continue
		}
		switch ts.ShortName {
		case seriesWaterLevel:
			g.WaterLevelCm = domain.Float64(*m.Value)
			g.MeasuredAt = m.Timestamp
		case seriesFlowVelocity:
			g.FlowVelocityKmh = domain.Float64(*m.Value * msToKmh)
			if g.MeasuredAt.IsZero() {
				g.MeasuredAt = m.Timestamp
			}
		}
	}
	if g.WaterLevelCm == nil && g.FlowVelocityKmh == nil {
		return domain.Gauge{}, false
	}
	return g, true
}
