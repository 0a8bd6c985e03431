package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fairway/internal/adapters/httpapi"
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/fairway/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type fakeService struct {
	routeReq  domain.RouteRequest
	routeErr  error
	statusID  int64
	statusAt  time.Time
	statusErr error
	center    orb.Point
	radius    float64
	nearby    []domain.NearbyLock
}

func (s *fakeService) Route(_ context.Context, req domain.RouteRequest) (*domain.RouteResult, error) {
	s.routeReq = req
	if s.routeErr != nil {
		return nil, s.routeErr
	}
	line := orb.LineString(req.Waypoints)
	return &domain.RouteResult{Geometry: line, DistanceMeters: 1852, RoutingType: domain.RoutingDirectLine}, nil
}

func (s *fakeService) LockStatus(_ context.Context, id int64, at time.Time) (*domain.LockReport, error) {
	s.statusID, s.statusAt = id, at
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	return &domain.LockReport{
		Lock:   domain.LockRecord{ID: id, Name: "Schleuse Rothensee"},
		At:     at,
		Status: domain.LockStatus{State: domain.LockOpen, Reason: "Open"},
	}, nil
}

func (s *fakeService) LocksNearby(_ context.Context, center orb.Point, radiusKm float64) ([]domain.NearbyLock, error) {
	s.center, s.radius = center, radiusKm
	return s.nearby, nil
}

var fixedNow = time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

func newServer(t *testing.T, svc httpapi.Service) *httpapi.Server {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	cfg := domain.ServerConfig{AllowOrigins: []string{"https://map.example.org"}}
	return httpapi.New(svc, log, cfg, httpapi.WithClock(func() time.Time { return fixedNow }))
}

func do(t *testing.T, s *httpapi.Server, method, target string, body []byte, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	rec := do(t, newServer(t, &fakeService{}), http.MethodGet, "/health", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_RequestID(t *testing.T) {
	s := newServer(t, &fakeService{})

	t.Run("echoes caller id", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/health", nil, map[string]string{httpapi.RequestIDHeader: "abc-123"})
		assert.Equal(t, "abc-123", rec.Header().Get(httpapi.RequestIDHeader))
	})

	t.Run("assigns a new id", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/health", nil, nil)
		assert.Len(t, rec.Header().Get(httpapi.RequestIDHeader), 36)
	})
}

func TestServer_CORS(t *testing.T) {
	s := newServer(t, &fakeService{})

	rec := do(t, s, http.MethodGet, "/health", nil, map[string]string{"Origin": "https://map.example.org"})
	assert.Equal(t, "https://map.example.org", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, s, http.MethodGet, "/health", nil, map[string]string{"Origin": "https://evil.example.com"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestServer_Route(t *testing.T) {
	svc := &fakeService{}
	s := newServer(t, svc)

	body := []byte(`{"waypoints":[[11.62,52.12],[11.72,52.26]],"boat_draft":1.2,"boat_speed_kmh":12,"departure":"2024-06-03T08:00:00Z"}`)
	rec := do(t, s, http.MethodPost, "/api/route", body, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var feature struct {
		Type       string         `json:"type"`
		Properties map[string]any `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feature))
	assert.Equal(t, "Feature", feature.Type)
	assert.Equal(t, "direct", feature.Properties["routing_type"])

	assert.Equal(t, []orb.Point{{11.62, 52.12}, {11.72, 52.26}}, svc.routeReq.Waypoints)
	require.NotNil(t, svc.routeReq.Boat)
	assert.InDelta(t, 1.2, svc.routeReq.Boat.DraftM, 1e-9)
	assert.InDelta(t, 12.0, svc.routeReq.Boat.SpeedKmh, 1e-9)
	require.NotNil(t, svc.routeReq.Departure)
	assert.True(t, svc.routeReq.Departure.Equal(time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)))
}

func TestServer_Route_WithoutBoat(t *testing.T) {
	svc := &fakeService{}
	rec := do(t, newServer(t, svc), http.MethodPost, "/api/route", []byte(`{"waypoints":[[11.62,52.12],[11.72,52.26]]}`), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.routeReq.Boat)
	assert.Nil(t, svc.routeReq.Departure)
}

func TestServer_Route_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
	}{
		{name: "malformed json", body: `{"waypoints":`},
		{name: "single waypoint", body: `{"waypoints":[[11.62,52.12]]}`},
		{name: "waypoint with three values", body: `{"waypoints":[[11.62,52.12,3],[11.72,52.26]]}`},
		{
			name: "rejected by planner",
			body: `{"waypoints":[[11.62,52.12],[11.72,95]]}`,
			err:  zerr.Wrap(domain.ErrInvalidInput, "waypoint out of range"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServer(t, &fakeService{routeErr: tt.err})
			rec := do(t, s, http.MethodPost, "/api/route", []byte(tt.body), map[string]string{httpapi.RequestIDHeader: "req-1"})

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var resp httpapi.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, "req-1", resp.RequestID)
		})
	}
}

func TestServer_Route_InternalError(t *testing.T) {
	s := newServer(t, &fakeService{routeErr: context.Canceled})
	rec := do(t, s, http.MethodPost, "/api/route", []byte(`{"waypoints":[[11.62,52.12],[11.72,52.26]]}`), nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServer_LockStatus(t *testing.T) {
	t.Run("defaults to now", func(t *testing.T) {
		svc := &fakeService{}
		rec := do(t, newServer(t, svc), http.MethodGet, "/api/locks/12/status", nil, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(12), svc.statusID)
		assert.True(t, svc.statusAt.Equal(fixedNow))

		var report domain.LockReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, domain.LockOpen, report.Status.State)
	})

	t.Run("explicit time", func(t *testing.T) {
		svc := &fakeService{}
		rec := do(t, newServer(t, svc), http.MethodGet, "/api/locks/12/status?at=2024-06-08T19:30:00Z", nil, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, svc.statusAt.Equal(time.Date(2024, 6, 8, 19, 30, 0, 0, time.UTC)))
	})

	cases := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{name: "non numeric id", target: "/api/locks/abc/status", status: http.StatusBadRequest},
		{name: "bad time", target: "/api/locks/12/status?at=tomorrow", status: http.StatusBadRequest},
		{
			name:   "unknown lock",
			target: "/api/locks/99/status",
			err:    zerr.With(zerr.Wrap(domain.ErrLockNotFound, "lookup"), "id", 99),
			status: http.StatusNotFound,
		},
		{
			name:   "no directory",
			target: "/api/locks/12/status",
			err:    zerr.Wrap(domain.ErrLockDataUnavailable, "no lock directory loaded"),
			status: http.StatusServiceUnavailable,
		},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newServer(t, &fakeService{statusErr: tt.err}), http.MethodGet, tt.target, nil, nil)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestServer_LocksNearby(t *testing.T) {
	svc := &fakeService{nearby: []domain.NearbyLock{
		{Lock: domain.LockRecord{ID: 12, Name: "Schleuse Rothensee"}, DistanceMeters: 840},
	}}
	rec := do(t, newServer(t, svc), http.MethodGet, "/api/locks/nearby?lat=52.17&lon=11.67&radius_km=5", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, orb.Point{11.67, 52.17}, svc.center)
	assert.InDelta(t, 5.0, svc.radius, 1e-9)

	var resp httpapi.NearbyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, int64(12), resp.Locks[0].Lock.ID)
}

func TestServer_LocksNearby_Defaults(t *testing.T) {
	svc := &fakeService{}
	rec := do(t, newServer(t, svc), http.MethodGet, "/api/locks/nearby?lat=52.17&lon=11.67", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 50.0, svc.radius, 1e-9)
	assert.JSONEq(t, `{"locks":[],"count":0}`, rec.Body.String())
}

func TestServer_LocksNearby_BadQuery(t *testing.T) {
	s := newServer(t, &fakeService{})
	for _, target := range []string{
		"/api/locks/nearby",
		"/api/locks/nearby?lat=52.1",
		"/api/locks/nearby?lat=95&lon=11",
		"/api/locks/nearby?lat=52&lon=11&radius_km=-1",
	} {
		rec := do(t, s, http.MethodGet, target, nil, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestServer_Metrics(t *testing.T) {
	s := newServer(t, &fakeService{})
	do(t, s, http.MethodGet, "/health", nil, nil)

	rec := do(t, s, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `fairway_http_requests_total{code="200",method="GET",route="/health"} 1`))
}

func TestServer_Run_ShutsDownOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any())

	s := httpapi.New(&fakeService{}, log, domain.ServerConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}
