package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fairway/internal/adapters/lockdir"
	"go.trai.ch/fairway/internal/app"
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/fairway/internal/core/ports"
	"go.trai.ch/fairway/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fakePlanner struct {
	result *domain.RouteResult
	err    error
	obs    ports.PlanObserver
	calls  int
}

func (p *fakePlanner) PlanWith(
	_ context.Context,
	_ domain.RouteRequest,
	obs ports.PlanObserver,
) (*domain.RouteResult, error) {
	p.calls++
	p.obs = obs
	if obs != nil && p.err == nil {
		obs.OnTierStart(p.result.RoutingType)
		obs.OnTierComplete(p.result.RoutingType, nil)
	}
	return p.result, p.err
}

func testRequest() domain.RouteRequest {
	return domain.RouteRequest{Waypoints: []orb.Point{{11.62, 52.12}, {11.72, 52.26}}}
}

func directResult() *domain.RouteResult {
	return &domain.RouteResult{
		Geometry:       orb.LineString{{11.62, 52.12}, {11.72, 52.26}},
		DistanceMeters: 17000,
		RoutingType:    domain.RoutingDirectLine,
	}
}

func testLocks() *lockdir.Directory {
	rothensee := domain.LockRecord{
		ID:       12,
		Name:     "Schleuse Rothensee",
		Lat:      52.1794,
		Lon:      11.6781,
		OpeningHours: domain.WeeklyHours{
			time.Monday: {Start: domain.ClockTime{Hour: 6}, End: domain.ClockTime{Hour: 22}},
		},
	}
	niegripp := domain.LockRecord{ID: 7, Name: "Schleuse Niegripp", Lat: 52.2633, Lon: 11.7244}
	return lockdir.New([]domain.LockRecord{rothensee, niegripp})
}

func TestApp_Plan_RendersResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)

	planner := &fakePlanner{result: directResult()}
	a := app.New(planner, nil, mocks.NewMockLogger(ctrl), nil)

	gomock.InOrder(
		renderer.EXPECT().OnTierStart(domain.RoutingDirectLine),
		renderer.EXPECT().OnTierComplete(domain.RoutingDirectLine, nil),
		renderer.EXPECT().Render(planner.result).Return(nil),
	)

	require.NoError(t, a.Plan(context.Background(), testRequest(), renderer))
	assert.Equal(t, 1, planner.calls)
	assert.Same(t, renderer, planner.obs)
}

func TestApp_Plan_PropagatesPlannerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)

	planner := &fakePlanner{err: domain.ErrInvalidInput}
	a := app.New(planner, nil, mocks.NewMockLogger(ctrl), nil)

	err := a.Plan(context.Background(), testRequest(), renderer)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApp_Plan_PropagatesRenderError(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	renderer.EXPECT().OnTierStart(gomock.Any())
	renderer.EXPECT().OnTierComplete(gomock.Any(), gomock.Any())
	renderer.EXPECT().Render(gomock.Any()).Return(errors.New("broken pipe"))

	a := app.New(&fakePlanner{result: directResult()}, nil, mocks.NewMockLogger(ctrl), nil)

	err := a.Plan(context.Background(), testRequest(), renderer)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
}

func TestApp_Route_HasNoObserver(t *testing.T) {
	ctrl := gomock.NewController(t)
	planner := &fakePlanner{result: directResult()}
	a := app.New(planner, nil, mocks.NewMockLogger(ctrl), nil)

	got, err := a.Route(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Same(t, planner.result, got)
	assert.Nil(t, planner.obs)
}

func TestApp_LockStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := app.New(&fakePlanner{}, testLocks(), mocks.NewMockLogger(ctrl), nil)

	t.Run("open within hours", func(t *testing.T) {
		at := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC) // Monday
		report, err := a.LockStatus(context.Background(), 12, at)
		require.NoError(t, err)
		assert.Equal(t, int64(12), report.Lock.ID)
		assert.Equal(t, at, report.At)
		assert.Equal(t, domain.LockOpen, report.Status.State)
	})

	t.Run("closed on unlisted weekday", func(t *testing.T) {
		at := time.Date(2024, 6, 4, 10, 0, 0, 0, time.UTC) // Tuesday
		report, err := a.LockStatus(context.Background(), 12, at)
		require.NoError(t, err)
		assert.Equal(t, domain.LockClosed, report.Status.State)
	})

	t.Run("unknown lock", func(t *testing.T) {
		_, err := a.LockStatus(context.Background(), 99, time.Now())
		assert.ErrorIs(t, err, domain.ErrLockNotFound)
	})
}

func TestApp_LocksWithoutDirectory(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := app.New(&fakePlanner{}, nil, mocks.NewMockLogger(ctrl), nil)

	_, err := a.LockStatus(context.Background(), 12, time.Now())
	require.ErrorIs(t, err, domain.ErrLockDataUnavailable)

	_, err = a.LocksNearby(context.Background(), orb.Point{11.6, 52.1}, 10)
	require.ErrorIs(t, err, domain.ErrLockDataUnavailable)
}

func TestApp_LocksNearby(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := app.New(&fakePlanner{}, testLocks(), mocks.NewMockLogger(ctrl), nil)

	got, err := a.LocksNearby(context.Background(), orb.Point{11.6781, 52.1794}, 20)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(12), got[0].Lock.ID)
	assert.Equal(t, int64(7), got[1].Lock.ID)

	_, err = a.LocksNearby(context.Background(), orb.Point{200, 52}, 20)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApp_Serve_StopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	a := app.New(&fakePlanner{}, nil, log, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- a.Serve(ctx, "127.0.0.1:0")
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}

func TestApp_PlanTrip_GeoJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	a := app.New(&fakePlanner{result: directResult()}, nil, mocks.NewMockLogger(ctrl), nil).
		WithOutput(stdout, stderr)

	require.NoError(t, a.PlanTrip(context.Background(), testRequest(), app.PlanOptions{OutputMode: "geojson"}))

	var feature map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &feature))
	assert.Equal(t, "Feature", feature["type"])
	assert.Empty(t, stderr.String())
}

func TestApp_PlanTrip_Summary(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	ctrl := gomock.NewController(t)
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	a := app.New(&fakePlanner{result: directResult()}, nil, mocks.NewMockLogger(ctrl), nil).
		WithOutput(stdout, stderr)

	require.NoError(t, a.PlanTrip(context.Background(), testRequest(), app.PlanOptions{OutputMode: "summary"}))

	assert.Contains(t, stdout.String(), "Distance")
	assert.Contains(t, stderr.String(), string(domain.RoutingDirectLine))
}

type recordingCloser struct {
	name  string
	order *[]string
	err   error
}

func (c recordingCloser) Close() error {
	*c.order = append(*c.order, c.name)
	return c.err
}

func TestComponents_CloseReleasesInReverseOrder(t *testing.T) {
	var order []string
	boom := errors.New("badger still busy")
	c := app.NewComponents(nil, nil,
		recordingCloser{name: "cache", order: &order, err: boom},
		recordingCloser{name: "watcher", order: &order},
	)

	err := c.Close()

	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"watcher", "cache"}, order)
}

func TestComponents_CloseWithoutResources(t *testing.T) {
	assert.NoError(t, app.NewComponents(nil, nil).Close())
}
