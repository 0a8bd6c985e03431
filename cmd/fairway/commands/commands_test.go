package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fairway/cmd/fairway/commands"
	"go.trai.ch/fairway/internal/app"
	"go.trai.ch/fairway/internal/build"
	"go.trai.ch/fairway/internal/core/domain"
)

type mockApp struct {
	planFunc   func(ctx context.Context, req domain.RouteRequest, opts app.PlanOptions) error
	serveFunc  func(ctx context.Context, addr string) error
	statusFunc func(ctx context.Context, id int64, at time.Time) (*domain.LockReport, error)
	nearbyFunc func(ctx context.Context, center orb.Point, radiusKm float64) ([]domain.NearbyLock, error)
}

func (m *mockApp) PlanTrip(ctx context.Context, req domain.RouteRequest, opts app.PlanOptions) error {
	if m.planFunc != nil {
		return m.planFunc(ctx, req, opts)
	}
	return nil
}

func (m *mockApp) Serve(ctx context.Context, addr string) error {
	if m.serveFunc != nil {
		return m.serveFunc(ctx, addr)
	}
	return nil
}

func (m *mockApp) LockStatus(ctx context.Context, id int64, at time.Time) (*domain.LockReport, error) {
	if m.statusFunc != nil {
		return m.statusFunc(ctx, id, at)
	}
	return nil, errors.New("not implemented")
}

func (m *mockApp) LocksNearby(ctx context.Context, center orb.Point, radiusKm float64) ([]domain.NearbyLock, error) {
	if m.nearbyFunc != nil {
		return m.nearbyFunc(ctx, center, radiusKm)
	}
	return nil, nil
}

func newCLI(m *mockApp) (*commands.CLI, *bytes.Buffer) {
	cli := commands.New(func(context.Context) (commands.Application, error) { return m, nil })
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetEnvSetter(func(string, string) error { return nil })
	return cli, buf
}

func TestCommands_Plan(t *testing.T) {
	t.Run("wires waypoints and flags", func(t *testing.T) {
		var (
			captured domain.RouteRequest
			opts     app.PlanOptions
		)
		cli, _ := newCLI(&mockApp{
			planFunc: func(_ context.Context, req domain.RouteRequest, o app.PlanOptions) error {
				captured, opts = req, o
				return nil
			},
		})
		cli.SetArgs([]string{
			"plan", "11.6167,52.1205", "11.7244, 52.2633",
			"--draft", "1.4", "--speed", "12",
			"--departure", "2024-06-03T08:00:00Z",
			"-o", "geojson", "--indent",
		})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, []orb.Point{{11.6167, 52.1205}, {11.7244, 52.2633}}, captured.Waypoints)
		require.NotNil(t, captured.Boat)
		assert.InDelta(t, 1.4, captured.Boat.DraftM, 1e-9)
		assert.InDelta(t, 12.0, captured.Boat.SpeedKmh, 1e-9)
		require.NotNil(t, captured.Departure)
		assert.True(t, captured.Departure.Equal(time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)))
		assert.Equal(t, app.PlanOptions{OutputMode: "geojson", Indent: true}, opts)
	})

	t.Run("no boat without boat flags", func(t *testing.T) {
		var captured domain.RouteRequest
		cli, _ := newCLI(&mockApp{
			planFunc: func(_ context.Context, req domain.RouteRequest, _ app.PlanOptions) error {
				captured = req
				return nil
			},
		})
		cli.SetArgs([]string{"plan", "11.6,52.1", "11.7,52.2"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Nil(t, captured.Boat)
		assert.Nil(t, captured.Departure)
	})

	t.Run("accepts western longitudes after the separator", func(t *testing.T) {
		var captured domain.RouteRequest
		cli, _ := newCLI(&mockApp{
			planFunc: func(_ context.Context, req domain.RouteRequest, _ app.PlanOptions) error {
				captured = req
				return nil
			},
		})
		cli.SetArgs([]string{"plan", "--speed", "10", "--", "-1.55,47.21", "-2.76,47.65"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, []orb.Point{{-1.55, 47.21}, {-2.76, 47.65}}, captured.Waypoints)
		require.NotNil(t, captured.Boat)
		assert.InDelta(t, 10.0, captured.Boat.SpeedKmh, 1e-9)
	})

	t.Run("accepts waypoint flags before positional waypoints", func(t *testing.T) {
		var captured domain.RouteRequest
		cli, _ := newCLI(&mockApp{
			planFunc: func(_ context.Context, req domain.RouteRequest, _ app.PlanOptions) error {
				captured = req
				return nil
			},
		})
		cli.SetArgs([]string{"plan", "--waypoint=-3.1,48.2", "-w", "-2.9,48.4", "--", "-1.5,47.2"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, []orb.Point{{-3.1, 48.2}, {-2.9, 48.4}, {-1.5, 47.2}}, captured.Waypoints)
	})

	t.Run("rejects malformed waypoint", func(t *testing.T) {
		cli, _ := newCLI(&mockApp{
			planFunc: func(context.Context, domain.RouteRequest, app.PlanOptions) error {
				panic("should not be called")
			},
		})
		cli.SetArgs([]string{"plan", "11.6;52.1", "11.7,52.2"})

		err := cli.Execute(context.Background())
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("returns error on planning failure", func(t *testing.T) {
		cli, _ := newCLI(&mockApp{
			planFunc: func(context.Context, domain.RouteRequest, app.PlanOptions) error {
				return errors.New("simulated error")
			},
		})
		cli.SetArgs([]string{"plan", "11.6,52.1", "11.7,52.2"})

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("shows usage when no waypoints provided", func(t *testing.T) {
		cli, buf := newCLI(&mockApp{
			planFunc: func(context.Context, domain.RouteRequest, app.PlanOptions) error {
				panic("should not be called")
			},
		})
		cli.SetArgs([]string{"plan"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Contains(t, buf.String(), "Usage:")
	})
}

func TestCommands_Serve(t *testing.T) {
	var addr string
	cli, _ := newCLI(&mockApp{
		serveFunc: func(_ context.Context, a string) error {
			addr = a
			return nil
		},
	})
	cli.SetArgs([]string{"serve", "--addr", "127.0.0.1:9000"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "127.0.0.1:9000", addr)
}

func TestCommands_LockStatus(t *testing.T) {
	opens := domain.ClockTime{Hour: 6}
	report := func(id int64, at time.Time) *domain.LockReport {
		return &domain.LockReport{
			Lock: domain.LockRecord{ID: id, Name: "Schleuse Rothensee", VHFChannel: "20"},
			At:   at,
			Status: domain.LockStatus{
				State:   domain.LockClosed,
				Reason:  "Closed (hours: 06:00-22:00)",
				OpensAt: &opens,
			},
		}
	}

	t.Run("prints status", func(t *testing.T) {
		now := time.Date(2024, 6, 3, 5, 0, 0, 0, time.UTC)
		var gotAt time.Time
		cli, buf := newCLI(&mockApp{
			statusFunc: func(_ context.Context, id int64, at time.Time) (*domain.LockReport, error) {
				gotAt = at
				return report(id, at), nil
			},
		})
		cli.SetClock(func() time.Time { return now })
		cli.SetArgs([]string{"locks", "status", "12"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, now, gotAt)
		assert.Contains(t, buf.String(), "Schleuse Rothensee (#12) at Mon 2024-06-03 05:00: closed")
		assert.Contains(t, buf.String(), "opens at 06:00")
		assert.Contains(t, buf.String(), "VHF 20")
	})

	t.Run("json output", func(t *testing.T) {
		cli, buf := newCLI(&mockApp{
			statusFunc: func(_ context.Context, id int64, at time.Time) (*domain.LockReport, error) {
				return report(id, at), nil
			},
		})
		cli.SetArgs([]string{"locks", "status", "12", "--at", "2024-06-03T05:00:00Z", "--json"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Contains(t, buf.String(), `"state": "closed"`)
		assert.Contains(t, buf.String(), `"opens_at": "06:00"`)
	})

	t.Run("rejects non numeric id", func(t *testing.T) {
		cli, _ := newCLI(&mockApp{})
		cli.SetArgs([]string{"locks", "status", "rothensee"})

		assert.ErrorIs(t, cli.Execute(context.Background()), domain.ErrInvalidInput)
	})

	t.Run("propagates lookup errors", func(t *testing.T) {
		cli, _ := newCLI(&mockApp{
			statusFunc: func(context.Context, int64, time.Time) (*domain.LockReport, error) {
				return nil, domain.ErrLockNotFound
			},
		})
		cli.SetArgs([]string{"locks", "status", "99"})

		assert.ErrorIs(t, cli.Execute(context.Background()), domain.ErrLockNotFound)
	})
}

func TestCommands_LocksNearby(t *testing.T) {
	t.Run("lists locks", func(t *testing.T) {
		var (
			center orb.Point
			radius float64
		)
		cli, buf := newCLI(&mockApp{
			nearbyFunc: func(_ context.Context, c orb.Point, r float64) ([]domain.NearbyLock, error) {
				center, radius = c, r
				return []domain.NearbyLock{
					{Lock: domain.LockRecord{ID: 12, Name: "Schleuse Rothensee", Waterway: "Mittellandkanal"}, DistanceMeters: 840},
					{Lock: domain.LockRecord{ID: 7, Name: "Schleuse Niegripp"}, DistanceMeters: 9800},
				}, nil
			},
		})
		cli.SetArgs([]string{"locks", "nearby", "11.67,52.17", "--radius", "20"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, orb.Point{11.67, 52.17}, center)
		assert.InDelta(t, 20.0, radius, 1e-9)
		assert.Contains(t, buf.String(), "0.8 km  #12    Schleuse Rothensee (Mittellandkanal)")
		assert.Contains(t, buf.String(), "9.8 km  #7     Schleuse Niegripp\n")
	})

	t.Run("reports empty result", func(t *testing.T) {
		cli, buf := newCLI(&mockApp{})
		cli.SetArgs([]string{"locks", "nearby", "11.67,52.17"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Contains(t, buf.String(), "no locks within 50 km of 11.6700,52.1700")
	})

	t.Run("json output is an array", func(t *testing.T) {
		cli, buf := newCLI(&mockApp{})
		cli.SetArgs([]string{"locks", "nearby", "11.67,52.17", "--json"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "[]\n", buf.String())
	})
}

func TestCommands_GlobalFlags(t *testing.T) {
	env := map[string]string{}
	cli, _ := newCLI(&mockApp{})
	cli.SetEnvSetter(func(k, v string) error {
		env[k] = v
		return nil
	})
	cli.SetArgs([]string{"serve", "--config", "/etc/fairway.yaml", "-v"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, map[string]string{
		domain.ConfigEnvVar:   "/etc/fairway.yaml",
		"FAIRWAY_LOG_VERBOSE": "true",
	}, env)
}

func TestCommands_LoaderError(t *testing.T) {
	cli := commands.New(func(context.Context) (commands.Application, error) {
		return nil, errors.New("config broken")
	})
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"serve"})

	err := cli.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config broken")
}

func TestCommands_Version(t *testing.T) {
	cli, buf := newCLI(&mockApp{})
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "fairway version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", buf.String())
}

func TestParseDeparture(t *testing.T) {
	got, err := commands.ParseDeparture("2024-06-03T08:30")
	require.NoError(t, err)
	assert.Equal(t, 8, got.Hour())
	assert.Equal(t, 30, got.Minute())

	_, err = commands.ParseDeparture("next tuesday")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
