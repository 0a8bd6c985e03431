package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/fairway/internal/app"
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/fairway/internal/core/ports"
	"go.trai.ch/fairway/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type blockingPlanner struct{}

func (blockingPlanner) PlanWith(ctx context.Context, _ domain.RouteRequest, _ ports.PlanObserver) (*domain.RouteResult, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type failingPlanner struct{}

func (failingPlanner) PlanWith(context.Context, domain.RouteRequest, ports.PlanObserver) (*domain.RouteResult, error) {
	return nil, errors.New("planner exploded")
}

func providerFor(a *app.App, log ports.Logger) ComponentProvider {
	return func(context.Context) (*app.Components, func(), error) {
		return &app.Components{App: a, Logger: log}, func() {}, nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	provider := func(context.Context) (*app.Components, func(), error) {
		t.Fatal("version must not build the application")
		return nil, nil, nil
	}

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, stderr, provider)

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "fairway version")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"serve"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run logs and returns 1 when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).Times(1)

	application := app.New(failingPlanner{}, nil, mockLogger, nil)

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"plan", "11.6,52.1", "11.7,52.2", "-o", "geojson"},
		stdout, stderr, providerFor(application, mockLogger), func(a *app.App) {
			a.WithOutput(stdout, stderr)
		})

	assert.Equal(t, 1, exitCode)
}

// TestRun_Signal verifies that cancelling the context stops a running command.
func TestRun_Signal(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	application := app.New(blockingPlanner{}, nil, mockLogger, nil)

	ctx, cancel := context.WithCancel(context.Background())
	exitCh := make(chan int)
	go func() {
		exitCh <- run(ctx, []string{"plan", "11.6,52.1", "11.7,52.2", "-o", "geojson"},
			new(bytes.Buffer), new(bytes.Buffer), providerFor(application, mockLogger))
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case code := <-exitCh:
		assert.NotEqual(t, 0, code)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after cancellation")
	}
}

// TestRun_CleanupAfterExecution verifies that resources acquired by the provider are released.
func TestRun_CleanupAfterExecution(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).Times(1)

	application := app.New(failingPlanner{}, nil, mockLogger, nil)

	var cleaned bool
	provider := func(context.Context) (*app.Components, func(), error) {
		return app.NewComponents(application, mockLogger), func() { cleaned = true }, nil
	}

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"plan", "11.6,52.1", "11.7,52.2", "-o", "geojson"},
		stdout, stderr, provider, func(a *app.App) {
			a.WithOutput(stdout, stderr)
		})

	assert.Equal(t, 1, exitCode)
	assert.True(t, cleaned)
}
