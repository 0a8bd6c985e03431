package current_test

import (
	"context"
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/fairway/internal/core/ports/mocks"
	"go.trai.ch/fairway/internal/engine/current"
	"go.uber.org/mock/gomock"
)

func kmh(v float64) *float64 { return &v }

func TestLookup_NearestGaugeWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	gauges := mocks.NewMockGaugeSource(ctrl)

	p := orb.Point{11.6, 52.1}
	gauges.EXPECT().Gauges(gomock.Any(), orb.Bound{
		Min: orb.Point{11.1, 51.6},
		Max: orb.Point{12.1, 52.6},
	}).Return([]domain.Gauge{
		{ID: "far", Point: orb.Point{11.9, 52.1}, FlowVelocityKmh: kmh(5)},
		{ID: "none", Point: orb.Point{11.6, 52.1}},
		{ID: "near", Point: orb.Point{11.61, 52.1}, FlowVelocityKmh: kmh(2.5)},
	}, nil)

	l := current.NewLookup(gauges, nil, 50, nil)
	v, ok := l.CurrentAt(context.Background(), p, "Elbe")

	assert.True(t, ok)
	assert.InDelta(t, 2.5, v, 1e-9)
}

func TestLookup_GaugeOutsideRadiusFallsBackToTable(t *testing.T) {
	ctrl := gomock.NewController(t)
	gauges := mocks.NewMockGaugeSource(ctrl)
	gauges.EXPECT().Gauges(gomock.Any(), gomock.Any()).Return([]domain.Gauge{
		{ID: "far", Point: orb.Point{12.0, 52.5}, FlowVelocityKmh: kmh(5)},
	}, nil)

	l := current.NewLookup(gauges, nil, 10, []domain.WaterwayCurrent{{Name: "Elbe", CurrentKmh: 3}})
	v, ok := l.CurrentAt(context.Background(), orb.Point{11.6, 52.1}, "Elbe")

	assert.True(t, ok)
	assert.InDelta(t, 3, v, 1e-9)
}

func TestLookup_GaugeErrorIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	gauges := mocks.NewMockGaugeSource(ctrl)
	log := mocks.NewMockLogger(ctrl)

	gauges.EXPECT().Gauges(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))
	log.EXPECT().Warn("gauge lookup failed: boom")

	l := current.NewLookup(gauges, log, 50, nil)
	_, ok := l.CurrentAt(context.Background(), orb.Point{11.6, 52.1}, "Elbe")

	assert.False(t, ok)
}

func TestLookup_UnknownWaterway(t *testing.T) {
	l := current.NewLookup(nil, nil, 0, []domain.WaterwayCurrent{{Name: "Elbe", CurrentKmh: 3}})

	_, ok := l.CurrentAt(context.Background(), orb.Point{11.6, 52.1}, "")
	assert.False(t, ok)

	_, ok = l.CurrentAt(context.Background(), orb.Point{11.6, 52.1}, "Rhein")
	assert.False(t, ok)
}
