package graphstore

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.trai.ch/fairway/internal/core/domain"
)

const meterName = "go.trai.ch/fairway/graphstore"

type storeMetrics struct {
	lookups  metric.Int64Counter
	builds   metric.Int64Counter
	failures metric.Int64Counter
	nodes    metric.Int64Histogram
}

func newStoreMetrics() *storeMetrics {
	meter := otel.Meter(meterName)
	m := &storeMetrics{
		lookups:  noop.Int64Counter{},
		builds:   noop.Int64Counter{},
		failures: noop.Int64Counter{},
		nodes:    noop.Int64Histogram{},
	}

	if c, err := meter.Int64Counter("fairway.graph.lookups",
		metric.WithDescription("Region graph cache lookups by result.")); err == nil {
		m.lookups = c
	} else {
		otel.Handle(err)
	}
	if c, err := meter.Int64Counter("fairway.graph.builds",
		metric.WithDescription("Region graphs built from fetched waterways.")); err == nil {
		m.builds = c
	} else {
		otel.Handle(err)
	}
	if c, err := meter.Int64Counter("fairway.graph.fetch_failures",
		metric.WithDescription("Waterway fetches that failed and produced an empty graph.")); err == nil {
		m.failures = c
	} else {
		otel.Handle(err)
	}
	if h, err := meter.Int64Histogram("fairway.graph.nodes",
		metric.WithDescription("Node count of built region graphs.")); err == nil {
		m.nodes = h
	} else {
		otel.Handle(err)
	}

	return m
}

func (m *storeMetrics) hit(ctx context.Context) {
	m.lookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", "hit")))
}

func (m *storeMetrics) miss(ctx context.Context) {
	m.lookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", "miss")))
}

func (m *storeMetrics) failure(ctx context.Context) {
	m.failures.Add(ctx, 1)
}

func (m *storeMetrics) built(ctx context.Context, g *domain.Graph) {
	m.builds.Add(ctx, 1)
	m.nodes.Record(ctx, int64(g.NodeCount()))
}
