// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/fairway/internal/adapters/config"
	_ "go.trai.ch/fairway/internal/adapters/featurecache"
	_ "go.trai.ch/fairway/internal/adapters/lockdir"
	_ "go.trai.ch/fairway/internal/adapters/logger"
	_ "go.trai.ch/fairway/internal/adapters/osrm"
	_ "go.trai.ch/fairway/internal/adapters/overpass"
	_ "go.trai.ch/fairway/internal/adapters/pegelonline"
	_ "go.trai.ch/fairway/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/fairway/internal/app"
	_ "go.trai.ch/fairway/internal/engine/coordinator"
	_ "go.trai.ch/fairway/internal/engine/current"
	_ "go.trai.ch/fairway/internal/engine/graphstore"
	_ "go.trai.ch/fairway/internal/engine/pathfinder"
)
