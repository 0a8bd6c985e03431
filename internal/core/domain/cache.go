package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/paulmach/orb"
)

// RegionKey identifies a cached region graph. Centers are rounded to one decimal
// degree and radii up to whole kilometres so nearby requests share a graph.
type RegionKey struct {
	Lat      float64
	Lon      float64
	RadiusKm float64
}

// NewRegionKey rounds center to the cache grid. The radius only grows, so the
// keyed region always covers the requested one.
func NewRegionKey(center orb.Point, radiusKm float64) RegionKey {
	return RegionKey{
		Lat:      math.Round(center.Lat()*10) / 10,
		Lon:      math.Round(center.Lon()*10) / 10,
		RadiusKm: math.Ceil(radiusKm),
	}
}

// Center returns the rounded region center.
func (k RegionKey) Center() orb.Point {
	return orb.Point{k.Lon, k.Lat}
}

func (k RegionKey) String() string {
	return fmt.Sprintf("%.1f,%.1f,%g", k.Lat, k.Lon, k.RadiusKm)
}

// RegionCacheEntry holds a built region graph with its age.
type RegionCacheEntry struct {
	Graph   *Graph
	BuiltAt time.Time
	TTL     time.Duration
}

// Fresh reports whether the entry may still be served at now.
func (e *RegionCacheEntry) Fresh(now time.Time) bool {
	return e != nil && now.Sub(e.BuiltAt) < e.TTL
}
