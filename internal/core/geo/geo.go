// Package geo provides the spherical geometry used by the routing engine.
//
// All points are orb.Point values in [lon, lat] order.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// EarthRadiusMeters is the mean earth radius.
const EarthRadiusMeters = 6371000.0

// MetersPerDegree approximates the length of one degree of latitude.
const MetersPerDegree = 111000.0

// HaversineMeters returns the great-circle distance between a and b.
func HaversineMeters(a, b orb.Point) float64 {
	if a == b {
		return 0
	}
	lat1 := deg2rad(a.Lat())
	lat2 := deg2rad(b.Lat())
	dLat := deg2rad(b.Lat() - a.Lat())
	dLon := deg2rad(b.Lon() - a.Lon())

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// InitialBearingDegrees returns the initial bearing from a to b in [0, 360).
// Identical points yield 0.
func InitialBearingDegrees(a, b orb.Point) float64 {
	if a == b {
		return 0
	}
	return NormalizeDegrees(orbgeo.Bearing(a, b))
}

// NormalizeDegrees maps any angle into [0, 360).
func NormalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}

// AngleBetweenDegrees returns the smallest angle between two bearings, in [0, 180].
func AngleBetweenDegrees(a, b float64) float64 {
	diff := math.Abs(NormalizeDegrees(a) - NormalizeDegrees(b))
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// CircularMeanDegrees averages bearings as unit vectors. An empty slice yields 0.
func CircularMeanDegrees(bearings []float64) float64 {
	if len(bearings) == 0 {
		return 0
	}
	var x, y float64
	for _, b := range bearings {
		r := deg2rad(b)
		x += math.Cos(r)
		y += math.Sin(r)
	}
	return NormalizeDegrees(rad2deg(math.Atan2(y, x)))
}

// PointToSegmentDistanceMeters returns the distance from p to the segment s-e:
// the perpendicular distance when the projection of p falls inside the segment,
// else the distance to the nearer endpoint.
func PointToSegmentDistanceMeters(p, s, e orb.Point) float64 {
	dStart := HaversineMeters(p, s)
	segment := HaversineMeters(s, e)
	if segment == 0 {
		return dStart
	}
	dEnd := HaversineMeters(p, e)

	// Projection parameter on a local equirectangular plane.
	k := math.Cos(deg2rad((s.Lat() + e.Lat()) / 2))
	sx, sy := s.Lon()*k, s.Lat()
	ex, ey := e.Lon()*k, e.Lat()
	px, py := p.Lon()*k, p.Lat()
	dx, dy := ex-sx, ey-sy
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return dStart
	}
	t := ((px-sx)*dx + (py-sy)*dy) / lenSq

	switch {
	case t < 0:
		return dStart
	case t > 1:
		return dEnd
	}

	// Heron's formula on the spherical side lengths gives the triangle height.
	half := (segment + dStart + dEnd) / 2
	area := math.Sqrt(math.Max(0, half*(half-segment)*(half-dStart)*(half-dEnd)))
	return math.Min(2*area/segment, math.Min(dStart, dEnd))
}

// LengthMeters sums the haversine length of every segment of line.
func LengthMeters(line orb.LineString) float64 {
	var total float64
	for i := 1; i < len(line); i++ {
		total += HaversineMeters(line[i-1], line[i])
	}
	return total
}

// Midpoint returns the arithmetic mean of two points.
func Midpoint(a, b orb.Point) orb.Point {
	return orb.Point{(a.Lon() + b.Lon()) / 2, (a.Lat() + b.Lat()) / 2}
}

// BoundAround returns a bound of radiusKm around center.
func BoundAround(center orb.Point, radiusKm float64) orb.Bound {
	dLat := radiusKm * 1000 / MetersPerDegree
	cos := math.Cos(deg2rad(center.Lat()))
	dLon := dLat
	if cos > 1e-6 {
		dLon = dLat / cos
	}
	return orb.Bound{
		Min: orb.Point{center.Lon() - dLon, center.Lat() - dLat},
		Max: orb.Point{center.Lon() + dLon, center.Lat() + dLat},
	}
}

// PadMeters grows b on every side by meters, converted at MetersPerDegree.
func PadMeters(b orb.Bound, meters float64) orb.Bound {
	return b.Pad(meters / MetersPerDegree)
}

func deg2rad(d float64) float64 {
	return d * math.Pi / 180
}

func rad2deg(r float64) float64 {
	return r * 180 / math.Pi
}
