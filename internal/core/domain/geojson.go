package domain

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Feature renders the route as a GeoJSON LineString feature.
func (r *RouteResult) Feature() *geojson.Feature {
	line := make(orb.LineString, len(r.Geometry))
	copy(line, r.Geometry)

	f := geojson.NewFeature(line)
	f.Properties["distance_m"] = r.DistanceMeters
	f.Properties["distance_nm"] = r.DistanceNauticalMiles()
	f.Properties["routing_type"] = string(r.RoutingType)
	f.Properties["waterway_routed"] = r.WaterwayRouted

	if r.DurationSeconds != nil {
		f.Properties["duration_s"] = *r.DurationSeconds
		f.Properties["duration_h"] = *r.DurationSeconds / 3600
	}
	if r.BoatRestrictions != nil {
		f.Properties["boat_restrictions"] = r.BoatRestrictions
	}

	locks := make([]lockProperties, 0, len(r.Locks))
	for _, hit := range r.Locks {
		locks = append(locks, newLockProperties(hit))
	}
	f.Properties["locks"] = locks

	warnings := make([]LockWarning, 0, len(r.LockWarnings))
	warnings = append(warnings, r.LockWarnings...)
	f.Properties["lock_warnings"] = warnings

	var bridges, named []infrastructureProperties
	for _, inf := range r.Infrastructure {
		p := infrastructureProperties{
			Name:              inf.Name,
			Lat:               inf.Point.Lat(),
			Lon:               inf.Point.Lon(),
			DistanceFromStart: inf.DistanceFromStartMeters,
		}
		switch inf.Kind {
		case InfrastructureBridge:
			bridges = append(bridges, p)
		case InfrastructureLock:
			named = append(named, p)
		}
	}
	if len(bridges) > 0 {
		f.Properties["bridges"] = bridges
	}
	if len(named) > 0 {
		f.Properties["named_locks"] = named
	}

	if r.CurrentAdjustment != nil {
		f.Properties["current_adjustment"] = r.CurrentAdjustment
		f.Properties["duration_adjusted_h"] = r.CurrentAdjustment.AdjustedHours
	}
	if len(r.Segments) > 0 {
		f.Properties["segments"] = r.Segments
	}
	if len(r.Attempts) > 0 {
		f.Properties["tier_attempts"] = r.Attempts
	}
	return f
}

type lockProperties struct {
	ID                int64       `json:"id"`
	Name              string      `json:"name"`
	Waterway          string      `json:"waterway"`
	Lat               float64     `json:"lat"`
	Lon               float64     `json:"lon"`
	VHFChannel        string      `json:"vhf_channel,omitempty"`
	Phone             string      `json:"phone,omitempty"`
	OpeningHours      WeeklyHours `json:"opening_hours,omitempty"`
	BreakTimes        []TimeRange `json:"break_times,omitempty"`
	AvgDuration       int         `json:"avg_duration"`
	DistanceFromStart float64     `json:"distance_from_start"`
	DistanceFromRoute float64     `json:"distance_from_route"`
}

func newLockProperties(hit LockHit) lockProperties {
	l := hit.Lock
	return lockProperties{
		ID:                l.ID,
		Name:              l.Name,
		Waterway:          l.Waterway,
		Lat:               l.Lat,
		Lon:               l.Lon,
		VHFChannel:        l.VHFChannel,
		Phone:             l.Phone,
		OpeningHours:      l.OpeningHours,
		BreakTimes:        l.BreakTimes,
		AvgDuration:       l.DurationMinutes(),
		DistanceFromStart: hit.DistanceFromStartMeters,
		DistanceFromRoute: hit.DistanceFromRouteMeters,
	}
}

type infrastructureProperties struct {
	Name              string  `json:"name"`
	Lat               float64 `json:"lat"`
	Lon               float64 `json:"lon"`
	DistanceFromStart float64 `json:"distance_from_start"`
}
