package domain

import (
	"time"

	"github.com/paulmach/orb"
)

// WaterwayCurrent is the static current table entry for a named waterway.
type WaterwayCurrent struct {
	Name       string
	Kind       WaterwayKind
	CurrentKmh float64
	// FlowDirectionDeg is the predominant downstream bearing, nil when unknown.
	FlowDirectionDeg *float64
}

// KnownFlowDirections are the predominant downstream bearings of major German rivers.
var KnownFlowDirections = map[string]float64{
	"Rhein": 0,
	"Main":  270,
	"Mosel": 45,
	"Elbe":  315,
	"Saale": 0,
	"Donau": 90,
	"Weser": 0,
	"Oder":  0,
}

// CurrentAdjustment explains how a route duration was revised for water currents.
type CurrentAdjustment struct {
	DetectedWaterway string              `json:"detected_waterway,omitempty"`
	FlowDirectionDeg float64             `json:"flow_direction_deg"`
	FlowSource       string              `json:"flow_source"`
	RouteBearingDeg  float64             `json:"route_bearing_deg"`
	BoatSpeedKmh     float64             `json:"boat_speed_kmh"`
	OriginalHours    float64             `json:"original_duration_h"`
	AdjustedHours    float64             `json:"adjusted_duration_h"`
	TimeDiffHours    float64             `json:"time_diff_h"`
	Segments         []SegmentAdjustment `json:"segments"`
}

// SegmentAdjustment is the per-sample breakdown of a current adjustment.
type SegmentAdjustment struct {
	DistanceKm        float64 `json:"distance_km"`
	CurrentKmh        float64 `json:"current_kmh"`
	SegmentBearingDeg float64 `json:"segment_bearing_deg"`
	EffectiveSpeedKmh float64 `json:"effective_speed_kmh"`
	TimeHours         float64 `json:"time_h"`
	Stalled           bool    `json:"stalled,omitempty"`
}

// Gauge is a water gauge station with its latest flow velocity.
type Gauge struct {
	ID              string
	Name            string
	Water           string
	Point           orb.Point
	WaterLevelCm    *float64
	FlowVelocityKmh *float64
	MeasuredAt      time.Time
}
