package config

import "time"

// File is the structure of fairway.yaml. Pointer fields distinguish "unset" from
// an explicit zero or false.
type File struct {
	Primary  *PrimaryDTO  `yaml:"primary"`
	Graph    *GraphDTO    `yaml:"graph"`
	Overpass *OverpassDTO `yaml:"overpass"`
	Boat     *BoatDTO     `yaml:"boat"`
	Locks    *LocksDTO    `yaml:"locks"`
	Current  *CurrentDTO  `yaml:"current"`
	Gauges   *GaugesDTO   `yaml:"gauges"`
	Server   *ServerDTO   `yaml:"server"`
	Log      *LogDTO      `yaml:"log"`
}

// PrimaryDTO configures the network router tier.
type PrimaryDTO struct {
	URL            string        `yaml:"url"             validate:"omitempty,url"`
	Timeout        time.Duration `yaml:"timeout"         validate:"gte=0"`
	HealthTimeout  time.Duration `yaml:"health_timeout"  validate:"gte=0"`
	BreakerTimeout time.Duration `yaml:"breaker_timeout" validate:"gte=0"`
	MaxFailures    uint32        `yaml:"max_failures"`
}

// GraphDTO configures the graph search tier.
type GraphDTO struct {
	Enabled         *bool         `yaml:"enabled"`
	Timeout         time.Duration `yaml:"timeout"           validate:"gte=0"`
	SegmentCutoffKm float64       `yaml:"segment_cutoff_km" validate:"gte=0"`
	RegionBufferKm  float64       `yaml:"region_buffer_km"  validate:"gte=0"`
	CacheTTL        time.Duration `yaml:"cache_ttl"         validate:"gte=0"`
	FeatureCacheDir string        `yaml:"feature_cache_dir"`
	FeatureCache    *bool         `yaml:"feature_cache"`

	// Penalties scales edge costs per waterway kind, e.g. {ditch: 10}.
	Penalties map[string]float64 `yaml:"penalties" validate:"dive,keys,oneof=river canal fairway stream tidal_channel ditch drain ferry,endkeys,gte=1"`
}

// OverpassDTO configures the waterway geodata source.
type OverpassDTO struct {
	Endpoints         []string      `yaml:"endpoints"           validate:"dive,url"`
	Timeout           time.Duration `yaml:"timeout"             validate:"gte=0"`
	RequestsPerSecond float64       `yaml:"requests_per_second" validate:"gte=0"`
}

// BoatDTO is the default boat profile.
type BoatDTO struct {
	Draft    float64 `yaml:"draft"     validate:"gte=0"`
	Height   float64 `yaml:"height"    validate:"gte=0"`
	Beam     float64 `yaml:"beam"      validate:"gte=0"`
	SpeedKmh float64 `yaml:"speed_kmh" validate:"gte=0"`
}

// LocksDTO configures the lock directory.
type LocksDTO struct {
	File         string  `yaml:"file"`
	BufferMeters float64 `yaml:"buffer_meters" validate:"gte=0"`
	Watch        *bool   `yaml:"watch"`
}

// CurrentDTO configures the current adjuster.
type CurrentDTO struct {
	Enabled           *bool         `yaml:"enabled"`
	MatchToleranceDeg float64       `yaml:"match_tolerance_deg" validate:"gte=0,lte=90"`
	Waterways         []WaterwayDTO `yaml:"waterways"           validate:"dive"`
}

// WaterwayDTO is one row of the static current table.
type WaterwayDTO struct {
	Name             string   `yaml:"name"               validate:"required"`
	Kind             string   `yaml:"kind"               validate:"omitempty,oneof=river canal fairway stream tidal_channel ditch drain ferry"`
	CurrentKmh       float64  `yaml:"current_kmh"        validate:"gte=0"`
	FlowDirectionDeg *float64 `yaml:"flow_direction_deg" validate:"omitempty,gte=0,lt=360"`
}

// GaugesDTO configures live gauge lookups.
type GaugesDTO struct {
	Enabled     *bool         `yaml:"enabled"`
	URL         string        `yaml:"url"           validate:"omitempty,url"`
	Timeout     time.Duration `yaml:"timeout"       validate:"gte=0"`
	CacheTTL    time.Duration `yaml:"cache_ttl"     validate:"gte=0"`
	MaxRadiusKm float64       `yaml:"max_radius_km" validate:"gte=0"`
}

// ServerDTO configures the HTTP surface.
type ServerDTO struct {
	Addr         string   `yaml:"addr"`
	AllowOrigins []string `yaml:"allow_origins"`
}

// LogDTO configures logging.
type LogDTO struct {
	JSON    *bool `yaml:"json"`
	Verbose *bool `yaml:"verbose"`
}
