package domain

import "time"

// Config is the resolved runtime configuration.
type Config struct {
	Primary  PrimaryConfig
	Graph    GraphConfig
	Overpass OverpassConfig
	Boat     BoatProfile
	Locks    LocksConfig
	Current  CurrentConfig
	Gauges   GaugeConfig
	Server   ServerConfig
	Log      LogConfig
}

// PrimaryConfig configures the Tier 1 network router. An empty URL disables the tier.
type PrimaryConfig struct {
	URL            string
	Timeout        time.Duration
	HealthTimeout  time.Duration
	BreakerTimeout time.Duration
	MaxFailures    uint32
}

// GraphConfig configures the Tier 2 graph search.
type GraphConfig struct {
	Enabled         bool
	Timeout         time.Duration
	SegmentCutoffKm float64
	RegionBufferKm  float64
	CacheTTL        time.Duration
	FeatureCacheDir string
	FeatureCacheOff bool
	Penalties       WaterwayPenalties
}

// OverpassConfig configures the waterway geodata source.
type OverpassConfig struct {
	Endpoints         []string
	Timeout           time.Duration
	RequestsPerSecond float64
}

// LocksConfig configures the lock directory and lock annotation.
type LocksConfig struct {
	File         string
	BufferMeters float64
	Watch        bool
}

// CurrentConfig configures the current adjuster.
type CurrentConfig struct {
	Enabled           bool
	MatchToleranceDeg float64
	Waterways         []WaterwayCurrent
}

// GaugeConfig configures live gauge lookups.
type GaugeConfig struct {
	Enabled     bool
	URL         string
	Timeout     time.Duration
	CacheTTL    time.Duration
	MaxRadiusKm float64
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr         string
	AllowOrigins []string
}

// LogConfig configures logging.
type LogConfig struct {
	JSON    bool
	Verbose bool
}

// Defaults for every configurable value.
const (
	DefaultPrimaryTimeout       = 10 * time.Second
	DefaultPrimaryHealthTimeout = 3 * time.Second
	DefaultBreakerTimeout       = 30 * time.Second
	DefaultBreakerMaxFailures   = 3
	DefaultGraphTimeout         = 60 * time.Second
	DefaultSegmentCutoffKm      = 8.0
	DefaultRegionBufferKm       = 5.0
	DefaultGraphCacheTTL        = 24 * time.Hour
	DefaultOverpassTimeout      = 30 * time.Second
	DefaultOverpassRPS          = 1.0
	DefaultBoatSpeedKmh         = 15.0
	DefaultLockBufferMeters     = 500.0
	DefaultMatchToleranceDeg    = 45.0
	DefaultGaugeURL             = "https://www.pegelonline.wsv.de/webservices/rest-api/v2"
	DefaultGaugeTimeout         = 10 * time.Second
	DefaultGaugeCacheTTL        = 15 * time.Minute
	DefaultGaugeFailureBackoff  = time.Minute
	DefaultGaugeMaxRadiusKm     = 50.0
	DefaultServerAddr           = ":8000"
)

// DefaultOverpassEndpoints are the public Overpass mirrors tried in order.
var DefaultOverpassEndpoints = []string{
	"https://overpass-api.de/api/interpreter",
	"https://lz4.overpass-api.de/api/interpreter",
	"https://z.overpass-api.de/api/interpreter",
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Primary: PrimaryConfig{
			Timeout:        DefaultPrimaryTimeout,
			HealthTimeout:  DefaultPrimaryHealthTimeout,
			BreakerTimeout: DefaultBreakerTimeout,
			MaxFailures:    DefaultBreakerMaxFailures,
		},
		Graph: GraphConfig{
			Enabled:         true,
			Timeout:         DefaultGraphTimeout,
			SegmentCutoffKm: DefaultSegmentCutoffKm,
			RegionBufferKm:  DefaultRegionBufferKm,
			CacheTTL:        DefaultGraphCacheTTL,
			FeatureCacheDir: DefaultFeatureCachePath(),
		},
		Overpass: OverpassConfig{
			Endpoints:         append([]string(nil), DefaultOverpassEndpoints...),
			Timeout:           DefaultOverpassTimeout,
			RequestsPerSecond: DefaultOverpassRPS,
		},
		Boat: BoatProfile{SpeedKmh: DefaultBoatSpeedKmh},
		Locks: LocksConfig{
			File:         DefaultLockFileName,
			BufferMeters: DefaultLockBufferMeters,
		},
		Current: CurrentConfig{
			MatchToleranceDeg: DefaultMatchToleranceDeg,
		},
		Gauges: GaugeConfig{
			URL:         DefaultGaugeURL,
			Timeout:     DefaultGaugeTimeout,
			CacheTTL:    DefaultGaugeCacheTTL,
			MaxRadiusKm: DefaultGaugeMaxRadiusKm,
		},
		Server: ServerConfig{
			Addr:         DefaultServerAddr,
			AllowOrigins: []string{"*"},
		},
	}
}
