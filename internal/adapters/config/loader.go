// Package config loads fairway.yaml into a domain.Config.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FAIRWAY_"

// Loader implements ports.ConfigLoader. Values come from defaults, then the YAML
// file, then a .env file next to it, then the process environment.
type Loader struct {
	fs       FileSystem
	lookup   func(string) (string, bool)
	validate *validator.Validate
}

// NewLoader creates a Loader reading from fsys and the process environment.
func NewLoader(fsys FileSystem) *Loader {
	return &Loader{
		fs:       fsys,
		lookup:   os.LookupEnv,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// WithLookup replaces the environment lookup.
func (l *Loader) WithLookup(lookup func(string) (string, bool)) *Loader {
	l.lookup = lookup
	return l
}

// Load reads the configuration at path. A missing file yields the defaults.
func (l *Loader) Load(path string) (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	data, err := l.fs.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	default:
		file, parseErr := l.parse(data)
		if parseErr != nil {
			return nil, zerr.With(parseErr, "path", path)
		}
		apply(cfg, file)
	}

	dotenv, err := l.dotenv(filepath.Join(filepath.Dir(path), ".env"))
	if err != nil {
		return nil, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := l.lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := overrideFromEnv(cfg, lookup); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) parse(data []byte) (*File, error) {
	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	if err := l.validate.Struct(&file); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			wrapped := zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "field failed validation"), "field", first.Namespace())
			return nil, zerr.With(wrapped, "rule", first.Tag())
		}
		return nil, zerr.Wrap(err, domain.ErrConfigInvalid.Error())
	}
	return &file, nil
}

func (l *Loader) dotenv(path string) (map[string]string, error) {
	data, err := l.fs.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	env, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	return env, nil
}

//nolint:gocyclo,cyclop // flat field mapping
func apply(cfg *domain.Config, f *File) {
	if p := f.Primary; p != nil {
		setString(&cfg.Primary.URL, p.URL)
		setDuration(&cfg.Primary.Timeout, p.Timeout)
		setDuration(&cfg.Primary.HealthTimeout, p.HealthTimeout)
		setDuration(&cfg.Primary.BreakerTimeout, p.BreakerTimeout)
		if p.MaxFailures > 0 {
			cfg.Primary.MaxFailures = p.MaxFailures
		}
	}

	if g := f.Graph; g != nil {
		setBool(&cfg.Graph.Enabled, g.Enabled)
		setDuration(&cfg.Graph.Timeout, g.Timeout)
		setFloat(&cfg.Graph.SegmentCutoffKm, g.SegmentCutoffKm)
		setFloat(&cfg.Graph.RegionBufferKm, g.RegionBufferKm)
		setDuration(&cfg.Graph.CacheTTL, g.CacheTTL)
		setString(&cfg.Graph.FeatureCacheDir, g.FeatureCacheDir)
		if g.FeatureCache != nil {
			cfg.Graph.FeatureCacheOff = !*g.FeatureCache
		}
		if len(g.Penalties) > 0 {
			cfg.Graph.Penalties = make(domain.WaterwayPenalties, len(g.Penalties))
			for kind, v := range g.Penalties {
				cfg.Graph.Penalties[domain.WaterwayKind(kind)] = v
			}
		}
	}

	if o := f.Overpass; o != nil {
		if len(o.Endpoints) > 0 {
			cfg.Overpass.Endpoints = append([]string(nil), o.Endpoints...)
		}
		setDuration(&cfg.Overpass.Timeout, o.Timeout)
		setFloat(&cfg.Overpass.RequestsPerSecond, o.RequestsPerSecond)
	}

	if b := f.Boat; b != nil {
		cfg.Boat.DraftM = b.Draft
		cfg.Boat.HeightM = b.Height
		cfg.Boat.BeamM = b.Beam
		setFloat(&cfg.Boat.SpeedKmh, b.SpeedKmh)
	}

	if lk := f.Locks; lk != nil {
		setString(&cfg.Locks.File, lk.File)
		setFloat(&cfg.Locks.BufferMeters, lk.BufferMeters)
		setBool(&cfg.Locks.Watch, lk.Watch)
	}

	if c := f.Current; c != nil {
		setBool(&cfg.Current.Enabled, c.Enabled)
		setFloat(&cfg.Current.MatchToleranceDeg, c.MatchToleranceDeg)
		for _, w := range c.Waterways {
			kind := domain.WaterwayKind(w.Kind)
			if kind == "" {
				kind = domain.WaterwayRiver
			}
			cfg.Current.Waterways = append(cfg.Current.Waterways, domain.WaterwayCurrent{
				Name:             w.Name,
				Kind:             kind,
				CurrentKmh:       w.CurrentKmh,
				FlowDirectionDeg: w.FlowDirectionDeg,
			})
		}
	}

	if g := f.Gauges; g != nil {
		setBool(&cfg.Gauges.Enabled, g.Enabled)
		setString(&cfg.Gauges.URL, g.URL)
		setDuration(&cfg.Gauges.Timeout, g.Timeout)
		setDuration(&cfg.Gauges.CacheTTL, g.CacheTTL)
		setFloat(&cfg.Gauges.MaxRadiusKm, g.MaxRadiusKm)
	}

	if s := f.Server; s != nil {
		setString(&cfg.Server.Addr, s.Addr)
		if len(s.AllowOrigins) > 0 {
			cfg.Server.AllowOrigins = append([]string(nil), s.AllowOrigins...)
		}
	}

	if lg := f.Log; lg != nil {
		setBool(&cfg.Log.JSON, lg.JSON)
		setBool(&cfg.Log.Verbose, lg.Verbose)
	}
}

// overrideFromEnv applies FAIRWAY_* variables.
func overrideFromEnv(cfg *domain.Config, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"PRIMARY_URL":       &cfg.Primary.URL,
		"LOCKS_FILE":        &cfg.Locks.File,
		"SERVER_ADDR":       &cfg.Server.Addr,
		"FEATURE_CACHE_DIR": &cfg.Graph.FeatureCacheDir,
		"GAUGES_URL":        &cfg.Gauges.URL,
	}
	bools := map[string]*bool{
		"GRAPH_ENABLED":   &cfg.Graph.Enabled,
		"CURRENT_ENABLED": &cfg.Current.Enabled,
		"GAUGES_ENABLED":  &cfg.Gauges.Enabled,
		"LOCKS_WATCH":     &cfg.Locks.Watch,
		"LOG_JSON":        &cfg.Log.JSON,
		"LOG_VERBOSE":     &cfg.Log.Verbose,
	}
	floats := map[string]*float64{
		"BOAT_SPEED_KMH":     &cfg.Boat.SpeedKmh,
		"SEGMENT_CUTOFF_KM":  &cfg.Graph.SegmentCutoffKm,
		"LOCK_BUFFER_METERS": &cfg.Locks.BufferMeters,
	}
	durations := map[string]*time.Duration{
		"PRIMARY_TIMEOUT": &cfg.Primary.Timeout,
		"GRAPH_TIMEOUT":   &cfg.Graph.Timeout,
		"GRAPH_CACHE_TTL": &cfg.Graph.CacheTTL,
	}

	invalid := func(key, value string, err error) error {
		wrapped := zerr.With(zerr.Wrap(domain.ErrConfigInvalid, err.Error()), "env", EnvPrefix+key)
		return zerr.With(wrapped, "value", value)
	}

	for key, dst := range strs {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	for key, dst := range bools {
		if v, ok := lookup(EnvPrefix + key); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return invalid(key, v, err)
			}
			*dst = b
		}
	}
	for key, dst := range floats {
		if v, ok := lookup(EnvPrefix + key); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil || f < 0 {
				if err == nil {
					err = errors.New("must not be negative")
				}
				return invalid(key, v, err)
			}
			*dst = f
		}
	}
	for key, dst := range durations {
		if v, ok := lookup(EnvPrefix + key); ok {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err != nil {
				return invalid(key, v, err)
			}
			*dst = d
		}
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setFloat(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v > 0 {
		*dst = v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
