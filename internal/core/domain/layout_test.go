package domain_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/fairway/internal/core/domain"
)

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv(domain.ConfigEnvVar, "")
	assert.Equal(t, domain.ConfigFileName, domain.DefaultConfigPath())

	t.Setenv(domain.ConfigEnvVar, "/etc/fairway/fairway.yaml")
	assert.Equal(t, "/etc/fairway/fairway.yaml", domain.DefaultConfigPath())
}

func TestDefaultFeatureCachePath(t *testing.T) {
	p := domain.DefaultFeatureCachePath()
	assert.Equal(t, domain.FeatureCacheDirName, filepath.Base(p))
	assert.Equal(t, domain.AppDirName, filepath.Base(filepath.Dir(p)))
}

func TestRegionKey(t *testing.T) {
	a := domain.NewRegionKey(orb.Point{11.6234, 52.1449}, 12)
	b := domain.NewRegionKey(orb.Point{11.5961, 52.1181}, 12)

	assert.Equal(t, a, b)
	assert.Equal(t, "52.1,11.6,12", a.String())
	assert.Equal(t, orb.Point{11.6, 52.1}, a.Center())
	assert.NotEqual(t, a, domain.NewRegionKey(orb.Point{11.6234, 52.1449}, 15))

	// Radii round up to whole kilometres.
	assert.Equal(t, a, domain.NewRegionKey(orb.Point{11.6234, 52.1449}, 11.2))
	assert.InDelta(t, 12, domain.NewRegionKey(orb.Point{11.6234, 52.1449}, 11.9).RadiusKm, 1e-12)
}

func TestRegionCacheEntry_Fresh(t *testing.T) {
	built := time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)
	e := &domain.RegionCacheEntry{Graph: domain.NewGraph(), BuiltAt: built, TTL: time.Hour}

	assert.True(t, e.Fresh(built.Add(59*time.Minute)))
	assert.False(t, e.Fresh(built.Add(time.Hour)))

	var missing *domain.RegionCacheEntry
	assert.False(t, missing.Fresh(built))
}
