package domain

import (
	"os"
	"path/filepath"
)

const (
	// ConfigFileName is the name of the configuration file looked up in the working directory.
	ConfigFileName = "fairway.yaml"

	// ConfigEnvVar overrides the configuration file path.
	ConfigEnvVar = "FAIRWAY_CONFIG"

	// AppDirName is the name of the per-user cache directory.
	AppDirName = "fairway"

	// FeatureCacheDirName is the name of the persistent waterway feature cache directory.
	FeatureCacheDirName = "features"

	// DefaultLockFileName is the default lock directory file.
	DefaultLockFileName = "locks.json"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultConfigPath returns the configuration path, honouring FAIRWAY_CONFIG.
func DefaultConfigPath() string {
	if p := os.Getenv(ConfigEnvVar); p != "" {
		return p
	}
	return ConfigFileName
}

// DefaultFeatureCachePath returns the default badger directory for fetched waterway features.
func DefaultFeatureCachePath() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, AppDirName, FeatureCacheDirName)
}
