// Package fs provides filesystem-backed implementations of sentiview
// interfaces: dataset loading and an on-disk response cache.
package fs

import (
	"os"
	"path/filepath"
)

// appName names the per-user directories.
const appName = "sentiview"

// DefaultCacheDir returns the default cache directory for sentiview.
// Uses XDG_CACHE_HOME if set, otherwise falls back to ~/.cache/sentiview,
// or system temp directory if home is unavailable.
func DefaultCacheDir() string {
	return userDir("XDG_CACHE_HOME", ".cache")
}

// DefaultStateDir returns the directory for logs and saved runs.
// Uses XDG_STATE_HOME if set, otherwise ~/.local/state/sentiview.
func DefaultStateDir() string {
	return userDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func userDir(env, homeRel string) string {
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, homeRel, appName)
}
