package packs

import (
	"os"
	"path/filepath"
)

// DefaultDir is where content packs land. The gui watches this directory, so
// a pack copied in while the game runs takes effect without a restart.
func DefaultDir() string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		return "stationfall-packs"
	}
	return filepath.Join(base, "Stationfall", "packs")
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
