package server

import (
	"os"

	"tubegrab/internal/config"
)

// PrepareFilesystem ensures the download destination and the temp
// workspace exist before any job runs.
func PrepareFilesystem(cfg *config.Config) error {
	dirs := []string{cfg.DownloadDir, cfg.TempDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
