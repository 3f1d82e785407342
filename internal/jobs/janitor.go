package jobs

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"tubegrab/internal/config"
)

// StartJanitor periodically removes stale intermediate files from the
// temp directory. Whole-directory removal would race with a running
// job's stream files, so only entries older than the cleanup age go.
func StartJanitor(cfg *config.Config) {
	ticker := time.NewTicker(cfg.CleanupAfter)

	go func() {
		for range ticker.C {
			swept := sweepStale(cfg.TempDir, cfg.CleanupAfter)
			if swept > 0 {
				log.Printf("🧹 Janitor: removed %d stale temp file(s)", swept)
			}
		}
	}()
}

func sweepStale(dir string, maxAge time.Duration) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("❌ Janitor error: could not read temp dir: %v", err)
		return 0
	}

	cutoff := time.Now().Add(-maxAge)
	swept := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(dir, entry.Name())); err == nil {
				swept++
			}
		}
	}
	return swept
}
