package downloader

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"tubegrab/internal/models"
)

// tracker turns raw byte counts from the concurrent stream readers into
// downloading statuses. The hook fires on every chunk; the broadcast
// side coalesces, so over-reporting here is harmless.
type tracker struct {
	mu       sync.Mutex
	total    int64
	current  int64
	start    time.Time
	filename string
	hook     func(models.Status)
}

func newTracker(total int64, filename string, hook func(models.Status)) *tracker {
	return &tracker{
		total:    total,
		start:    time.Now(),
		filename: filename,
		hook:     hook,
	}
}

func (t *tracker) add(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.current += int64(n)
	if t.total <= 0 {
		return
	}

	pct := float64(t.current) / float64(t.total) * 100
	if pct > 99.9 {
		pct = 99.9 // muxing still pending
	}

	var speed, eta string
	if elapsed := time.Since(t.start).Seconds(); elapsed > 0 {
		rate := float64(t.current) / elapsed
		speed = formatBytes(int64(rate)) + "/s"
		if rate > 0 {
			remaining := float64(t.total-t.current) / rate
			eta = formatETA(time.Duration(remaining * float64(time.Second)))
		}
	}

	t.hook(models.Status{
		State:      models.StateDownloading,
		Percentage: strconv.FormatFloat(pct, 'f', 1, 64),
		Speed:      speed,
		ETA:        eta,
		Filename:   t.filename,
	})
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	units := []string{"KiB", "MiB", "GiB", "TiB"}
	value := float64(n) / float64(div)
	if value >= 100 {
		return fmt.Sprintf("%.0f %s", value, units[exp])
	}
	return fmt.Sprintf("%.1f %s", value, units[exp])
}

func formatETA(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds() + 0.5)
	if total >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", total/3600, (total%3600)/60, total%60)
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
