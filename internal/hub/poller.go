package hub

import (
	"context"
	"time"

	"tubegrab/internal/models"
)

// Source yields the latest job status snapshot.
type Source interface {
	Get() models.Status
}

// Publisher delivers one status to all subscribers.
type Publisher interface {
	Publish(models.Status)
}

// Poller samples the status source on a fixed cadence and publishes
// only when the value changed since the last publish. The download
// worker updates the source far more often than subscribers need to
// see; polling with diffing bounds delivered traffic to one message
// per observed change.
type Poller struct {
	source   Source
	pub      Publisher
	interval time.Duration
}

func NewPoller(source Source, pub Publisher, interval time.Duration) *Poller {
	return &Poller{source: source, pub: pub, interval: interval}
}

// Run loops until ctx is canceled. Within one job the published
// sequence is a subsequence of what the worker produced, in order:
// the poller only ever moves forward through distinct observed values.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var last *models.Status
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			current := p.source.Get()
			if last != nil && current == *last {
				continue
			}
			p.pub.Publish(current)
			snapshot := current
			last = &snapshot
		}
	}
}
