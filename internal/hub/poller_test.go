package hub

import (
	"context"
	"sync"
	"testing"
	"time"

	"tubegrab/internal/models"
)

type fakeSource struct {
	mu sync.Mutex
	st models.Status
}

func (s *fakeSource) Get() models.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st
}

func (s *fakeSource) set(st models.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st = st
}

type fakePublisher struct {
	mu        sync.Mutex
	published []models.Status
}

func (p *fakePublisher) Publish(st models.Status) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, st)
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}

func (p *fakePublisher) all() []models.Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.Status, len(p.published))
	copy(out, p.published)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestPollerPublishesOnlyOnChange(t *testing.T) {
	source := &fakeSource{st: models.Status{State: models.StateIdle}}
	pub := &fakePublisher{}
	poller := NewPoller(source, pub, 2*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go poller.Run(ctx)

	// The unset sentinel means the first observed value is published.
	waitFor(t, func() bool { return pub.count() == 1 })

	downloading := models.Status{State: models.StateDownloading, Percentage: "10.0"}
	source.set(downloading)
	waitFor(t, func() bool { return pub.count() == 2 })

	// Same value again: many cycles, no new publish.
	source.set(downloading)
	time.Sleep(30 * time.Millisecond)
	if pub.count() != 2 {
		t.Fatalf("unchanged value republished: %d publishes", pub.count())
	}

	source.set(models.Status{State: models.StateDownloading, Percentage: "55.0"})
	waitFor(t, func() bool { return pub.count() == 3 })

	got := pub.all()
	want := []models.Status{
		{State: models.StateIdle},
		{State: models.StateDownloading, Percentage: "10.0"},
		{State: models.StateDownloading, Percentage: "55.0"},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("publish %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	// No two consecutive publishes are equal.
	for i := 1; i < len(got); i++ {
		if got[i] == got[i-1] {
			t.Errorf("consecutive duplicate publish at %d: %+v", i, got[i])
		}
	}
}

func TestPollerStopsOnCancel(t *testing.T) {
	source := &fakeSource{st: models.Status{State: models.StateIdle}}
	pub := &fakePublisher{}
	poller := NewPoller(source, pub, 2*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	go poller.Run(ctx)

	waitFor(t, func() bool { return pub.count() == 1 })
	cancel()
	time.Sleep(10 * time.Millisecond)

	before := pub.count()
	source.set(models.Status{State: models.StateFinished, Filename: "out.mp4"})
	time.Sleep(30 * time.Millisecond)

	if pub.count() != before {
		t.Error("poller kept publishing after cancellation")
	}
}
