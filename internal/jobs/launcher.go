package jobs

import (
	"log"

	"tubegrab/internal/models"
	"tubegrab/internal/progress"

	"github.com/google/uuid"
)

// RunFunc executes one download job, reporting every state transition
// through hook. The hook is the only communication path back from the
// detached worker; no error or result ever reaches the caller.
type RunFunc func(url, formatID string, hook func(models.Status))

// Launcher accepts download requests and hands them to a detached
// worker goroutine.
type Launcher struct {
	store *progress.Store
	run   RunFunc
}

func NewLauncher(store *progress.Store, run RunFunc) *Launcher {
	return &Launcher{store: store, run: run}
}

// Launch resets the shared status slot to starting, schedules the job
// and returns immediately.
//
// There is exactly one status slot: launching while a previous job is
// still running is accepted, overwrites the slot, and the two jobs'
// updates interleave on the stream.
func (l *Launcher) Launch(url, formatID string) models.Ack {
	if formatID == "" {
		formatID = models.FormatBest
	}
	l.store.Set(models.Status{State: models.StateStarting})

	id := uuid.New().String()
	log.Printf("🚀 Job %s accepted: %s (format %s)", id, url, formatID)

	go l.run(url, formatID, l.store.Set)

	return models.Ack{ID: id, Message: "Download started"}
}
