package progress

import (
	"sync/atomic"

	"tubegrab/internal/models"
)

// Store holds the single current job status as an atomic snapshot.
//
// There is exactly one status slot in the whole process. The download
// worker writes into it from its own goroutine at whatever rate the
// collaborator fires the progress hook; the broadcast loop reads it on
// its own cadence. No history is kept: intermediate values overwritten
// between two reads are lost, which is fine for progress data.
type Store struct {
	current atomic.Pointer[models.Status]
}

func NewStore() *Store {
	s := &Store{}
	s.current.Store(&models.Status{State: models.StateIdle})
	return s
}

// Set replaces the current status. Never blocks, callable from any
// goroutine.
func (s *Store) Set(st models.Status) {
	s.current.Store(&st)
}

// Get returns a complete snapshot of the latest status.
func (s *Store) Get() models.Status {
	return *s.current.Load()
}
