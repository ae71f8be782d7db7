package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/todosync/todosync/internal/resource"
	"github.com/todosync/todosync/internal/todoist"
)

// Snapshot is the raw data fetched for the session.
type Snapshot struct {
	SeqNo       string
	Projects    []todoist.Record
	Items       []todoist.Record
	Loaded      bool
	LastUpdated time.Time
	LastError   error
	Failures    int // consecutive failed fetches
}

// Store caches the session snapshot so it is fetched once.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update records a fetch result. When err is non-nil any previously loaded
// data is kept and the error is recorded.
func (s *Store) Update(snap *todoist.Snapshot, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.Failures++
		return
	}
	if snap == nil {
		snap = &todoist.Snapshot{}
	}
	s.snapshot.SeqNo = snap.SeqNo.String()
	s.snapshot.Projects = cloneRecords(snap.Projects)
	s.snapshot.Items = cloneRecords(snap.Items)
	s.snapshot.Loaded = true
	s.snapshot.LastError = nil
	s.snapshot.Failures = 0
}

// Loaded reports whether a snapshot has been fetched successfully.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Loaded
}

// Snapshot returns a copy of the cached snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Projects = cloneRecords(s.snapshot.Projects)
	snap.Items = cloneRecords(s.snapshot.Items)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneRecords(records []todoist.Record) []todoist.Record {
	if len(records) == 0 {
		return nil
	}
	dup := make([]todoist.Record, len(records))
	for i, rec := range records {
		dup[i] = todoist.Record(resource.Fields(rec).Clone())
	}
	return dup
}
