// Package state caches the raw sync snapshot for a session.
//
// # Overview
//
// The engine fetches the full project and item lists exactly once per
// session. Store holds the result so later calls reuse it, and records the
// last fetch error and the number of consecutive failures for display.
//
// # Update Semantics
//
//	store.Update(snap, nil)
//	→ Projects, Items replaced, Loaded = true, LastError = nil, Failures = 0
//
//	store.Update(nil, err)
//	→ previous data kept, LastError = err, Failures++
//
// # Copies
//
// Update and Snapshot deep-copy the records. Callers that build resources
// from a snapshot can never mutate the cached baseline, and the cached error
// is wrapped so identity checks against it fail.
//
// # Concurrency
//
// Store uses a sync.RWMutex: Update takes the write lock, Snapshot and
// Loaded take the read lock. The lock is never held during network I/O.
package state
