package state

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/todosync/todosync/internal/todoist"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store
	if s.Loaded() {
		t.Fatalf("Loaded() = true on empty store")
	}

	before := time.Now()
	s.Update(&todoist.Snapshot{
		SeqNo:    json.Number("12"),
		Projects: []todoist.Record{{"id": json.Number("1"), "name": "Inbox"}},
		Items:    []todoist.Record{{"id": json.Number("2"), "content": "a"}, {"id": json.Number("3")}},
	}, nil)

	snap := s.Snapshot()
	if !snap.Loaded || !s.Loaded() {
		t.Fatalf("snapshot not marked loaded")
	}
	if snap.SeqNo != "12" || len(snap.Projects) != 1 || len(snap.Items) != 2 {
		t.Fatalf("snapshot = %#v, want seq 12, 1 project, 2 items", snap)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}

	// Returned records must be independent of the stored ones.
	snap.Projects[0]["name"] = "mutated"
	if got := s.Snapshot().Projects[0]["name"]; got != "Inbox" {
		t.Fatalf("Snapshot should clone records; got name %v", got)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store
	s.Update(&todoist.Snapshot{Projects: []todoist.Record{{"id": json.Number("1")}}}, nil)

	origErr := errors.New("boom")
	s.Update(nil, origErr)
	s.Update(nil, origErr)

	snap := s.Snapshot()
	if !snap.Loaded || len(snap.Projects) != 1 {
		t.Fatalf("data changed on error: %#v", snap)
	}
	if snap.Failures != 2 {
		t.Fatalf("Failures = %d, want 2", snap.Failures)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}

	s.Update(&todoist.Snapshot{}, nil)
	if snap := s.Snapshot(); snap.Failures != 0 || snap.LastError != nil {
		t.Fatalf("success should reset failures, got %#v", snap)
	}
}
