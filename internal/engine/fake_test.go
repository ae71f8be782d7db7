package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/todosync/todosync/internal/todoist"
)

type fakeTransport struct {
	snapshot *todoist.Snapshot
	fetchErr error
	fetches  int
	batches  [][]todoist.Command
	// respond overrides the default all-ok reply; batch is 1-based.
	respond func(batch int, cmds []todoist.Command) (todoist.StatusMap, error)
}

func (f *fakeTransport) FetchSnapshot(ctx context.Context) (*todoist.Snapshot, error) {
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.snapshot, nil
}

func (f *fakeTransport) SendBatch(ctx context.Context, cmds []todoist.Command) (todoist.StatusMap, error) {
	f.batches = append(f.batches, cmds)
	if f.respond != nil {
		return f.respond(len(f.batches), cmds)
	}
	return allOK(cmds), nil
}

func (f *fakeTransport) commandCount() int {
	n := 0
	for _, b := range f.batches {
		n += len(b)
	}
	return n
}

func allOK(cmds []todoist.Command) todoist.StatusMap {
	status := todoist.StatusMap{}
	for _, c := range cmds {
		status[c.UUID] = json.RawMessage(`"ok"`)
	}
	return status
}

func num(n int) json.Number { return json.Number(fmt.Sprint(n)) }

func sampleSnapshot(tasks int) *todoist.Snapshot {
	snap := &todoist.Snapshot{
		Projects: []todoist.Record{
			{"id": num(100), "name": "Inbox", "item_order": num(0), "indent": num(1)},
			{"id": num(200), "name": "Work", "item_order": num(1), "indent": num(1)},
		},
	}
	for i := 0; i < tasks; i++ {
		snap.Items = append(snap.Items, todoist.Record{
			"id":         num(1000 + i),
			"content":    fmt.Sprintf("task %d", i),
			"project_id": num(100 + 100*(i%2)),
			"item_order": num(i + 1),
			"indent":     num(1),
		})
	}
	return snap
}
