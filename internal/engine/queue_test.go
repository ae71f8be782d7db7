package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/todosync/todosync/internal/todoist"
)

func queueEdits(t *testing.T, e *Engine, n int) {
	t.Helper()
	for i, task := range loadTasks(t, e).Items()[:n] {
		task.SetContent(fmt.Sprintf("edited %d", i))
		if err := task.Save(context.Background()); err != nil {
			t.Fatalf("Save returned error: %v", err)
		}
	}
}

func TestQueue_TakePreservesOrder(t *testing.T) {
	var q queue
	for i := 0; i < 5; i++ {
		q.push(queuedCommand{cmd: todoist.Command{UUID: fmt.Sprint(i)}})
	}
	first := q.take(3)
	assert.Equal(t, len(first), 3)
	assert.Equal(t, first[0].cmd.UUID, "0")
	assert.Equal(t, first[2].cmd.UUID, "2")
	rest := q.take(10)
	assert.Equal(t, len(rest), 2)
	assert.Equal(t, rest[0].cmd.UUID, "3")
	assert.Equal(t, q.len(), 0)
}

func TestFlush_BatchesInFIFOOrder(t *testing.T) {
	ft := &fakeTransport{snapshot: sampleSnapshot(120)}
	e := New(ft, Options{Queueing: true, BatchSize: 50})
	queueEdits(t, e, 120)

	assert.Equal(t, len(ft.batches), 0)
	assert.Equal(t, e.Pending(), 120)

	report, err := e.Flush(context.Background())
	assert.Equal(t, err, nil)
	assert.Equal(t, report.Batches, 3)
	assert.Equal(t, len(ft.batches), 3)
	assert.Equal(t, len(ft.batches[0]), 50)
	assert.Equal(t, len(ft.batches[1]), 50)
	assert.Equal(t, len(ft.batches[2]), 20)
	assert.Equal(t, report.Applied(), 120)
	assert.Equal(t, report.Err(), nil)
	assert.Equal(t, e.Pending(), 0)

	assert.Equal(t, ft.batches[0][0].Args["content"], "edited 0")
	assert.Equal(t, ft.batches[2][19].Args["content"], "edited 119")

	for _, task := range loadTasks(t, e).Items() {
		assert.Equal(t, task.Dirty(), false)
		assert.Equal(t, task.Pending(), false)
	}
}

func TestFlush_RemoteErrorHaltsAfterBatch(t *testing.T) {
	ft := &fakeTransport{
		snapshot: sampleSnapshot(120),
		respond: func(batch int, cmds []todoist.Command) (todoist.StatusMap, error) {
			status := allOK(cmds)
			if batch == 2 {
				status[cmds[3].UUID] = []byte(`{"error_code": 22, "error": "Item not found"}`)
				status[cmds[7].UUID] = []byte(`{"error_code": 23, "error": "later"}`)
			}
			return status, nil
		},
	}
	e := New(ft, Options{Queueing: true, BatchSize: 50})
	queueEdits(t, e, 120)

	report, err := e.Flush(context.Background())
	var rerr *todoist.RemoteError
	if !errors.As(err, &rerr) {
		t.Fatalf("Flush error = %v, want RemoteError", err)
	}
	assert.Equal(t, rerr.Code, 22)
	assert.Equal(t, len(ft.batches), 2)
	assert.Equal(t, report.Batches, 2)
	assert.Equal(t, report.Remaining, 20)
	assert.Equal(t, e.Pending(), 20)
	assert.Equal(t, report.Applied(), 98)
	assert.NotEqual(t, report.Err(), nil)

	tasks := loadTasks(t, e).Items()
	// First batch committed.
	assert.Equal(t, tasks[0].Dirty(), false)
	assert.Equal(t, tasks[49].Dirty(), false)
	// Failed command is dirty again; the rest of its batch committed.
	assert.Equal(t, tasks[53].Dirty(), true)
	assert.Equal(t, tasks[53].Pending(), false)
	assert.Equal(t, tasks[54].Dirty(), false)
	// Unsent commands are still pending.
	assert.Equal(t, tasks[100].Pending(), true)

	// A second flush drains the rest.
	report, err = e.Flush(context.Background())
	assert.Equal(t, err, nil)
	assert.Equal(t, report.Batches, 1)
	assert.Equal(t, len(ft.batches[2]), 20)
	assert.Equal(t, tasks[100].Dirty(), false)
}

func TestFlush_TransportErrorSettlesWholeBatch(t *testing.T) {
	ft := &fakeTransport{
		snapshot: sampleSnapshot(3),
		respond: func(int, []todoist.Command) (todoist.StatusMap, error) {
			return nil, &todoist.TransportError{Kind: todoist.KindRateLimited, Op: "sync", Status: 429}
		},
	}
	e := New(ft, Options{Queueing: true})
	queueEdits(t, e, 3)

	report, err := e.Flush(context.Background())
	var terr *todoist.TransportError
	if !errors.As(err, &terr) || terr.Kind != todoist.KindRateLimited {
		t.Fatalf("Flush error = %v, want rate limited TransportError", err)
	}
	assert.Equal(t, len(report.Outcomes), 3)
	assert.Equal(t, e.Pending(), 0)
	for _, task := range loadTasks(t, e).Items() {
		assert.Equal(t, task.Dirty(), true)
		assert.Equal(t, task.Pending(), false)
	}
}

func TestQueueing_ResaveWhilePendingIsNoop(t *testing.T) {
	ft := &fakeTransport{snapshot: sampleSnapshot(1)}
	e := New(ft, Options{Queueing: true})
	task := loadTasks(t, e).At(0)

	task.SetContent("queued")
	assert.Equal(t, task.Save(context.Background()), nil)
	assert.Equal(t, task.Save(context.Background()), nil)
	assert.Equal(t, e.Pending(), 1)
	assert.Equal(t, task.Pending(), true)
	assert.Equal(t, task.Dirty(), false)
	// The confirmed baseline is untouched until the flush succeeds.
	assert.Equal(t, task.Snapshot()["content"], "task 0")

	task.SetContent("queued again")
	assert.Equal(t, task.Dirty(), true)
	assert.Equal(t, task.Save(context.Background()), nil)
	assert.Equal(t, e.Pending(), 2)

	_, err := e.Flush(context.Background())
	assert.Equal(t, err, nil)
	assert.Equal(t, task.Pending(), false)
	assert.Equal(t, task.Dirty(), false)
	assert.Equal(t, task.Snapshot()["content"], "queued again")
}

func TestQueueing_FailedFlushRedirtiesResource(t *testing.T) {
	ft := &fakeTransport{
		snapshot: sampleSnapshot(1),
		respond: func(batch int, cmds []todoist.Command) (todoist.StatusMap, error) {
			if batch == 1 {
				return todoist.StatusMap{}, nil
			}
			return allOK(cmds), nil
		},
	}
	e := New(ft, Options{Queueing: true})
	task := loadTasks(t, e).At(0)
	task.SetContent("retry me")
	assert.Equal(t, task.Save(context.Background()), nil)

	_, err := e.Flush(context.Background())
	var aerr *todoist.AmbiguousResponseError
	if !errors.As(err, &aerr) {
		t.Fatalf("Flush error = %v, want AmbiguousResponseError", err)
	}
	assert.Equal(t, task.Dirty(), true)

	assert.Equal(t, task.Save(context.Background()), nil)
	assert.Equal(t, e.Pending(), 1)
	_, err = e.Flush(context.Background())
	assert.Equal(t, err, nil)
	assert.Equal(t, task.Dirty(), false)
}

func TestQueueing_ToggleSendsImmediately(t *testing.T) {
	ft := &fakeTransport{snapshot: sampleSnapshot(1)}
	e := New(ft, Options{Queueing: true})
	assert.Equal(t, e.Queueing(), true)
	e.SetQueueing(false)

	task := loadTasks(t, e).At(0)
	task.SetContent("now")
	assert.Equal(t, task.Save(context.Background()), nil)
	assert.Equal(t, len(ft.batches), 1)
	assert.Equal(t, e.Pending(), 0)
}

func TestFlush_EmptyQueue(t *testing.T) {
	e := New(&fakeTransport{snapshot: sampleSnapshot(0)}, Options{})
	report, err := e.Flush(context.Background())
	assert.Equal(t, err, nil)
	assert.Equal(t, report.Batches, 0)
}
