package engine

import (
	"go.uber.org/multierr"

	"github.com/todosync/todosync/internal/todoist"
)

// DefaultBatchSize is the maximum number of commands per sync request.
const DefaultBatchSize = 50

type queuedCommand struct {
	cmd    todoist.Command
	settle func(applied bool)
}

// queue is a FIFO of commands awaiting a flush.
type queue struct {
	items []queuedCommand
}

func (q *queue) push(item queuedCommand) {
	q.items = append(q.items, item)
}

func (q *queue) len() int { return len(q.items) }

// take removes and returns up to n commands from the head.
func (q *queue) take(n int) []queuedCommand {
	if n > len(q.items) {
		n = len(q.items)
	}
	batch := make([]queuedCommand, n)
	copy(batch, q.items[:n])
	q.items = append(q.items[:0:0], q.items[n:]...)
	return batch
}

// Outcome is the settled result of one submitted command.
type Outcome struct {
	UUID string
	Type string
	Err  error
}

// FlushReport describes what a flush submitted and how each command settled.
type FlushReport struct {
	Batches  int
	Outcomes []Outcome
	// Remaining is the number of commands still queued after the flush.
	Remaining int
}

// Applied returns the number of commands confirmed by the service.
func (r FlushReport) Applied() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}

// Err combines every per-command failure in submission order.
func (r FlushReport) Err() error {
	var err error
	for _, o := range r.Outcomes {
		err = multierr.Append(err, o.Err)
	}
	return err
}
