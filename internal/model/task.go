package model

import (
	"fmt"
	"time"

	"github.com/todosync/todosync/internal/resource"
	"github.com/todosync/todosync/internal/todoist"
)

// recurrenceKey is the annotation holding the derived occurrences per year.
const recurrenceKey = "recurrence"

// Task is a remote item. Fields it owns: content, project_id, item_order,
// indent, date_string, due_date.
type Task struct {
	*resource.Resource
}

// NewTask wraps a raw item record.
func NewTask(record map[string]any, d resource.Dispatcher) *Task {
	return &Task{Resource: resource.New(resource.KindTask, record, d)}
}

func (t *Task) Content() string { return t.String("content") }

func (t *Task) SetContent(content string) { t.Set("content", content) }

func (t *Task) ProjectID() string { return t.String("project_id") }

// Order returns item_order, or 0 when absent.
func (t *Task) Order() int64 {
	n, _ := t.Int("item_order")
	return n
}

// Indent returns the nesting depth, or 0 when absent.
func (t *Task) Indent() int64 {
	n, _ := t.Int("indent")
	return n
}

func (t *Task) DateString() string { return t.String("date_string") }

// DueDate returns the parsed due_date, or the zero time.
func (t *Task) DueDate() time.Time { return todoist.ParseTime(t.String("due_date")) }

// Recurrence returns the derived occurrences per year, if classified.
func (t *Task) Recurrence() (int, bool) {
	v, ok := t.Annotation(recurrenceKey)
	if !ok {
		return 0, false
	}
	n, ok := v.(int)
	return n, ok
}

// SetRecurrence records the derived occurrences per year.
func (t *Task) SetRecurrence(n int) { t.Annotate(recurrenceKey, n) }

// NewTasks builds a task collection from raw records.
func NewTasks(records []map[string]any, d resource.Dispatcher, lookup ProjectLookup) Tasks {
	items := make([]*Task, 0, len(records))
	for _, rec := range records {
		items = append(items, NewTask(rec, d))
	}
	return Tasks{items: items, lookup: lookup}
}

// FilterByProject returns the tasks of the project referenced by ref (id or
// name). An unknown reference is a ValidationError.
func FilterByProject(c Tasks, ref string) (Tasks, error) {
	if c.lookup == nil {
		return Tasks{}, &todoist.ValidationError{Field: "project", Value: ref, Err: fmt.Errorf("no project lookup bound")}
	}
	project, ok := c.lookup.LookupProject(ref)
	if !ok {
		return Tasks{}, &todoist.ValidationError{Field: "project", Value: ref, Err: todoist.ErrNotFound}
	}
	id := project.ID()
	return c.Filter(func(t *Task) bool { return t.ProjectID() == id }), nil
}
