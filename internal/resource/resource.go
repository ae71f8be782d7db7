package resource

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/r3labs/diff/v3"

	"github.com/todosync/todosync/internal/todoist"
)

// Kind identifies the entity a Resource represents.
type Kind int

const (
	KindProject Kind = iota + 1
	KindTask
)

func (k Kind) String() string {
	switch k {
	case KindProject:
		return "project"
	case KindTask:
		return "task"
	default:
		return "unknown"
	}
}

// UpdateMethod returns the remote command type used to persist the kind.
func (k Kind) UpdateMethod() string {
	switch k {
	case KindProject:
		return "project_update"
	case KindTask:
		return "item_update"
	default:
		return ""
	}
}

// OwnedFields lists the fields the list algorithms read and write.
func (k Kind) OwnedFields() []string {
	switch k {
	case KindProject:
		return []string{"name", "item_order", "indent", "color"}
	case KindTask:
		return []string{"content", "project_id", "item_order", "indent", "date_string", "due_date"}
	default:
		return nil
	}
}

// Dispatcher routes a dirty resource's command to the remote service. The
// dispatcher calls Stage under its own lock, so staging, queueing and
// settlement share one mutual-exclusion boundary.
type Dispatcher interface {
	Dispatch(ctx context.Context, r *Resource) error
}

// Resource is a remote-backed record with dirty tracking. The snapshot is
// replaced wholesale when a command is confirmed and never edited in place;
// all writes target current.
type Resource struct {
	kind        Kind
	id          string
	snapshot    Fields
	baseline    []byte
	current     Fields
	pending     []byte
	annotations map[string]any
	dispatcher  Dispatcher
}

// New builds a Resource from a raw record. d may be nil for detached
// resources such as template entries; those cannot be saved once edited.
func New(kind Kind, record map[string]any, d Dispatcher) *Resource {
	snap := Fields(record).Clone()
	return &Resource{
		kind:       kind,
		id:         AsString(snap["id"]),
		snapshot:   snap,
		baseline:   canonical(snap),
		current:    snap.Clone(),
		dispatcher: d,
	}
}

// ID returns the identifier the resource was fetched with.
func (r *Resource) ID() string { return r.id }

// Kind returns the entity kind.
func (r *Resource) Kind() Kind { return r.kind }

// Get returns the current value of field.
func (r *Resource) Get(field string) (any, error) {
	v, ok := r.current[field]
	if !ok {
		return nil, &todoist.ValidationError{Field: r.kind.String() + " field", Value: field, Err: todoist.ErrNotFound}
	}
	return v, nil
}

// Set writes field on the current mapping.
func (r *Resource) Set(field string, value any) {
	r.current[field] = value
}

// Has reports whether field is present on the current mapping.
func (r *Resource) Has(field string) bool {
	_, ok := r.current[field]
	return ok
}

// Delete removes field from the current mapping.
func (r *Resource) Delete(field string) {
	delete(r.current, field)
}

// Keys returns the current field names in sorted order.
func (r *Resource) Keys() []string {
	keys := make([]string, 0, len(r.current))
	for k := range r.current {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String returns field rendered as a string, or "" when absent.
func (r *Resource) String(field string) string {
	return AsString(r.current[field])
}

// Int returns field as an integer. The boolean is false when the field is
// absent or not integral.
func (r *Resource) Int(field string) (int64, bool) {
	v, ok := r.current[field]
	if !ok {
		return 0, false
	}
	return AsInt(v)
}

// Snapshot returns a copy of the confirmed baseline mapping.
func (r *Resource) Snapshot() Fields { return r.snapshot.Clone() }

// Current returns a copy of the live mapping.
func (r *Resource) Current() Fields { return r.current.Clone() }

// Dirty reports whether current differs from the value last confirmed by the
// service, or from the value already in flight when a command is pending.
func (r *Resource) Dirty() bool {
	cur := canonical(r.current)
	if r.pending != nil {
		return !bytes.Equal(cur, r.pending)
	}
	return !bytes.Equal(cur, r.baseline)
}

// Pending reports whether a command for this resource awaits confirmation.
func (r *Resource) Pending() bool { return r.pending != nil }

// Changes lists field-level differences between the snapshot and current.
// It is informational; Dirty remains the save predicate.
func (r *Resource) Changes() (diff.Changelog, error) {
	return diff.Diff(map[string]any(r.snapshot), map[string]any(r.current))
}

// Annotate attaches a local-only derived value. Annotations are never sent
// and never affect Dirty.
func (r *Resource) Annotate(key string, value any) {
	if r.annotations == nil {
		r.annotations = map[string]any{}
	}
	r.annotations[key] = value
}

// Annotation returns a derived value set with Annotate.
func (r *Resource) Annotation(key string) (any, bool) {
	v, ok := r.annotations[key]
	return v, ok
}

// Save persists the resource if it changed. A clean resource returns
// immediately without contacting the dispatcher.
func (r *Resource) Save(ctx context.Context) error {
	if !r.Dirty() {
		return nil
	}
	if r.dispatcher == nil {
		return &todoist.ValidationError{
			Field: r.kind.String(),
			Value: r.id,
			Err:   fmt.Errorf("resource is detached and cannot be saved"),
		}
	}
	return r.dispatcher.Dispatch(ctx, r)
}

// Stage builds the update command for a dirty resource and marks its value
// as pending. The returned settle func must be called exactly once with the
// command's outcome. ok is false when the resource is clean.
func (r *Resource) Stage() (cmd todoist.Command, settle func(applied bool), ok bool) {
	if !r.Dirty() {
		return todoist.Command{}, nil, false
	}
	fields := r.current.Clone()
	staged := canonical(fields)
	cmd = todoist.Command{
		Type: r.kind.UpdateMethod(),
		UUID: uuid.NewString(),
		Args: map[string]any(fields.Clone()),
	}
	r.pending = staged

	if glog.V(2) {
		if changes, err := r.Changes(); err == nil {
			for _, c := range changes {
				glog.Infof("%s %s: %s %v -> %v", r.kind, r.id, c.Path, c.From, c.To)
			}
		}
	}

	settled := false
	settle = func(applied bool) {
		if settled {
			return
		}
		settled = true
		if applied {
			r.snapshot = fields
			r.baseline = staged
		}
		if bytes.Equal(r.pending, staged) {
			r.pending = nil
		}
	}
	return cmd, settle, true
}
