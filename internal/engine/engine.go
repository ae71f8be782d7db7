package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/golang/glog"

	"github.com/todosync/todosync/internal/model"
	"github.com/todosync/todosync/internal/resource"
	"github.com/todosync/todosync/internal/state"
	"github.com/todosync/todosync/internal/todoist"
)

// Transport is the remote collaborator the engine depends on.
type Transport interface {
	FetchSnapshot(ctx context.Context) (*todoist.Snapshot, error)
	SendBatch(ctx context.Context, cmds []todoist.Command) (todoist.StatusMap, error)
}

// Options configure an Engine.
type Options struct {
	// BatchSize caps commands per request; zero uses DefaultBatchSize.
	BatchSize int
	// Queueing makes Save enqueue instead of sending immediately.
	Queueing bool
	// Store caches the fetched snapshot; nil uses a private store.
	Store *state.Store
}

// Engine binds projects and tasks to the remote service. It dispatches
// saves, batches queued commands and resolves project references.
type Engine struct {
	mu        sync.Mutex
	transport Transport
	store     *state.Store
	batchSize int
	queueing  bool
	queue     queue

	loaded   bool
	projects model.Projects
	tasks    model.Tasks
}

var (
	_ resource.Dispatcher = (*Engine)(nil)
	_ model.ProjectLookup = (*Engine)(nil)
)

// New builds an Engine over transport.
func New(transport Transport, opts Options) *Engine {
	size := opts.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	return &Engine{
		transport: transport,
		store:     store,
		batchSize: size,
		queueing:  opts.Queueing,
	}
}

// SetQueueing switches between immediate dispatch and queueing.
func (e *Engine) SetQueueing(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.queueing = on
}

// Queueing reports whether saves are queued.
func (e *Engine) Queueing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queueing
}

// Pending returns the number of queued commands.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.len()
}

// Load fetches the snapshot once and builds the collections. Later calls
// are no-ops.
func (e *Engine) Load(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadLocked(ctx)
}

func (e *Engine) loadLocked(ctx context.Context) error {
	if e.loaded {
		return nil
	}
	if !e.store.Loaded() {
		snap, err := e.transport.FetchSnapshot(ctx)
		e.store.Update(snap, err)
		if err != nil {
			return fmt.Errorf("fetch snapshot: %w", err)
		}
	}
	cached := e.store.Snapshot()
	e.projects = model.NewProjects(cached.Projects, e, e)
	e.tasks = model.NewTasks(cached.Items, e, e)
	e.loaded = true
	glog.Infof("loaded %d projects and %d tasks", e.projects.Len(), e.tasks.Len())
	return nil
}

// Projects returns every project in service order.
func (e *Engine) Projects(ctx context.Context) (model.Projects, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.loadLocked(ctx); err != nil {
		return model.Projects{}, err
	}
	return e.projects.With(e.projects.Items()), nil
}

// Tasks returns every task in service order.
func (e *Engine) Tasks(ctx context.Context) (model.Tasks, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.loadLocked(ctx); err != nil {
		return model.Tasks{}, err
	}
	return e.tasks.With(e.tasks.Items()), nil
}

// Project resolves ref (id or name). No match is a ValidationError.
func (e *Engine) Project(ctx context.Context, ref string) (*model.Project, error) {
	if err := e.Load(ctx); err != nil {
		return nil, err
	}
	p, ok := e.LookupProject(ref)
	if !ok {
		return nil, &todoist.ValidationError{Field: "project", Value: ref, Err: todoist.ErrNotFound}
	}
	return p, nil
}

// LookupProject resolves ref against the loaded projects by id first, then
// by exact name. It reports false when nothing is loaded or nothing matches.
func (e *Engine) LookupProject(ref string) (*model.Project, bool) {
	e.mu.Lock()
	projects := e.projects
	e.mu.Unlock()

	for _, p := range projects.Items() {
		if p.ID() == ref {
			return p, true
		}
	}
	return model.ProjectByName(projects, ref)
}

// ProjectTasks returns every loaded task of projectID ordered by item_order,
// regardless of any filtering a caller applied.
func (e *Engine) ProjectTasks(projectID string) []*model.Task {
	e.mu.Lock()
	tasks := e.tasks
	e.mu.Unlock()

	var out []*model.Task
	for _, t := range tasks.Items() {
		if t.ProjectID() == projectID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order() < out[j].Order() })
	return out
}

// Dispatch implements resource.Dispatcher. In queueing mode the command is
// appended and Dispatch returns with the resource pending; otherwise it is
// sent as a one-command batch and the first error is returned.
func (e *Engine) Dispatch(ctx context.Context, r *resource.Resource) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cmd, settle, ok := r.Stage()
	if !ok {
		return nil
	}
	item := queuedCommand{cmd: cmd, settle: settle}
	if e.queueing {
		e.queue.push(item)
		glog.V(1).Infof("queued %s %s (%d pending)", cmd.Type, cmd.UUID, e.queue.len())
		return nil
	}
	_, err := e.send(ctx, []queuedCommand{item})
	return err
}

// Flush drains the queue in FIFO batches. The first failure stops the flush
// after its batch is settled; that batch's commands are removed and later
// commands stay queued for the next call.
func (e *Engine) Flush(ctx context.Context) (FlushReport, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var report FlushReport
	for e.queue.len() > 0 {
		batch := e.queue.take(e.batchSize)
		outcomes, err := e.send(ctx, batch)
		report.Batches++
		report.Outcomes = append(report.Outcomes, outcomes...)
		if err != nil {
			report.Remaining = e.queue.len()
			glog.Warningf("flush halted after batch %d: %v (%d still queued)", report.Batches, err, report.Remaining)
			return report, err
		}
	}
	return report, nil
}

// send submits one batch and settles every command in it. It returns the
// first failure in submission order.
func (e *Engine) send(ctx context.Context, batch []queuedCommand) ([]Outcome, error) {
	cmds := make([]todoist.Command, len(batch))
	for i, item := range batch {
		cmds[i] = item.cmd
	}
	glog.V(1).Infof("sending batch of %d commands", len(cmds))

	outcomes := make([]Outcome, len(batch))
	status, err := e.transport.SendBatch(ctx, cmds)
	if err != nil {
		err = asTransportError(err)
		for i, item := range batch {
			item.settle(false)
			outcomes[i] = Outcome{UUID: item.cmd.UUID, Type: item.cmd.Type, Err: err}
		}
		return outcomes, err
	}

	var first error
	for i, item := range batch {
		err := classify(status, item.cmd.UUID)
		item.settle(err == nil)
		outcomes[i] = Outcome{UUID: item.cmd.UUID, Type: item.cmd.Type, Err: err}
		if err != nil && first == nil {
			first = err
		}
	}
	return outcomes, first
}

func classify(status todoist.StatusMap, uuid string) error {
	res, found, err := status.Result(uuid)
	if err != nil {
		return err
	}
	if !found {
		return &todoist.AmbiguousResponseError{UUID: uuid}
	}
	return res.Err()
}

// asTransportError keeps typed transport and remote errors and wraps
// anything else as an unknown transport failure.
func asTransportError(err error) error {
	var terr *todoist.TransportError
	var rerr *todoist.RemoteError
	if errors.As(err, &terr) || errors.As(err, &rerr) {
		return err
	}
	return &todoist.TransportError{Kind: todoist.KindUnknown, Op: "sync", Err: err}
}
