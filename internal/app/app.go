package app

import (
	"context"
	"fmt"

	"github.com/golang/glog"

	"github.com/todosync/todosync/internal/config"
	"github.com/todosync/todosync/internal/engine"
	"github.com/todosync/todosync/internal/prefs"
	"github.com/todosync/todosync/internal/state"
	"github.com/todosync/todosync/internal/todoist"
)

// Options configure a session.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/todosync/prefs.toml
	Queue      bool   // queue saves even when the config does not
	BatchSize  int    // overrides batch_size when positive
}

// Session is one loaded connection to the service.
type Session struct {
	Config    config.Config
	Prefs     prefs.Prefs
	PrefsPath string
	Client    *todoist.Client
	Engine    *engine.Engine
	Store     *state.Store
}

// Open loads configuration, builds the client and engine, and fetches the
// snapshot so later commands work against loaded collections.
func Open(ctx context.Context, opts Options) (*Session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	client, err := todoist.NewClient(cfg.APIURL, cfg.Token, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("init todoist client: %w", err)
	}

	batch := cfg.BatchSize
	if opts.BatchSize > 0 {
		batch = opts.BatchSize
	}
	store := &state.Store{}
	eng := engine.New(client, engine.Options{
		BatchSize: batch,
		Queueing:  cfg.Queue || opts.Queue,
		Store:     store,
	})
	if err := eng.Load(ctx); err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	return &Session{
		Config:    cfg,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
		Client:    client,
		Engine:    eng,
		Store:     store,
	}, nil
}

// Close flushes any queued commands. The report describes what was sent even
// when an error is returned.
func (s *Session) Close(ctx context.Context) (engine.FlushReport, error) {
	if s == nil || s.Engine == nil || s.Engine.Pending() == 0 {
		return engine.FlushReport{}, nil
	}
	report, err := s.Engine.Flush(ctx)
	if err != nil {
		return report, fmt.Errorf("flush: %w", err)
	}
	glog.Infof("flushed %d commands in %d batches", report.Applied(), report.Batches)
	return report, nil
}
