// Package app is the composition root for todosync.
//
// # Overview
//
// Open wires configuration, preferences, the HTTP client and the engine into
// a Session. The snapshot is fetched once during Open, so every command works
// against the same loaded projects and tasks.
//
//	┌──────────────┐
//	│   Open()     │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()       Read config.toml, .env and TODOSYNC_TOKEN
//	       ├─────> prefs.Load()        Read UI and CLI defaults
//	       ├─────> todoist.NewClient() Create HTTP client
//	       ├─────> engine.New()        Bind client, queue mode and store
//	       └─────> Engine.Load()       Fetch the snapshot (once)
//
// # Queueing
//
// Queueing is on when either the config sets queue = true or Options.Queue is
// set. Queued commands are only sent by Session.Close or an explicit
// Engine.Flush; nothing flushes in the background.
//
// # Error Handling
//
// Open fails on an unreadable config, a missing token and a failed snapshot
// fetch. Preferences never fail: defaults are used instead. Close returns the
// first flush failure along with the report of what was settled.
package app
