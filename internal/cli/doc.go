// Package cli defines the todosync command tree.
//
// Every subcommand opens one app.Session, so the snapshot is fetched once per
// invocation, and closes it when done. With --queue (or queue = true in the
// config) saves are collected and flushed in batches at close, including when
// the command fails part way; commands saved before the failure still go out.
//
// Logging goes through glog; its flags (-v, -logtostderr, -log_dir) are
// accepted alongside the todosync flags.
package cli
