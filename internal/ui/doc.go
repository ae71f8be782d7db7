// Package ui provides a Bubble Tea browser for a loaded task list.
//
// # Overview
//
// The browser shows one table of tasks with their project, due date, the
// derived recurrence count and a sync state (clean, dirty or pending). It is
// read-only: nothing in the UI saves tasks.
//
// # Architecture
//
//   - app.go: Model, Update loop, key handling and Run
//   - table.go: column layout and row building
//   - theme.go: color palettes and Lipgloss styles
//   - keys.go: key bindings shared with the help view
//   - help.go: help overlay
//
// # Preferences
//
// Cycling the theme (T) or the sort field (s) writes the choice back to the
// preferences file so the next session starts the same way. A failed write is
// logged and shown in the footer; it never interrupts browsing.
//
// # Sorting
//
// Rows are ordered with tasksort.Sort, so due dates compare as times and ties
// fall back to content. r reverses the current order.
package ui
