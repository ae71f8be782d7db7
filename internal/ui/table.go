package ui

import (
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"github.com/todosync/todosync/internal/model"
	"github.com/todosync/todosync/internal/tasksort"
)

const (
	defaultWidth = 100
	// chromeHeight is the number of lines taken by header and footer.
	chromeHeight = 3
)

// Sync states shown in the state column.
const (
	stateClean   = "clean"
	stateDirty   = "dirty"
	statePending = "pending"
)

// columns sizes the table to width. Content takes whatever the fixed
// columns leave.
func columns(width int) []table.Column {
	fixed := []table.Column{
		{Title: "Order", Width: 6},
		{Title: "Project", Width: 14},
		{Title: "Due", Width: 12},
		{Title: "Repeat", Width: 8},
		{Title: "State", Width: 8},
	}
	used := 0
	for _, c := range fixed {
		used += c.Width + 2
	}
	content := max(width-used-2, 20)
	return append([]table.Column{{Title: "Task", Width: content}}, fixed...)
}

func (m *Model) applyTheme() {
	styles := m.theme.Styles()
	s := table.DefaultStyles()
	s.Header = styles.TableHeader
	s.Cell = styles.TableCell
	s.Selected = styles.Selected
	m.table.SetStyles(s)
}

// refreshRows re-sorts the tasks and rebuilds the table rows.
func (m *Model) refreshRows() {
	sorted := tasksort.Sort(m.tasks, m.sortField).Items()
	if m.reverse {
		slices.Reverse(sorted)
	}
	rows := make([]table.Row, 0, len(sorted))
	for _, t := range sorted {
		rows = append(rows, m.row(t))
	}
	m.table.SetRows(rows)
}

func (m *Model) row(t *model.Task) table.Row {
	indent := max(int(t.Indent())-1, 0)
	content := strings.Repeat("  ", indent) + t.Content()

	project := t.ProjectID()
	if lookup := m.tasks.Lookup(); lookup != nil {
		if p, ok := lookup.LookupProject(project); ok {
			project = p.Name()
		}
	}

	due := ""
	if d := t.DueDate(); !d.IsZero() {
		due = d.Format("2006-01-02")
	}

	repeat := "-"
	if n, ok := t.Recurrence(); ok {
		repeat = strconv.Itoa(n) + "/yr"
	}

	return table.Row{content, strconv.FormatInt(t.Order(), 10), project, due, repeat, syncState(t)}
}

func syncState(t *model.Task) string {
	switch {
	case t.Dirty():
		return stateDirty
	case t.Pending():
		return statePending
	default:
		return stateClean
	}
}
