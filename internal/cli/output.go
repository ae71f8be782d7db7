package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/todosync/todosync/internal/model"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// printTable writes rows under headers as a bordered table.
func printTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.String())
}

func projectRows(projects model.Projects) [][]string {
	rows := make([][]string, 0, projects.Len())
	for _, p := range projects.Items() {
		rows = append(rows, []string{
			p.ID(),
			p.Name(),
			strconv.FormatInt(p.Order(), 10),
			strconv.FormatInt(p.Indent(), 10),
			p.String("color"),
		})
	}
	return rows
}

var projectHeaders = []string{"ID", "Name", "Order", "Indent", "Color"}

func taskRows(tasks model.Tasks, extra func(*model.Task) string) [][]string {
	rows := make([][]string, 0, tasks.Len())
	for _, t := range tasks.Items() {
		row := []string{
			t.ID(),
			t.Content(),
			strconv.FormatInt(t.Order(), 10),
			strconv.FormatInt(t.Indent(), 10),
			t.DateString(),
		}
		if extra != nil {
			row = append(row, extra(t))
		}
		rows = append(rows, row)
	}
	return rows
}

var taskHeaders = []string{"ID", "Content", "Order", "Indent", "Date"}
