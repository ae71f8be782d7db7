package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/glog"

	"github.com/todosync/todosync/internal/model"
	"github.com/todosync/todosync/internal/prefs"
)

// SortFields are the fields the browser cycles through.
var SortFields = []string{"item_order", "content", "due_date", "priority"}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Tasks     model.Tasks
	Title     string
	Prefs     prefs.Prefs
	PrefsPath string // empty uses default ~/.config/todosync/prefs.toml
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	tasks     model.Tasks
	title     string
	prefs     prefs.Prefs
	prefsPath string

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	table    table.Model
	width    int
	height   int
	ready    bool
	showHelp bool

	// Sort state
	sortField string
	reverse   bool
	saveErr   error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	p := opts.Prefs
	if p.Theme == "" {
		p.Theme = prefs.Defaults().Theme
	}
	if p.SortField == "" {
		p.SortField = prefs.Defaults().SortField
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:       ctx,
		tasks:     opts.Tasks,
		title:     opts.Title,
		prefs:     p,
		prefsPath: prefsPath,
		theme:     GetTheme(p.Theme),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		sortField: p.SortField,
		table: table.New(
			table.WithColumns(columns(defaultWidth)),
			table.WithFocused(true),
		),
	}
	m.applyTheme()
	m.refreshRows()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.table.SetColumns(columns(msg.Width))
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(max(msg.Height-chromeHeight, 1))
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.applyTheme()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.CycleSort):
		m.sortField = nextSortField(m.sortField)
		m.prefs.SortField = m.sortField
		m.refreshRows()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Reverse):
		m.reverse = !m.reverse
		m.refreshRows()
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.table.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.table.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	m.saveErr = prefs.Save(m.prefsPath, m.prefs)
	if m.saveErr != nil {
		glog.Warningf("save prefs: %v", m.saveErr)
	}
}

func nextSortField(current string) string {
	for i, f := range SortFields {
		if f == current {
			return SortFields[(i+1)%len(SortFields)]
		}
	}
	return SortFields[0]
}

// renderMain renders the header, task table and footer.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	title := m.title
	if title == "" {
		title = "All tasks"
	}
	order := "asc"
	if m.reverse {
		order = "desc"
	}
	line := fmt.Sprintf("%s  %s  %s",
		styles.Logo.Render("todosync"),
		styles.Text.Render(title),
		styles.MutedText.Render(fmt.Sprintf("%d tasks · sort %s %s", m.tasks.Len(), m.sortField, order)),
	)
	counts := map[string]int{}
	for _, t := range m.tasks.Items() {
		counts[syncState(t)]++
	}
	for _, state := range []string{stateDirty, statePending} {
		if n := counts[state]; n > 0 {
			line += "  " + styles.StateStyle(state).Render(fmt.Sprintf("%d %s", n, state))
		}
	}
	return styles.Header.Width(m.width).Render(line)
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	line := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.saveErr != nil {
		line += "  " + styles.DangerText.Render("prefs: "+m.saveErr.Error())
	}
	return styles.Footer.Width(m.width).Render(line)
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Context == nil {
		opts.Context = ctx
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
