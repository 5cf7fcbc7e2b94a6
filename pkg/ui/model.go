// Package ui hosts the Bubble Tea model for atui: a screen state machine
// over the navigation tree, the incremental fuzzy filter, and the
// command builder. All state transitions funnel through the intent
// reducer in update.go.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ocasazza/atui/pkg/command"
	"github.com/ocasazza/atui/pkg/model"
	"github.com/ocasazza/atui/pkg/navigation"
)

// Mode is the active screen of the state machine.
type Mode int

const (
	// ModeBrowsing navigates and expands the tree.
	ModeBrowsing Mode = iota
	// ModeSearching filters the tree with a live query.
	ModeSearching
	// ModeCommand builds and runs a label operation. Reachable only with
	// a complete navigation context.
	ModeCommand
)

const pageSize = 10

// redrawInterval drives the tick-based unconditional redraw so the UI
// stays responsive with no input pending.
const redrawInterval = 250 * time.Millisecond

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(redrawInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the single mutable application state. Everything runs on the
// Bubble Tea event loop thread; the only blocking point is command
// execution, which is an explicit user-initiated stall.
type Model struct {
	domain model.Domain
	tree   *navigation.Tree
	ctx    navigation.Context

	filter navigation.Filter
	cursor int // row index into the current display rows

	mode     Mode
	input    command.Input
	ops      []command.Operation
	opCursor int
	executor *command.Executor
	history  *command.History
	dryRun   bool

	lastResult *command.Result
	output     viewport.Model

	status  string
	statErr bool

	theme         Theme
	width, height int
	quitting      bool
}

// NewModel assembles the application state for a discovered domain.
func NewModel(domain model.Domain, executor *command.Executor, history *command.History, dryRun bool) Model {
	return Model{
		domain:   domain,
		tree:     navigation.Build(domain),
		input:    command.NewInput(),
		executor: executor,
		history:  history,
		dryRun:   dryRun,
		output:   viewport.New(0, 0),
		status:   "Ready",
		theme:    DefaultTheme(),
	}
}

// Init starts the redraw tick.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update routes messages into the reducer.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.output.Width = msg.Width - 4
		m.output.Height = max(3, msg.Height/3)
		return m, nil

	case tea.KeyMsg:
		intent := m.keyToIntent(msg)
		m = m.apply(intent)
		if m.quitting {
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

// displayRows returns the rows currently shown: the filtered set while a
// query is live, otherwise the full flattened tree.
func (m *Model) displayRows() int {
	if m.mode == ModeSearching && len(m.filter.Rows()) > 0 {
		return len(m.filter.Rows())
	}
	if m.mode == ModeSearching && m.filter.Query != "" {
		return 0
	}
	return len(m.tree.Flatten())
}

// clampCursor keeps the cursor inside the current display rows.
func (m *Model) clampCursor() {
	n := m.displayRows()
	if n == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Context returns the current navigation context.
func (m Model) Context() navigation.Context { return m.ctx }

// Mode returns the active screen mode.
func (m Model) Mode() Mode { return m.mode }

// Status returns the current status line text.
func (m Model) Status() string { return m.status }

func (m *Model) setStatus(s string) {
	m.status = s
	m.statErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statErr = true
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
