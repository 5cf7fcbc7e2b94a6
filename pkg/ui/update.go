package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ocasazza/atui/pkg/command"
)

// keyToIntent translates a key event into a reducer intent based on the
// active mode. Translation carries no state changes; legality lives in
// apply.
func (m Model) keyToIntent(msg tea.KeyMsg) Intent {
	if msg.Type == tea.KeyCtrlC {
		return Intent{Kind: IntentQuit}
	}

	switch m.mode {
	case ModeBrowsing:
		return browsingIntent(msg)
	case ModeSearching:
		return searchingIntent(msg)
	case ModeCommand:
		return commandIntent(msg)
	}
	return Intent{}
}

func browsingIntent(msg tea.KeyMsg) Intent {
	switch msg.String() {
	case "q":
		return Intent{Kind: IntentQuit}
	case "up", "k":
		return Intent{Kind: IntentMoveUp}
	case "down", "j":
		return Intent{Kind: IntentMoveDown}
	case "pgup":
		return Intent{Kind: IntentPageUp}
	case "pgdown":
		return Intent{Kind: IntentPageDown}
	case "right", "l":
		return Intent{Kind: IntentExpand}
	case "left", "h":
		return Intent{Kind: IntentCollapse}
	case "enter":
		return Intent{Kind: IntentSelect}
	case "/":
		return Intent{Kind: IntentStartSearch}
	case "c":
		return Intent{Kind: IntentStartCommand}
	case "d":
		return Intent{Kind: IntentToggleDryRun}
	case "y":
		return Intent{Kind: IntentCopyCQL}
	}
	return Intent{}
}

func searchingIntent(msg tea.KeyMsg) Intent {
	switch msg.Type {
	case tea.KeyEsc:
		return Intent{Kind: IntentCancel}
	case tea.KeyEnter:
		return Intent{Kind: IntentConfirm}
	case tea.KeyBackspace:
		return Intent{Kind: IntentDeleteRune}
	case tea.KeyUp:
		return Intent{Kind: IntentMoveUp}
	case tea.KeyDown:
		return Intent{Kind: IntentMoveDown}
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			return Intent{Kind: IntentInsertRune, Rune: msg.Runes[0]}
		}
	case tea.KeySpace:
		return Intent{Kind: IntentInsertRune, Rune: ' '}
	}
	return Intent{}
}

func commandIntent(msg tea.KeyMsg) Intent {
	switch msg.Type {
	case tea.KeyEsc:
		return Intent{Kind: IntentCancel}
	case tea.KeyEnter:
		return Intent{Kind: IntentConfirm}
	case tea.KeyBackspace:
		return Intent{Kind: IntentDeleteRune}
	case tea.KeyUp:
		return Intent{Kind: IntentMoveUp}
	case tea.KeyDown:
		return Intent{Kind: IntentMoveDown}
	case tea.KeyLeft:
		return Intent{Kind: IntentMoveCursorLeft}
	case tea.KeyRight:
		return Intent{Kind: IntentMoveCursorRight}
	case tea.KeyPgUp:
		return Intent{Kind: IntentScrollOutputUp}
	case tea.KeyPgDown:
		return Intent{Kind: IntentScrollOutputDown}
	case tea.KeySpace:
		return Intent{Kind: IntentInsertRune, Rune: ' '}
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			return Intent{Kind: IntentInsertRune, Rune: msg.Runes[0]}
		}
	}
	return Intent{}
}

// apply is the single reducer: every transition rule of the screen state
// machine lives here.
func (m Model) apply(intent Intent) Model {
	switch intent.Kind {
	case IntentQuit:
		m.quitting = true

	case IntentMoveUp:
		m.moveCursor(-1)
	case IntentMoveDown:
		m.moveCursor(1)
	case IntentPageUp:
		m.moveCursor(-pageSize)
	case IntentPageDown:
		m.moveCursor(pageSize)

	case IntentExpand:
		m.setExpandedAtCursor(true)
	case IntentCollapse:
		m.setExpandedAtCursor(false)

	case IntentSelect:
		m.selectAtCursor()

	case IntentStartSearch:
		if m.mode == ModeBrowsing {
			m.mode = ModeSearching
			m.filter.Enter()
			m.cursor = 0
			m.setStatus("Search: type to filter, Enter to select, Esc to cancel")
		}

	case IntentStartCommand:
		m.startCommand()

	case IntentInsertRune:
		m.insertRune(intent.Rune)
	case IntentDeleteRune:
		m.deleteRune()
	case IntentMoveCursorLeft:
		if m.mode == ModeCommand && m.input.Phase == command.PhaseTypingArguments {
			m.input.MoveLeft()
		}
	case IntentMoveCursorRight:
		if m.mode == ModeCommand && m.input.Phase == command.PhaseTypingArguments {
			m.input.MoveRight()
		}

	case IntentConfirm:
		m.confirm()
	case IntentCancel:
		m.cancel()

	case IntentToggleDryRun:
		m.dryRun = !m.dryRun
		if m.dryRun {
			m.setStatus("Dry run enabled: commands will preview only")
		} else {
			m.setStatus("Dry run disabled")
		}

	case IntentCopyCQL:
		m.copyCQL()

	case IntentScrollOutputUp:
		m.output.LineUp(3)
	case IntentScrollOutputDown:
		m.output.LineDown(3)
	}
	return m
}

func (m *Model) moveCursor(delta int) {
	switch m.mode {
	case ModeCommand:
		// Up/down move the operation highlight while selecting.
		if m.input.Phase == command.PhaseSelectingOperation {
			m.opCursor += delta
			if m.opCursor < 0 {
				m.opCursor = 0
			}
			if m.opCursor >= len(m.ops) {
				m.opCursor = len(m.ops) - 1
			}
		}
	default:
		m.cursor += delta
		m.clampCursor()
	}
}

// setExpandedAtCursor applies expand/collapse via a freshly resolved
// path. Any live filter results are from a previous shape afterward, but
// expand/collapse is only reachable while browsing, where no filter is
// active.
func (m *Model) setExpandedAtCursor(expanded bool) {
	if m.mode != ModeBrowsing {
		return
	}
	path, ok := m.tree.ResolvePath(m.cursor)
	if !ok {
		return
	}
	m.tree.SetExpanded(path, expanded)
	m.clampCursor()
}

// selectAtCursor commits the row under the cursor into the navigation
// context while browsing.
func (m *Model) selectAtCursor() {
	if m.mode != ModeBrowsing {
		return
	}
	path, ok := m.tree.ResolvePath(m.cursor)
	if !ok {
		return
	}
	ctx, ok := m.tree.Select(path, m.domain)
	if !ok {
		return
	}
	m.ctx = ctx
	m.setStatus("Selected: " + ctx.DisplayPath())
}

// startCommand opens the command builder. The completeness gate is
// enforced here and nowhere else.
func (m *Model) startCommand() {
	if m.mode != ModeBrowsing {
		return
	}
	if !m.ctx.IsComplete() {
		m.setError("No valid context: select a project or space first")
		return
	}
	ops := command.Available(m.ctx)
	if len(ops) == 0 {
		m.setError(fmt.Sprintf("No operations available for %s", m.ctx.Product.Type))
		return
	}
	m.mode = ModeCommand
	m.ops = ops
	m.opCursor = 0
	m.input.Reset()
	m.setStatus("Choose an operation, Enter to confirm")
}

func (m *Model) insertRune(r rune) {
	switch m.mode {
	case ModeSearching:
		m.filter.SetQuery(m.filter.Query+string(r), m.tree.Flatten(), m.tree.Generation())
		m.cursor = 0
	case ModeCommand:
		switch m.input.Phase {
		case command.PhaseTypingArguments:
			m.input.InsertRune(r)
		case command.PhaseSelectingOperation:
			// First-letter quick select.
			for i, op := range m.ops {
				if strings.HasPrefix(op.Name(), strings.ToLower(string(r))) {
					m.opCursor = i
					break
				}
			}
		}
	}
}

func (m *Model) deleteRune() {
	switch m.mode {
	case ModeSearching:
		if m.filter.Query == "" {
			return
		}
		runes := []rune(m.filter.Query)
		m.filter.SetQuery(string(runes[:len(runes)-1]), m.tree.Flatten(), m.tree.Generation())
		m.cursor = 0
	case ModeCommand:
		if m.input.Phase == command.PhaseTypingArguments {
			m.input.DeleteRune()
		}
	}
}

// confirm advances the current mode: commit a search selection, choose an
// operation, confirm arguments, or run the command.
func (m *Model) confirm() {
	switch m.mode {
	case ModeSearching:
		m.commitSearchSelection()
	case ModeCommand:
		switch m.input.Phase {
		case command.PhaseSelectingOperation:
			if m.opCursor < len(m.ops) {
				m.input.Choose(m.ops[m.opCursor])
				m.setStatus(fmt.Sprintf("Arguments for %s (%s), Enter to confirm",
					m.input.Operation.Name(), m.input.Operation.ArgsHint()))
			}
		case command.PhaseTypingArguments:
			m.input.ConfirmArgs()
			m.setStatus("Ready: Enter to execute, Esc to edit arguments")
		case command.PhaseReady:
			m.execute()
		}
	}
}

// commitSearchSelection resolves the highlighted filtered row back onto
// the unfiltered tree. Resolution goes through the node identity carried
// by the filtered row, not its positional index, so a mutated tree can
// never redirect the selection to the wrong node; a pass computed
// against an older tree shape is refused outright.
func (m *Model) commitSearchSelection() {
	rows := m.filter.Rows()
	if len(rows) == 0 || m.cursor >= len(rows) {
		m.exitSearch()
		return
	}
	if m.filter.StaleFor(m.tree.Generation()) {
		m.setError("Search results are stale, re-run the search")
		m.exitSearch()
		return
	}

	row := rows[m.cursor]
	path, ok := m.tree.PathOf(row.ID)
	if !ok {
		m.exitSearch()
		return
	}
	ctx, ok := m.tree.SelectWithParentExpansion(path, m.domain)
	if !ok {
		m.exitSearch()
		return
	}
	m.ctx = ctx
	m.exitSearch()

	// Land the cursor on the node we just selected.
	for i, r := range m.tree.Flatten() {
		if r.ID == row.ID {
			m.cursor = i
			break
		}
	}
	m.setStatus("Selected: " + ctx.DisplayPath())
}

func (m *Model) exitSearch() {
	m.filter.Exit()
	m.mode = ModeBrowsing
	m.clampCursor()
}

// cancel backs out one level: search to browsing, and the command builder
// one phase at a time until it falls back to browsing.
func (m *Model) cancel() {
	switch m.mode {
	case ModeSearching:
		m.exitSearch()
		m.cursor = 0
		m.setStatus("Ready")
	case ModeCommand:
		switch m.input.Phase {
		case command.PhaseReady:
			m.input.Phase = command.PhaseTypingArguments
			m.setStatus("Editing arguments")
		case command.PhaseTypingArguments:
			m.input.Reset()
			m.setStatus("Choose an operation")
		case command.PhaseSelectingOperation:
			m.mode = ModeBrowsing
			m.setStatus("Ready")
		}
	}
}

// execute dispatches the built command synchronously. The UI thread
// blocks until the spawned process returns; Esc afterward abandons the
// result, it cannot interrupt the process.
func (m *Model) execute() {
	result, err := m.executor.Execute(m.ctx, m.input.Operation, m.input.Args(), m.dryRun)
	if err != nil {
		m.setError("Error executing command: " + err.Error())
		return
	}
	m.lastResult = &result
	m.output.SetContent(outputContent(result))
	m.output.GotoTop()
	if result.Success {
		m.setStatus("Command succeeded: " + result.Command)
	} else {
		m.setError(fmt.Sprintf("Command failed (exit %d): %s",
			result.ExitCode, strings.TrimSpace(result.Stderr)))
	}
}

func outputContent(r command.Result) string {
	var b strings.Builder
	b.WriteString(r.Stdout)
	if r.Stderr != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(r.Stderr)
	}
	if b.Len() == 0 {
		return "(no output)"
	}
	return b.String()
}

func (m *Model) copyCQL() {
	cql, ok := m.ctx.CQL()
	if !ok {
		m.setError("No valid context: select a project or space first")
		return
	}
	if err := clipboard.WriteAll(cql); err != nil {
		m.setError("Clipboard unavailable: " + err.Error())
		return
	}
	m.setStatus("Copied: " + cql)
}

// ApplyIntent exposes the reducer for tests and scripted drivers.
func (m Model) ApplyIntent(intent Intent) Model {
	return m.apply(intent)
}
