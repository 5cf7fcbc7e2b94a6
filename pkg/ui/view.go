package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ocasazza/atui/pkg/command"
	"github.com/ocasazza/atui/pkg/navigation"
)

// View renders the whole screen for the current mode.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("atui — "+m.domain.Name) + "\n")
	b.WriteString(m.contextBar() + "\n\n")

	switch m.mode {
	case ModeCommand:
		b.WriteString(m.commandView())
	default:
		b.WriteString(m.treeView())
	}

	b.WriteString("\n")
	b.WriteString(m.statusLine() + "\n")
	b.WriteString(m.helpLine())
	return b.String()
}

// contextBar shows the resolved selection and, when complete, the CQL
// fragment commands will run against.
func (m Model) contextBar() string {
	bar := m.ctx.DisplayPath()
	if cql, ok := m.ctx.CQL(); ok {
		bar += "  " + m.theme.Help.Render("["+cql+"]")
	}
	if m.dryRun {
		bar += "  " + m.theme.StatusErr.Render("DRY RUN")
	}
	return m.theme.ContextBar.Render(bar)
}

// treeView renders the flattened tree, or the filtered rows while a
// query is live, windowed around the cursor.
func (m Model) treeView() string {
	var lines []string

	if m.mode == ModeSearching {
		lines = append(lines, m.theme.Title.Render("/"+m.filter.Query+"█"))
	}

	if m.mode == ModeSearching && m.filter.Query != "" {
		rows := m.filter.Rows()
		if len(rows) == 0 {
			lines = append(lines, m.theme.Help.Render("  no matches"))
		}
		for i, row := range m.visibleFiltered(rows) {
			lines = append(lines, m.renderFilteredRow(row, m.windowStart(len(rows))+i == m.cursor))
		}
	} else {
		rows := m.tree.Flatten()
		for i, row := range m.visibleRows(rows) {
			lines = append(lines, m.renderRow(row, m.windowStart(len(rows))+i == m.cursor))
		}
	}
	return strings.Join(lines, "\n")
}

// bodyHeight is the number of rows the list area can show.
func (m Model) bodyHeight() int {
	h := m.height - 7 // header, context, blank, status, help, margins
	if h < 3 {
		h = pageSize
	}
	return h
}

// windowStart computes the first visible row so the cursor stays on
// screen.
func (m Model) windowStart(total int) int {
	h := m.bodyHeight()
	if total <= h {
		return 0
	}
	start := m.cursor - h/2
	if start < 0 {
		start = 0
	}
	if start > total-h {
		start = total - h
	}
	return start
}

func (m Model) visibleRows(rows []navigation.Row) []navigation.Row {
	start := m.windowStart(len(rows))
	end := start + m.bodyHeight()
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

func (m Model) visibleFiltered(rows []navigation.FilteredRow) []navigation.FilteredRow {
	start := m.windowStart(len(rows))
	end := start + m.bodyHeight()
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

func (m Model) renderRow(row navigation.Row, atCursor bool) string {
	text := m.truncate(row.Text)
	switch {
	case atCursor:
		return m.theme.CursorRow.Render("> " + text)
	case row.Selected:
		return m.theme.SelectedRw.Render("✓ " + text)
	default:
		return "  " + text
	}
}

// renderFilteredRow shows the cleaned text with the matched characters
// emphasized, indented to the row's tree depth so hierarchy stays
// readable inside search results.
func (m Model) renderFilteredRow(row navigation.FilteredRow, atCursor bool) string {
	clean := navigation.CleanRowText(row.Text)
	matched := make(map[int]bool, len(row.MatchPositions))
	for _, p := range row.MatchPositions {
		matched[p] = true
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("  ", row.Depth))
	for i, r := range []rune(clean) {
		if matched[i] {
			b.WriteString(m.theme.MatchChar.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}

	line := b.String()
	if atCursor {
		return m.theme.CursorRow.Render("> ") + line
	}
	return "  " + line
}

// commandView renders the operation picker, the argument input, and the
// captured output of the last execution.
func (m Model) commandView() string {
	var b strings.Builder

	switch m.input.Phase {
	case command.PhaseSelectingOperation:
		b.WriteString(m.theme.Title.Render("Select operation") + "\n")
		for i, op := range m.ops {
			line := fmt.Sprintf("%-8s %s",
				m.theme.OpName.Render(op.Name()),
				m.theme.OpDesc.Render(op.Description()))
			if i == m.opCursor {
				b.WriteString(m.theme.CursorRow.Render("> "+line) + "\n")
			} else {
				b.WriteString("  " + line + "\n")
			}
		}
	case command.PhaseTypingArguments, command.PhaseReady:
		b.WriteString(m.theme.Title.Render("ctag "+m.input.Operation.Name()) + "\n")
		if cql, ok := m.ctx.CQL(); ok {
			b.WriteString(m.theme.Help.Render("  cql: "+cql) + "\n")
		}
		b.WriteString("  args: " + m.renderArgInput() + "\n")
		if m.input.Phase == command.PhaseReady {
			b.WriteString(m.theme.StatusOK.Render("  [Enter to execute]") + "\n")
		} else {
			b.WriteString(m.theme.Help.Render("  hint: "+m.input.Operation.ArgsHint()) + "\n")
		}
	}

	if m.lastResult != nil {
		b.WriteString("\n" + m.theme.Help.Render(strings.Repeat("─", max(10, m.width-4))) + "\n")
		b.WriteString(m.theme.Help.Render("$ "+m.lastResult.Command) + "\n")
		b.WriteString(m.output.View())
	}
	return b.String()
}

// renderArgInput paints the argument text with a block cursor while
// typing.
func (m Model) renderArgInput() string {
	if m.input.Phase != command.PhaseTypingArguments {
		return m.input.Text
	}
	runes := []rune(m.input.Text)
	if m.input.Cursor >= len(runes) {
		return m.input.Text + "█"
	}
	return string(runes[:m.input.Cursor]) + "█" + string(runes[m.input.Cursor:])
}

func (m Model) statusLine() string {
	if m.statErr {
		return m.theme.StatusErr.Render(m.truncate(m.status))
	}
	return m.theme.StatusOK.Render(m.truncate(m.status))
}

func (m Model) helpLine() string {
	var help string
	switch m.mode {
	case ModeBrowsing:
		help = "↑/↓ move · →/← expand/collapse · enter select · / search · c command · d dry-run · y copy cql · q quit"
	case ModeSearching:
		help = "type to filter · ↑/↓ move · enter select · esc cancel"
	case ModeCommand:
		switch m.input.Phase {
		case command.PhaseSelectingOperation:
			help = "↑/↓ choose · enter confirm · esc back"
		case command.PhaseTypingArguments:
			help = "type arguments · enter confirm · esc back"
		default:
			help = "enter execute · pgup/pgdn scroll output · esc back"
		}
	}
	return m.theme.Help.Render(help)
}

func (m Model) truncate(s string) string {
	if m.width <= 0 {
		return s
	}
	return runewidth.Truncate(s, m.width-2, "…")
}
