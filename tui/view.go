package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"qtermquip/diagram"
	"qtermquip/quipper"
)

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sourceWidth := m.width / 3
	diagramWidth := m.width - sourceWidth - 4
	controlsHeight := 6
	panelHeight := max(m.height-controlsHeight-2, 6)

	diagramPanel := m.renderDiagramPanel(diagramWidth, panelHeight)
	sourcePanel := m.renderSourcePanel(sourceWidth, panelHeight)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, diagramPanel, sourcePanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	if m.focus == focusPicker {
		frame = overlayAt(frame, m.renderPicker(), 2, 2)
	}
	return frame
}

// renderDiagramPanel renders the wire diagram of the selected circuit,
// scrolled to the current offsets, followed by the parse status.
func (m Model) renderDiagramPanel(width, height int) string {
	var sb strings.Builder

	if m.program == nil {
		sb.WriteString(titleStyle.Render("Circuit"))
		sb.WriteString("\n\n")
		sb.WriteString(dimStyle.Render("  nothing parsed yet"))
		sb.WriteString("\n")
	} else {
		c, title := m.selectedCircuit()
		sb.WriteString(titleStyle.Render(title))
		sb.WriteString("\n\n")

		availWidth := max(width-4, 1)
		availHeight := max(height-8, 1)
		lines := strings.Split(strings.TrimSuffix(diagram.Render(c, m.diagramOpts), "\n"), "\n")
		start := min(m.scrollRow, max(len(lines)-1, 0))
		if m.scrollCol > 0 || start > 0 {
			fmt.Fprintf(&sb, "  ◀ scrolled to line %d, column %d\n", start, m.scrollCol)
		}
		for _, line := range lines[start:min(start+availHeight, len(lines))] {
			if m.scrollCol > 0 {
				line = ansi.TruncateLeft(line, m.scrollCol, "")
			}
			sb.WriteString(ansi.Truncate(line, availWidth, "…"))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n  ")
	sb.WriteString(m.statusLine())
	if m.statusMsg != "" {
		fmt.Fprintf(&sb, "  │  %s", keyStyle.Render(m.statusMsg))
	}

	return diagramStyle.Width(width).Height(height).Render(sb.String())
}

// statusLine summarizes the parse state of the current source.
func (m Model) statusLine() string {
	if m.err != nil {
		kind := quipper.ErrorKind(m.err)
		if kind == "" {
			kind = "parse"
		}
		return errorStyle.Render(kind+" error") + " " + m.err.Error()
	}
	if m.program == nil {
		return dimStyle.Render("empty")
	}
	s := fmt.Sprintf("OK  %d gates  %d subroutines", len(m.program.Circuit.Gates), len(m.program.Subroutines))
	out := okStyle.Render(s)
	if names := m.program.Report().UnresolvedNames(); len(names) > 0 {
		out += "  " + keyStyle.Render("unresolved: "+strings.Join(names, ", "))
	}
	if rec := m.program.Report(); rec != nil && len(rec.Recursive) > 0 {
		out += "  " + keyStyle.Render("recursive: "+strings.Join(rec.Recursive, ", "))
	}
	return out
}

// renderSourcePanel renders the source editor panel.
func (m Model) renderSourcePanel(width, height int) string {
	var sb strings.Builder

	title := "Source"
	if m.path != "" {
		title += " " + m.path
	}
	if m.focus == focusSource {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.editor.View())

	return sourceStyle.Width(width).Height(height).Render(sb.String())
}

func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(keyStyle.Render("Navigate: "))
	sb.WriteString("↑↓/jk Scroll lines  ←→/hl Scroll columns  [ ] Prev/next circuit")
	sb.WriteString("    ")
	sb.WriteString(keyStyle.Render("c"))
	sb.WriteString(" Pick circuit\n")

	sb.WriteString(keyStyle.Render("Actions:  "))
	sb.WriteString("Tab Switch focus  ^S Save formatted  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// overlayAt draws overlay over bg with its top-left corner at column x of
// line y.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	ovLines := strings.Split(overlay, "\n")

	for i, ovLine := range ovLines {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}
		bgLines[bgIdx] = spliceLineAt(bgLines[bgIdx], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLineAt replaces the visible columns of bgLine starting at x with
// overlay. Escape sequences in bgLine do not count as columns.
func spliceLineAt(bgLine, overlay string, x int) string {
	prefix := ansi.Truncate(bgLine, x, "")
	if w := ansi.StringWidth(prefix); w < x {
		prefix += strings.Repeat(" ", x-w)
	}
	suffix := ansi.TruncateLeft(bgLine, x+ansi.StringWidth(overlay), "")
	return prefix + overlay + suffix
}
