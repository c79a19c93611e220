package tui

import (
	"fmt"
	"strings"

	"qtermquip/quipper"
)

// pickerEntry is one circuit the picker offers.
type pickerEntry struct {
	name   string
	detail string
}

func (m Model) pickerEntries() []pickerEntry {
	if m.program == nil {
		return nil
	}
	entries := []pickerEntry{{
		name:   "main",
		detail: fmt.Sprintf("%d gates", len(m.program.Circuit.Gates)),
	}}
	for _, s := range m.program.Subroutines {
		entries = append(entries, pickerEntry{
			name:   s.Name,
			detail: fmt.Sprintf("%d gates, controllable %s", len(s.Circuit.Gates), s.Controllable),
		})
	}
	return entries
}

// selectedCircuit returns the circuit shown in the diagram panel and its
// title.
func (m Model) selectedCircuit() (quipper.Circuit, string) {
	if m.selected == 0 {
		return m.program.Circuit, "Circuit: main"
	}
	s := m.program.Subroutines[m.selected-1]
	title := fmt.Sprintf("Subroutine: %s  shape %s  controllable %s", s.Name, s.Shape, s.Controllable)
	return s.Circuit, title
}

// renderPicker renders the floating circuit-picker popup.
func (m Model) renderPicker() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Show Circuit"))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 42)))
	sb.WriteString("\n")

	for i, e := range m.pickerEntries() {
		if i == m.pickerItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-18s", e.name)))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-18s", e.name)))
		}
		sb.WriteString(dimStyle.Render(e.detail))
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
