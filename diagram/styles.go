package diagram

import "github.com/charmbracelet/lipgloss"

// Layout constants
const (
	cellW     = 11 // width of each column in characters
	gateNameW = 5  // width of gate name inside box
	gateBoxW  = 7  // ┤ + gateNameW + ├ = 1 + 5 + 1
	minLabelW = 5  // wire label width before the leading wire stub
)

var (
	gateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#73daca"))

	callStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#bb9af7"))

	initStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ece6a"))

	qbitLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff"))

	cbitLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e0af68"))

	commentStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#e0af68"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))
)

// palette paints the parts of a diagram. The plain palette leaves text
// untouched so that uncoloured output has a fixed layout.
type palette struct {
	gate, call, init, qbit, cbit, comment, dim func(...string) string
}

func plain(s ...string) string {
	out := ""
	for _, p := range s {
		out += p
	}
	return out
}

func newPalette(color bool) palette {
	if !color {
		return palette{plain, plain, plain, plain, plain, plain, plain}
	}
	return palette{
		gate:    gateStyle.Render,
		call:    callStyle.Render,
		init:    initStyle.Render,
		qbit:    qbitLabelStyle.Render,
		cbit:    cbitLabelStyle.Render,
		comment: commentStyle.Render,
		dim:     dimStyle.Render,
	}
}
