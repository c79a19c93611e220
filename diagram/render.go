// Package diagram draws a Quipper circuit as a text wire diagram, one
// three-line row per wire and one fixed-width column per time step.
package diagram

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"qtermquip/quipper"
)

// Options controls Render.
type Options struct {
	// Color styles the output with lipgloss. Without it the diagram is
	// plain text.
	Color bool
	// MaxColumns limits the number of columns drawn; 0 draws all.
	MaxColumns int
}

type cellKind int

const (
	cellWire cellKind = iota
	cellPass
	cellBox
	cellControl
	cellTarget
	cellInit
	cellLabel
)

type cell struct {
	kind      cellKind
	text      string
	call      bool
	vertAbove bool
	vertBelow bool
}

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return truncate(s, width)
	}
	total := width - n
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	return string([]rune(s)[:width])
}

func star(inverted bool) string {
	if inverted {
		return "*"
	}
	return ""
}

// gateLabel returns the text drawn inside a gate box.
func gateLabel(g quipper.Gate) string {
	switch g := g.(type) {
	case quipper.QGate:
		return g.Op.Name() + star(g.Inverted)
	case quipper.QRot:
		if g.Op == quipper.OpExpZt {
			return "exp" + star(g.Inverted)
		}
		return "R" + star(g.Inverted)
	case quipper.SubroutineCall:
		name := g.Name
		if g.Repetitions > 1 {
			name = strconv.Itoa(g.Repetitions) + "x" + name
		}
		return name + star(g.Inverted)
	}
	return ""
}

func controlSymbol(positive bool) string {
	if positive {
		return "●"
	}
	return "○"
}

// placeControls marks the control rows of a gate.
func placeControls(grid []cell, rows map[quipper.Wire]int, c quipper.Control) {
	for _, sw := range c.Controlled {
		grid[rows[sw.Wire]] = cell{kind: cellControl, text: controlSymbol(sw.Positive)}
	}
}

// buildColumn fills one column of cells, one per row.
func buildColumn(c quipper.Circuit, col Column, rows map[quipper.Wire]int) []cell {
	grid := make([]cell, len(rows))
	for _, gi := range col.Gates {
		g := c.Gates[gi]
		switch g := g.(type) {
		case quipper.QGate:
			target := cell{kind: cellBox, text: gateLabel(g)}
			if g.Control.IsControlled() && g.Op == quipper.OpNot {
				target = cell{kind: cellTarget, text: "⊕"}
			}
			if g.Op == quipper.OpSwap {
				target = cell{kind: cellTarget, text: "×"}
			}
			grid[rows[g.Wire]] = target
			placeControls(grid, rows, g.Control)
		case quipper.QRot:
			grid[rows[g.Wire]] = cell{kind: cellBox, text: gateLabel(g)}
		case quipper.QInit:
			grid[rows[g.Wire]] = cell{kind: cellInit, text: "|" + strconv.Itoa(boolDigit(g.Value)) + ">"}
		case quipper.Comment:
			for _, wl := range g.WireLabels {
				grid[rows[wl.Wire]] = cell{kind: cellLabel, text: wl.Label}
			}
			continue
		case quipper.SubroutineCall:
			for _, w := range g.Wires() {
				grid[rows[w]] = cell{kind: cellBox, text: gateLabel(g), call: true}
			}
			placeControls(grid, rows, g.Control)
		}

		s := gateSpan(g, rows)
		if s.empty || s.hi == s.lo {
			continue
		}
		for r := s.lo; r <= s.hi; r++ {
			if grid[r].kind == cellWire {
				grid[r].kind = cellPass
			}
			grid[r].vertAbove = r > s.lo
			grid[r].vertBelow = r < s.hi
		}
	}
	return grid
}

func boolDigit(b bool) int {
	if b {
		return 1
	}
	return 0
}

// renderCell returns 3 lines (top, mid, bot) for a single cell.
// Each line is exactly cellW visual characters wide.
func renderCell(info cell, pal palette) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)
	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1

	top, bot = emptyRow, emptyRow
	if info.vertAbove {
		top = vertRow
	}
	if info.vertBelow {
		bot = vertRow
	}

	switch info.kind {
	case cellPass:
		mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)

	case cellControl, cellTarget:
		mid = strings.Repeat("─", dashL) + pal.gate(info.text) + strings.Repeat("─", dashR)

	case cellBox:
		paint := pal.gate
		if info.call {
			paint = pal.call
		}
		margin := (cellW - gateBoxW) / 2
		rightMargin := cellW - margin - gateBoxW
		lid, base := strings.Repeat("─", gateNameW), strings.Repeat("─", gateNameW)
		if info.vertAbove {
			lid = strings.Repeat("─", gateNameW/2) + "┴" + strings.Repeat("─", gateNameW-gateNameW/2-1)
		}
		if info.vertBelow {
			base = strings.Repeat("─", gateNameW/2) + "┬" + strings.Repeat("─", gateNameW-gateNameW/2-1)
		}
		top = strings.Repeat(" ", margin) + paint("┌"+lid+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + paint("┤"+padCenter(info.text, gateNameW)+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + paint("└"+base+"┘") + strings.Repeat(" ", rightMargin)

	case cellInit:
		mid = "  " + pal.init(info.text) + strings.Repeat("─", cellW-2-utf8.RuneCountInString(info.text))

	case cellLabel:
		text := truncate(info.text, cellW-2)
		mid = "─" + pal.comment(text) + strings.Repeat("─", cellW-1-utf8.RuneCountInString(text))

	default:
		mid = strings.Repeat("─", cellW)
	}
	return
}

// wireTypes maps each declared wire to its type, inputs taking precedence.
func wireTypes(c quipper.Circuit) map[quipper.Wire]quipper.WireType {
	types := make(map[quipper.Wire]quipper.WireType)
	for _, ta := range c.Outputs {
		types[ta.Wire] = ta.Type
	}
	for _, ta := range c.Inputs {
		types[ta.Wire] = ta.Type
	}
	return types
}

// Render draws c. The first line numbers the columns; every wire then
// takes three lines.
func Render(c quipper.Circuit, opts Options) string {
	pal := newPalette(opts.Color)
	wires := Wires(c)
	if len(wires) == 0 {
		return pal.dim("(no wires)") + "\n"
	}
	rows := rowIndex(wires)
	cols := Layout(c)
	hidden := 0
	if opts.MaxColumns > 0 && len(cols) > opts.MaxColumns {
		hidden = len(cols) - opts.MaxColumns
		cols = cols[:opts.MaxColumns]
	}

	types := wireTypes(c)
	labels := make([]string, len(wires))
	labelW := minLabelW
	for i, w := range wires {
		letter := "Q"
		if types[w] == quipper.Cbit {
			letter = "C"
		}
		labels[i] = fmt.Sprintf("%d:%s", w, letter)
		labelW = max(labelW, len(labels[i]))
	}

	grid := make([][]cell, len(cols))
	for i, col := range cols {
		grid[i] = buildColumn(c, col, rows)
	}

	var sb strings.Builder
	indent := strings.Repeat(" ", labelW+2)

	header := indent
	for i := range cols {
		header += pal.dim(padCenter(strconv.Itoa(i), cellW))
	}
	sb.WriteString(header + "\n")

	for r, w := range wires {
		paintLabel := pal.qbit
		if types[w] == quipper.Cbit {
			paintLabel = pal.cbit
		}
		topLine := indent
		midLine := paintLabel(fmt.Sprintf("%-*s", labelW, labels[r])) + "──"
		botLine := indent
		for i := range cols {
			top, mid, bot := renderCell(grid[i][r], pal)
			topLine += top
			midLine += mid
			botLine += bot
		}
		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	if hidden > 0 {
		sb.WriteString(pal.dim(fmt.Sprintf("  ▶ %d more columns", hidden)) + "\n")
	}
	return sb.String()
}
