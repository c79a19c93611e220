package diagram

import (
	"slices"

	"qtermquip/quipper"
)

// Column is one time step of the diagram: the indices, into the circuit's
// gate list, of the gates drawn side by side.
type Column struct {
	Gates []int
}

// span is the closed row range a gate occupies. Gates that touch no wire
// have an empty span and are drawn as a column of their own.
type span struct {
	lo, hi int
	empty  bool
}

// Wires returns every wire the circuit declares or touches, ascending.
// Each wire becomes one row of the diagram.
func Wires(c quipper.Circuit) []quipper.Wire {
	seen := make(map[quipper.Wire]bool)
	var wires []quipper.Wire
	add := func(w quipper.Wire) {
		if !seen[w] {
			seen[w] = true
			wires = append(wires, w)
		}
	}
	for _, ta := range c.Inputs {
		add(ta.Wire)
	}
	for _, g := range c.Gates {
		for _, w := range g.Wires() {
			add(w)
		}
	}
	for _, ta := range c.Outputs {
		add(ta.Wire)
	}
	slices.Sort(wires)
	return wires
}

func rowIndex(wires []quipper.Wire) map[quipper.Wire]int {
	rows := make(map[quipper.Wire]int, len(wires))
	for i, w := range wires {
		rows[w] = i
	}
	return rows
}

func gateSpan(g quipper.Gate, rows map[quipper.Wire]int) span {
	ws := g.Wires()
	if len(ws) == 0 {
		return span{empty: true}
	}
	s := span{lo: rows[ws[0]], hi: rows[ws[0]]}
	for _, w := range ws[1:] {
		s.lo = min(s.lo, rows[w])
		s.hi = max(s.hi, rows[w])
	}
	return s
}

// exclusive reports whether g must not share its column with other gates.
func exclusive(g quipper.Gate, s span) bool {
	switch g.(type) {
	case quipper.Comment:
		return true
	case quipper.SubroutineCall:
		return s.empty || s.hi > s.lo
	}
	return s.empty
}

// Layout assigns gates to columns as early as possible. A gate occupies
// every row between its lowest and highest wire, so a later gate that
// overlaps that range starts a new column; comments and multi-wire calls
// always get a column to themselves.
func Layout(c quipper.Circuit) []Column {
	wires := Wires(c)
	rows := rowIndex(wires)
	frontier := make([]int, len(wires)) // first free column per row
	barrier := 0                        // no gate may be placed before this column

	var cols []Column
	for i, g := range c.Gates {
		s := gateSpan(g, rows)
		excl := exclusive(g, s)

		col := barrier
		if excl {
			for _, f := range frontier {
				col = max(col, f)
			}
		} else {
			for r := s.lo; r <= s.hi; r++ {
				col = max(col, frontier[r])
			}
		}

		for col >= len(cols) {
			cols = append(cols, Column{})
		}
		cols[col].Gates = append(cols[col].Gates, i)

		if excl {
			for r := range frontier {
				frontier[r] = col + 1
			}
			barrier = col + 1
		} else {
			for r := s.lo; r <= s.hi; r++ {
				frontier[r] = col + 1
			}
		}
	}
	return cols
}
