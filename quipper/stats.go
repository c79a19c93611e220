package quipper

import "sort"

// GateKind names the statement kind of g: "QGate", "QRot", "QInit",
// "Comment" or "Subroutine".
func GateKind(g Gate) string {
	switch g.(type) {
	case QGate:
		return "QGate"
	case QRot:
		return "QRot"
	case QInit:
		return "QInit"
	case Comment:
		return "Comment"
	case SubroutineCall:
		return "Subroutine"
	}
	return ""
}

// Stats summarizes the statements of one circuit. Comments are counted in
// ByKind only.
type Stats struct {
	Gates      int
	ByKind     map[string]int
	ByOp       map[string]int
	Controlled int
	Inverted   int
	// Wires is the number of distinct wires declared or touched.
	Wires int
	// Calls counts call sites per subroutine name; Applications also
	// multiplies by the repetition count.
	Calls        map[string]int
	Applications map[string]int
}

// CountGates computes Stats for c.
func CountGates(c Circuit) Stats {
	s := Stats{
		ByKind:       make(map[string]int),
		ByOp:         make(map[string]int),
		Calls:        make(map[string]int),
		Applications: make(map[string]int),
	}
	wires := make(map[Wire]bool)
	for _, ta := range c.Inputs {
		wires[ta.Wire] = true
	}
	for _, ta := range c.Outputs {
		wires[ta.Wire] = true
	}
	for _, g := range c.Gates {
		for _, w := range g.Wires() {
			wires[w] = true
		}
		s.ByKind[GateKind(g)]++
		switch g := g.(type) {
		case QGate:
			s.Gates++
			s.ByOp[g.Op.String()]++
			if g.Control.IsControlled() {
				s.Controlled++
			}
			if g.Inverted {
				s.Inverted++
			}
		case QRot:
			s.Gates++
			s.ByOp[g.Op.String()]++
			if g.Inverted {
				s.Inverted++
			}
		case QInit:
			s.Gates++
			if g.Value {
				s.ByOp["Init1"]++
			} else {
				s.ByOp["Init0"]++
			}
		case SubroutineCall:
			s.Gates++
			s.Calls[g.Name]++
			s.Applications[g.Name] += g.Repetitions
			if g.Control.IsControlled() {
				s.Controlled++
			}
			if g.Inverted {
				s.Inverted++
			}
		}
	}
	s.Wires = len(wires)
	return s
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
