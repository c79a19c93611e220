package quipper

import (
	"sort"
)

// CallSite locates one subroutine call. Caller is the name of the
// subroutine whose body holds the call, or "" for the main circuit.
type CallSite struct {
	Caller string
	Index  int
	Name   string
	Pos    Position
}

// Report is the outcome of validating a Program.
type Report struct {
	Resolved   []CallSite
	Unresolved []CallSite
	// Recursive lists, in definition order, the subroutines that reach
	// themselves through their calls.
	Recursive []string
}

// UnresolvedNames returns the sorted distinct names of unresolved calls.
func (r *Report) UnresolvedNames() []string {
	if r == nil {
		return nil
	}
	seen := make(map[string]bool)
	var names []string
	for _, cs := range r.Unresolved {
		if !seen[cs.Name] {
			seen[cs.Name] = true
			names = append(names, cs.Name)
		}
	}
	sort.Strings(names)
	return names
}

// Validate checks the invariants of p and resolves its subroutine calls.
// Parse runs it on every program; it is exported for programs assembled in
// code. Unresolved calls and recursion are reported, not rejected.
func Validate(p *Program) (*Report, error) {
	seen := make(map[string]bool, len(p.Subroutines))
	for _, s := range p.Subroutines {
		if seen[s.Name] {
			return nil, semanticf(Position{}, s.Name, "duplicate subroutine definition")
		}
		seen[s.Name] = true
	}
	if err := validateCircuit(p.Circuit, ""); err != nil {
		return nil, err
	}
	for _, s := range p.Subroutines {
		if err := validateCircuit(s.Circuit, s.Name); err != nil {
			return nil, err
		}
	}

	r := &Report{}
	calls := 0
	record := func(caller string, c Circuit) {
		for i, g := range c.Gates {
			call, ok := g.(SubroutineCall)
			if !ok {
				continue
			}
			cs := CallSite{Caller: caller, Index: i, Name: call.Name}
			if calls < len(p.callPos) {
				cs.Pos = p.callPos[calls]
			}
			calls++
			if _, ok := p.Subroutine(call.Name); ok {
				r.Resolved = append(r.Resolved, cs)
			} else {
				r.Unresolved = append(r.Unresolved, cs)
			}
		}
	}
	record("", p.Circuit)
	for _, s := range p.Subroutines {
		record(s.Name, s.Circuit)
	}
	r.Recursive = recursive(p, r.Resolved)
	return r, nil
}

func validateCircuit(c Circuit, owner string) error {
	where := "main circuit"
	if owner != "" {
		where = "subroutine " + owner
	}
	if err := validateArity(c.Inputs, "Inputs of "+where); err != nil {
		return err
	}
	if err := validateArity(c.Outputs, "Outputs of "+where); err != nil {
		return err
	}
	for i, g := range c.Gates {
		for _, w := range g.Wires() {
			if w < 0 {
				return semanticf(Position{}, "", "gate %d of %s: negative wire %d", i, where, w)
			}
		}
		switch g := g.(type) {
		case QGate:
			if g.Op < OpNot || g.Op > OpIX {
				return semanticf(Position{}, g.Op.Name(), "gate %d of %s: unknown gate operation", i, where)
			}
		case QRot:
			if g.Op != OpExpZt && g.Op != OpR {
				return semanticf(Position{}, g.Op.Name(), "gate %d of %s: unknown rotation operation", i, where)
			}
		case SubroutineCall:
			if g.Repetitions < 1 {
				return semanticf(Position{}, g.Name, "gate %d of %s: repetition count %d is not positive", i, where, g.Repetitions)
			}
			if g.Name == "" {
				return semanticf(Position{}, "", "gate %d of %s: subroutine call without a name", i, where)
			}
		}
	}
	return nil
}

func validateArity(arity []TypeAssignment, where string) error {
	seen := make(map[Wire]bool, len(arity))
	for _, ta := range arity {
		if ta.Wire < 0 {
			return semanticf(Position{}, "", "negative wire %d in %s", ta.Wire, where)
		}
		if seen[ta.Wire] {
			return semanticf(Position{}, "", "duplicate wire %d in %s", ta.Wire, where)
		}
		seen[ta.Wire] = true
	}
	return nil
}

// recursive returns the subroutines that can reach themselves through the
// resolved call graph.
func recursive(p *Program, resolved []CallSite) []string {
	edges := make(map[string][]string)
	for _, cs := range resolved {
		if cs.Caller != "" {
			edges[cs.Caller] = append(edges[cs.Caller], cs.Name)
		}
	}
	var out []string
	for _, s := range p.Subroutines {
		if reaches(edges, s.Name, s.Name) {
			out = append(out, s.Name)
		}
	}
	return out
}

func reaches(edges map[string][]string, from, target string) bool {
	visited := make(map[string]bool)
	stack := append([]string(nil), edges[from]...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == target {
			return true
		}
		if visited[n] {
			continue
		}
		visited[n] = true
		stack = append(stack, edges[n]...)
	}
	return false
}
