package quipper

import (
	"fmt"
	"strconv"
)

// Wire identifies a qubit or classical-bit line.
type Wire int

// SignedWire is a control reference. Positive controls fire on logical 1,
// negative controls fire on logical 0.
type SignedWire struct {
	Wire     Wire
	Positive bool
}

// String returns the source form of the reference, e.g. "+2" or "-3".
func (s SignedWire) String() string {
	if s.Positive {
		return "+" + strconv.Itoa(int(s.Wire))
	}
	return "-" + strconv.Itoa(int(s.Wire))
}

// WireType is the type of a wire declared in an Inputs or Outputs statement.
type WireType int

const (
	Qbit WireType = iota
	Cbit
)

func (t WireType) String() string {
	switch t {
	case Qbit:
		return "Qbit"
	case Cbit:
		return "Cbit"
	default:
		return fmt.Sprintf("WireType(%d)", int(t))
	}
}

// TypeAssignment declares the type of one wire.
type TypeAssignment struct {
	Wire Wire
	Type WireType
}

// Direction tells whether an IOStatement declares inputs or outputs.
type Direction int

const (
	Inputs Direction = iota
	Outputs
)

func (d Direction) String() string {
	if d == Outputs {
		return "Outputs"
	}
	return "Inputs"
}

// IOStatement is a single Inputs or Outputs line.
type IOStatement struct {
	Direction Direction
	Arity     []TypeAssignment
}

// Control is the control list applied to a gate. Every non-empty control
// list in the language is written with a trailing "with nocontrol", so
// NoControl is true whenever Controlled is non-empty.
type Control struct {
	Controlled []SignedWire
	NoControl  bool
}

// IsControlled reports whether at least one control is present.
func (c Control) IsControlled() bool {
	return len(c.Controlled) > 0
}

// WireLabel pairs a wire with a label inside a Comment or a labelled QInit.
type WireLabel struct {
	Wire  Wire
	Label string
}

// Gate is one statement of a circuit body. The set of implementations is
// closed: QGate, QRot, QInit, SubroutineCall and Comment.
type Gate interface {
	// Wires returns every wire the gate touches, targets first, then
	// controls, in source order.
	Wires() []Wire
	isGate()
}

// QGate applies a named single- or multi-qubit operation.
type QGate struct {
	Op       QGateOp
	Inverted bool
	Wire     Wire
	Control  Control
}

// QRot applies a parameterised rotation.
type QRot struct {
	Op       QRotOp
	Inverted bool
	Timestep float64
	Wire     Wire
}

// QInit initialises a wire to |0> or |1>.
type QInit struct {
	Value bool
	Wire  Wire
	Label string
}

// SubroutineCall invokes a named subroutine, possibly repeatedly.
type SubroutineCall struct {
	Repetitions int
	Name        string
	Shape       string
	Inverted    bool
	Inputs      []Wire
	Outputs     []Wire
	Control     Control
}

// Comment attaches text and per-wire labels to a point of the circuit. The
// labels keep source order and may repeat a wire.
type Comment struct {
	Text       string
	WireLabels []WireLabel
}

func (QGate) isGate()          {}
func (QRot) isGate()           {}
func (QInit) isGate()          {}
func (SubroutineCall) isGate() {}
func (Comment) isGate()        {}

func (g QGate) Wires() []Wire {
	return appendControls([]Wire{g.Wire}, g.Control)
}

func (g QRot) Wires() []Wire {
	return []Wire{g.Wire}
}

func (g QInit) Wires() []Wire {
	return []Wire{g.Wire}
}

func (g SubroutineCall) Wires() []Wire {
	wires := make([]Wire, 0, len(g.Inputs)+len(g.Outputs)+len(g.Control.Controlled))
	seen := make(map[Wire]bool)
	for _, w := range append(append([]Wire{}, g.Inputs...), g.Outputs...) {
		if !seen[w] {
			seen[w] = true
			wires = append(wires, w)
		}
	}
	return appendControls(wires, g.Control)
}

func (g Comment) Wires() []Wire {
	wires := make([]Wire, 0, len(g.WireLabels))
	for _, wl := range g.WireLabels {
		wires = append(wires, wl.Wire)
	}
	return wires
}

func appendControls(wires []Wire, c Control) []Wire {
	for _, ctrl := range c.Controlled {
		wires = append(wires, ctrl.Wire)
	}
	return wires
}

// Circuit is a body bracketed by its Inputs and Outputs statements.
type Circuit struct {
	Inputs  []TypeAssignment
	Gates   []Gate
	Outputs []TypeAssignment
}

// Controllable tells whether a subroutine may be called with controls.
type Controllable int

const (
	ControllableYes Controllable = iota
	ControllableNo
	ControllableClassically
)

func (c Controllable) String() string {
	switch c {
	case ControllableYes:
		return "yes"
	case ControllableNo:
		return "no"
	case ControllableClassically:
		return "classically"
	default:
		return fmt.Sprintf("Controllable(%d)", int(c))
	}
}

// Subroutine is a named circuit definition.
type Subroutine struct {
	Name         string
	Shape        string
	Controllable Controllable
	Circuit      Circuit
}

// Program is the main circuit followed by its subroutine definitions.
type Program struct {
	Circuit     Circuit
	Subroutines []Subroutine

	index  map[string]int
	report *Report
	// callPos holds the source position of every subroutine call, main
	// circuit first, then each subroutine body in definition order.
	callPos []Position
}

// NewProgram assembles a Program, indexing subroutines by name. Later
// definitions with a duplicate name are not indexed; Validate reports them.
func NewProgram(main Circuit, subs []Subroutine) *Program {
	p := &Program{
		Circuit:     main,
		Subroutines: subs,
		index:       make(map[string]int, len(subs)),
	}
	for i, s := range subs {
		if _, ok := p.index[s.Name]; !ok {
			p.index[s.Name] = i
		}
	}
	return p
}

// Subroutine looks a definition up by name.
func (p *Program) Subroutine(name string) (Subroutine, bool) {
	if p.index == nil {
		for _, s := range p.Subroutines {
			if s.Name == name {
				return s, true
			}
		}
		return Subroutine{}, false
	}
	i, ok := p.index[name]
	if !ok {
		return Subroutine{}, false
	}
	return p.Subroutines[i], true
}

// Report returns the validation report computed by Parse, or nil for a
// Program that was never validated.
func (p *Program) Report() *Report {
	return p.report
}
