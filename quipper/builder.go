package quipper

import (
	"strconv"
)

// builder turns parse tree nodes into model values. It checks everything a
// single node can tell: operation names, integer ranges, control polarity
// and wire uniqueness within an arity.
type builder struct {
	callPos []Position
}

func (b *builder) program(n *Node) (*Program, error) {
	main, err := b.circuit(n.Children[0])
	if err != nil {
		return nil, err
	}
	var subs []Subroutine
	seen := make(map[string]bool)
	for _, c := range n.Children[1:] {
		sub, err := b.subroutine(c)
		if err != nil {
			return nil, err
		}
		if seen[sub.Name] {
			tok := c.Children[0].Token
			return nil, semanticf(tok.Pos, sub.Name, "duplicate subroutine definition")
		}
		seen[sub.Name] = true
		subs = append(subs, sub)
	}
	p := NewProgram(main, subs)
	p.callPos = b.callPos
	return p, nil
}

func (b *builder) circuit(n *Node) (Circuit, error) {
	last := len(n.Children) - 1
	in, err := b.ioStatement(n.Children[0])
	if err != nil {
		return Circuit{}, err
	}
	out, err := b.ioStatement(n.Children[last])
	if err != nil {
		return Circuit{}, err
	}
	c := Circuit{Inputs: in.Arity, Outputs: out.Arity}
	for _, g := range n.Children[1:last] {
		gate, err := b.gate(g)
		if err != nil {
			return Circuit{}, err
		}
		c.Gates = append(c.Gates, gate)
	}
	return c, nil
}

func (b *builder) ioStatement(n *Node) (IOStatement, error) {
	dir := Inputs
	if n.Children[0].Token.Text == "Outputs" {
		dir = Outputs
	}
	arity, err := b.arity(n.Children[1], dir.String())
	if err != nil {
		return IOStatement{}, err
	}
	return IOStatement{Direction: dir, Arity: arity}, nil
}

func (b *builder) arity(n *Node, context string) ([]TypeAssignment, error) {
	out := make([]TypeAssignment, 0, len(n.Children))
	seen := make(map[Wire]bool, len(n.Children))
	for _, c := range n.Children {
		ta, err := b.typeAssignment(c)
		if err != nil {
			return nil, err
		}
		if seen[ta.Wire] {
			tok := c.Children[0].Token
			return nil, semanticf(tok.Pos, tok.Text, "duplicate wire %d in %s", ta.Wire, context)
		}
		seen[ta.Wire] = true
		out = append(out, ta)
	}
	return out, nil
}

func (b *builder) typeAssignment(n *Node) (TypeAssignment, error) {
	w, err := wireOf(n.Children[0].Token)
	if err != nil {
		return TypeAssignment{}, err
	}
	typ := Qbit
	if n.Children[1].Token.Text == "Cbit" {
		typ = Cbit
	}
	return TypeAssignment{Wire: w, Type: typ}, nil
}

func (b *builder) gate(n *Node) (Gate, error) {
	switch n.Rule {
	case RuleQGate:
		return b.qgate(n)
	case RuleQRot:
		return b.qrot(n)
	case RuleQInit:
		return b.qinit(n)
	case RuleComment:
		return b.comment(n)
	case RuleSubroutineCall:
		return b.subroutineCall(n)
	}
	return nil, semanticf(n.Pos(), "", "%s is not a gate", n.Rule)
}

func (b *builder) qgate(n *Node) (Gate, error) {
	nameTok := n.Children[0].Token
	name := unquote(nameTok)
	op, ok := LookupQGateOp(name)
	if !ok {
		return nil, semanticf(nameTok.Pos, name, "unknown gate operation")
	}
	w, err := wireOf(n.Children[2].Token)
	if err != nil {
		return nil, err
	}
	ctl, err := b.control(n.Children[3])
	if err != nil {
		return nil, err
	}
	return QGate{Op: op, Inverted: inverted(n.Children[1]), Wire: w, Control: ctl}, nil
}

func (b *builder) qrot(n *Node) (Gate, error) {
	nameTok := n.Children[0].Token
	name := unquote(nameTok)
	op, ok := LookupQRotOp(name)
	if !ok {
		return nil, semanticf(nameTok.Pos, name, "unknown rotation operation")
	}
	tsTok := n.Children[1].Token
	ts, err := strconv.ParseFloat(tsTok.Text, 64)
	if err != nil {
		return nil, semanticf(tsTok.Pos, tsTok.Text, "timestep out of range")
	}
	w, err := wireOf(n.Children[3].Token)
	if err != nil {
		return nil, err
	}
	return QRot{Op: op, Inverted: inverted(n.Children[2]), Timestep: ts, Wire: w}, nil
}

func (b *builder) qinit(n *Node) (Gate, error) {
	g := QInit{Value: n.Children[0].Token.Text == "QInit1"}
	target := n.Children[1]
	if target.Rule == RuleWire {
		wl, err := b.wireLabel(target)
		if err != nil {
			return nil, err
		}
		g.Wire, g.Label = wl.Wire, wl.Label
		return g, nil
	}
	w, err := wireOf(target.Token)
	if err != nil {
		return nil, err
	}
	g.Wire = w
	return g, nil
}

// comment pairs the flat label list positionally: wire, label, wire,
// label. Repeated wires keep every pair.
func (b *builder) comment(n *Node) (Gate, error) {
	g := Comment{Text: unquote(n.Children[0].Token)}
	flat := n.Children[1].Children
	for i := 0; i+1 < len(flat); i += 2 {
		w, err := wireOf(flat[i].Token)
		if err != nil {
			return nil, err
		}
		g.WireLabels = append(g.WireLabels, WireLabel{Wire: w, Label: unquote(flat[i+1].Token)})
	}
	return g, nil
}

func (b *builder) wireLabel(n *Node) (WireLabel, error) {
	w, err := wireOf(n.Children[0].Token)
	if err != nil {
		return WireLabel{}, err
	}
	return WireLabel{Wire: w, Label: unquote(n.Children[1].Token)}, nil
}

func (b *builder) subroutineCall(n *Node) (Gate, error) {
	g := SubroutineCall{Repetitions: 1}
	if rep := n.Children[0]; len(rep.Children) > 0 {
		tok := rep.Children[0].Token
		count, err := strconv.Atoi(tok.Text[1:])
		if err != nil || count < 1 {
			return nil, semanticf(tok.Pos, tok.Text, "repetition count must be a positive integer")
		}
		g.Repetitions = count
	}
	g.Name = unquote(n.Children[1].Token)
	g.Shape = unquote(n.Children[2].Token)
	g.Inverted = inverted(n.Children[3])
	var err error
	if g.Inputs, err = b.intList(n.Children[4]); err != nil {
		return nil, err
	}
	if g.Outputs, err = b.intList(n.Children[5]); err != nil {
		return nil, err
	}
	if g.Control, err = b.control(n.Children[6]); err != nil {
		return nil, err
	}
	b.callPos = append(b.callPos, n.Pos())
	return g, nil
}

func (b *builder) intList(n *Node) ([]Wire, error) {
	var out []Wire
	for _, c := range n.Children {
		w, err := wireOf(c.Token)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

// control builds a Control from a control_app node. An absent control_app
// has no children and yields the zero Control.
func (b *builder) control(n *Node) (Control, error) {
	var ctl Control
	for _, c := range n.Children {
		if c.Rule == RuleTerminal {
			ctl.NoControl = true
			continue
		}
		if len(c.Children) == 0 {
			return Control{}, semanticf(n.Pos(), "controls=[]", "control list must not be empty")
		}
		for _, ref := range c.Children {
			sw, err := signedWireOf(ref.Token)
			if err != nil {
				return Control{}, err
			}
			ctl.Controlled = append(ctl.Controlled, sw)
		}
	}
	return ctl, nil
}

func (b *builder) subroutine(n *Node) (Subroutine, error) {
	var ctl Controllable
	switch n.Children[2].Token.Text {
	case "yes":
		ctl = ControllableYes
	case "no":
		ctl = ControllableNo
	default:
		ctl = ControllableClassically
	}
	body, err := b.circuit(n.Children[3])
	if err != nil {
		return Subroutine{}, err
	}
	return Subroutine{
		Name:         unquote(n.Children[0].Token),
		Shape:        unquote(n.Children[1].Token),
		Controllable: ctl,
		Circuit:      body,
	}, nil
}

func inverted(n *Node) bool {
	return len(n.Children) > 0
}

// unquote strips the surrounding double quotes. The language has no escape
// sequences.
func unquote(tok Token) string {
	if len(tok.Text) >= 2 && tok.Text[0] == '"' {
		return tok.Text[1 : len(tok.Text)-1]
	}
	return tok.Text
}

func wireOf(tok Token) (Wire, error) {
	if tok.Text != "" && tok.Text[0] == '+' {
		return 0, semanticf(tok.Pos, tok.Text, "polarity is only allowed in a control list")
	}
	// "-0" is still a signed literal.
	if tok.Text != "" && tok.Text[0] == '-' {
		return 0, semanticf(tok.Pos, tok.Text, "wire number must not be negative")
	}
	n, err := strconv.Atoi(tok.Text)
	if err != nil {
		return 0, semanticf(tok.Pos, tok.Text, "wire number out of range")
	}
	return Wire(n), nil
}

func signedWireOf(tok Token) (SignedWire, error) {
	if tok.Text == "" || (tok.Text[0] != '+' && tok.Text[0] != '-') {
		return SignedWire{}, semanticf(tok.Pos, tok.Text, "control reference needs a + or - polarity")
	}
	n, err := strconv.Atoi(tok.Text[1:])
	if err != nil {
		return SignedWire{}, semanticf(tok.Pos, tok.Text, "wire number out of range")
	}
	return SignedWire{Wire: Wire(n), Positive: tok.Text[0] == '+'}, nil
}
