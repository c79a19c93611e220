package quipper

// parser is a recursive descent parser over a lexed token slice. Each rule
// method consumes the tokens of one nonterminal and returns its tree node;
// the first unmet expectation aborts the whole parse.
type parser struct {
	toks []Token
	pos  int
}

func newParser(toks []Token) *parser {
	return &parser{toks: toks}
}

func (p *parser) peek() Token {
	return p.toks[p.pos]
}

func (p *parser) next() Token {
	tok := p.toks[p.pos]
	if tok.Kind != EOF {
		p.pos++
	}
	return tok
}

func (p *parser) at(kind Kind, text string) bool {
	return p.peek().Is(kind, text)
}

func (p *parser) atKind(kind Kind) bool {
	return p.peek().Kind == kind
}

func (p *parser) fail(rule Rule, expected string) error {
	tok := p.peek()
	return &SyntaxError{Pos: tok.Pos, Rule: rule, Expected: expected, Found: tok}
}

// expect consumes a token with the given kind and literal text.
func (p *parser) expect(rule Rule, kind Kind, text string) (Token, error) {
	if !p.at(kind, text) {
		return Token{}, p.fail(rule, "\""+text+"\"")
	}
	return p.next(), nil
}

// expectKind consumes a token of the given kind whatever its text.
func (p *parser) expectKind(rule Rule, kind Kind) (Token, error) {
	if !p.atKind(kind) {
		return Token{}, p.fail(rule, kind.String())
	}
	return p.next(), nil
}

// punct consumes a run of punctuation tokens such as "]", "(".
func (p *parser) punct(rule Rule, marks ...string) error {
	for _, m := range marks {
		if _, err := p.expect(rule, Punct, m); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) skipNewlines() {
	for p.atKind(Newline) {
		p.next()
	}
}

// endStatement requires a statement to be followed by a newline or the end
// of input. The newline itself is left for skipNewlines.
func (p *parser) endStatement(rule Rule) error {
	if p.atKind(Newline) || p.atKind(EOF) {
		return nil
	}
	return p.fail(rule, "end of statement")
}

// parse runs rule over the whole token stream. Leading and trailing blank
// lines are ignored; anything else left over is an error.
func (p *parser) parse(rule Rule) (*Node, error) {
	p.skipNewlines()
	n, err := p.rule(rule)
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	if !p.atKind(EOF) {
		return nil, p.fail(rule, "end of input")
	}
	return n, nil
}

func (p *parser) rule(rule Rule) (*Node, error) {
	switch rule {
	case RuleProgram:
		return p.program()
	case RuleCircuit:
		return p.circuit()
	case RuleIOStatement:
		return p.ioStatement()
	case RuleArity:
		return p.arity()
	case RuleTypeAssignment:
		return p.typeAssignment()
	case RuleGate:
		return p.gate()
	case RuleQGate:
		return p.qgate()
	case RuleQRot:
		return p.qrot()
	case RuleQInit:
		return p.qinit()
	case RuleComment:
		return p.comment()
	case RuleWire:
		return p.wire()
	case RuleSubroutineCall:
		return p.subroutineCall()
	case RuleIntList:
		return p.intList()
	case RuleControlApp:
		return p.controlApp()
	case RuleSubroutine:
		return p.subroutine()
	}
	return nil, p.fail(rule, "a parse entry rule")
}

// program := circuit subroutine*
func (p *parser) program() (*Node, error) {
	main, err := p.circuit()
	if err != nil {
		return nil, err
	}
	n := branch(RuleProgram, main)
	for {
		p.skipNewlines()
		if p.atKind(EOF) {
			return n, nil
		}
		sub, err := p.subroutine()
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, sub)
	}
}

// circuit := iostatement gate* iostatement
//
// The opening statement must declare Inputs and the body runs until the
// first Outputs statement.
func (p *parser) circuit() (*Node, error) {
	p.skipNewlines()
	if !p.at(Keyword, "Inputs") {
		return nil, p.fail(RuleCircuit, "\"Inputs\"")
	}
	in, err := p.ioStatement()
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(RuleCircuit); err != nil {
		return nil, err
	}
	n := branch(RuleCircuit, in)
	for {
		p.skipNewlines()
		if p.at(Keyword, "Outputs") {
			break
		}
		g, err := p.gate()
		if err != nil {
			return nil, err
		}
		if err := p.endStatement(RuleCircuit); err != nil {
			return nil, err
		}
		n.Children = append(n.Children, g)
	}
	out, err := p.ioStatement()
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(RuleCircuit); err != nil {
		return nil, err
	}
	n.Children = append(n.Children, out)
	return n, nil
}

// iostatement := ("Inputs"|"Outputs") ":" arity
func (p *parser) ioStatement() (*Node, error) {
	if !p.at(Keyword, "Inputs") && !p.at(Keyword, "Outputs") {
		return nil, p.fail(RuleIOStatement, "\"Inputs\" or \"Outputs\"")
	}
	dir := leaf(p.next())
	if err := p.punct(RuleIOStatement, ":"); err != nil {
		return nil, err
	}
	ar, err := p.arity()
	if err != nil {
		return nil, err
	}
	return branch(RuleIOStatement, dir, ar), nil
}

// arity := typeassignment ("," typeassignment)*
func (p *parser) arity() (*Node, error) {
	n := branch(RuleArity)
	for {
		ta, err := p.typeAssignment()
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, ta)
		if !p.at(Punct, ",") {
			return n, nil
		}
		p.next()
	}
}

// typeassignment := int ":" ("Qbit"|"Cbit")
func (p *parser) typeAssignment() (*Node, error) {
	w, err := p.expectKind(RuleTypeAssignment, Int)
	if err != nil {
		return nil, err
	}
	if err := p.punct(RuleTypeAssignment, ":"); err != nil {
		return nil, err
	}
	if !p.at(Keyword, "Qbit") && !p.at(Keyword, "Cbit") {
		return nil, p.fail(RuleTypeAssignment, "\"Qbit\" or \"Cbit\"")
	}
	return branch(RuleTypeAssignment, leaf(w), leaf(p.next())), nil
}

// gate := qgate | qrot | qinit | comment | subroutine_call
//
// The choice is made on the first token, and the chosen statement node is
// returned directly; gate never appears as a node of its own.
func (p *parser) gate() (*Node, error) {
	tok := p.peek()
	switch {
	case tok.Is(Opener, "QGate["):
		return p.qgate()
	case tok.Is(Opener, "QRot["):
		return p.qrot()
	case tok.Is(Keyword, "QInit0"), tok.Is(Keyword, "QInit1"):
		return p.qinit()
	case tok.Is(Opener, "Comment["):
		return p.comment()
	case tok.Is(Keyword, "Subroutine"):
		return p.subroutineCall()
	}
	return nil, p.fail(RuleGate, "a gate")
}

// inversion := "*"?
func (p *parser) inversion() *Node {
	n := branch(RuleInversion)
	if p.at(Punct, "*") {
		n.Children = append(n.Children, leaf(p.next()))
	}
	return n
}

// qgate := "QGate[" string "]" inversion "(" int ")" "with" control_app
func (p *parser) qgate() (*Node, error) {
	start, err := p.expect(RuleQGate, Opener, "QGate[")
	if err != nil {
		return nil, err
	}
	name, err := p.expectKind(RuleQGate, String)
	if err != nil {
		return nil, err
	}
	if err := p.punct(RuleQGate, "]"); err != nil {
		return nil, err
	}
	inv := p.inversion()
	if err := p.punct(RuleQGate, "("); err != nil {
		return nil, err
	}
	w, err := p.expectKind(RuleQGate, Int)
	if err != nil {
		return nil, err
	}
	if err := p.punct(RuleQGate, ")"); err != nil {
		return nil, err
	}
	if _, err := p.expect(RuleQGate, Keyword, "with"); err != nil {
		return nil, err
	}
	ctl, err := p.controlApp()
	if err != nil {
		return nil, err
	}
	return keyed(start, RuleQGate, leaf(name), inv, leaf(w), ctl), nil
}

// qrot := "QRot[" string "," float "]" inversion "(" int ")"
func (p *parser) qrot() (*Node, error) {
	start, err := p.expect(RuleQRot, Opener, "QRot[")
	if err != nil {
		return nil, err
	}
	name, err := p.expectKind(RuleQRot, String)
	if err != nil {
		return nil, err
	}
	if err := p.punct(RuleQRot, ","); err != nil {
		return nil, err
	}
	ts, err := p.expectKind(RuleQRot, Float)
	if err != nil {
		return nil, err
	}
	if err := p.punct(RuleQRot, "]"); err != nil {
		return nil, err
	}
	inv := p.inversion()
	if err := p.punct(RuleQRot, "("); err != nil {
		return nil, err
	}
	w, err := p.expectKind(RuleQRot, Int)
	if err != nil {
		return nil, err
	}
	if err := p.punct(RuleQRot, ")"); err != nil {
		return nil, err
	}
	return keyed(start, RuleQRot, leaf(name), leaf(ts), inv, leaf(w)), nil
}

// qinit := ("QInit0"|"QInit1") "(" (wire | int) ")" "with" "nocontrol"
func (p *parser) qinit() (*Node, error) {
	if !p.at(Keyword, "QInit0") && !p.at(Keyword, "QInit1") {
		return nil, p.fail(RuleQInit, "\"QInit0\" or \"QInit1\"")
	}
	kw := p.next()
	if err := p.punct(RuleQInit, "("); err != nil {
		return nil, err
	}
	w, err := p.expectKind(RuleQInit, Int)
	if err != nil {
		return nil, err
	}
	target := leaf(w)
	if p.at(Punct, ":") {
		p.next()
		label, err := p.expectKind(RuleQInit, String)
		if err != nil {
			return nil, err
		}
		target = branch(RuleWire, target, leaf(label))
	}
	if err := p.punct(RuleQInit, ")"); err != nil {
		return nil, err
	}
	if _, err := p.expect(RuleQInit, Keyword, "with"); err != nil {
		return nil, err
	}
	if _, err := p.expect(RuleQInit, Keyword, "nocontrol"); err != nil {
		return nil, err
	}
	return keyed(kw, RuleQInit, leaf(kw), target), nil
}

// comment := "Comment[" string "]" "(" (wire ("," wire)*)? ")"
//
// The labels are kept flat as alternating wire and label terminals.
func (p *parser) comment() (*Node, error) {
	start, err := p.expect(RuleComment, Opener, "Comment[")
	if err != nil {
		return nil, err
	}
	text, err := p.expectKind(RuleComment, String)
	if err != nil {
		return nil, err
	}
	if err := p.punct(RuleComment, "]", "("); err != nil {
		return nil, err
	}
	labels := branch(RuleWireLabelList)
	if !p.at(Punct, ")") {
		for {
			wl, err := p.wire()
			if err != nil {
				return nil, err
			}
			labels.Children = append(labels.Children, wl.Children...)
			if !p.at(Punct, ",") {
				break
			}
			p.next()
		}
	}
	if err := p.punct(RuleComment, ")"); err != nil {
		return nil, err
	}
	return keyed(start, RuleComment, leaf(text), labels), nil
}

// wire := int ":" string
func (p *parser) wire() (*Node, error) {
	w, err := p.expectKind(RuleWire, Int)
	if err != nil {
		return nil, err
	}
	if err := p.punct(RuleWire, ":"); err != nil {
		return nil, err
	}
	label, err := p.expectKind(RuleWire, String)
	if err != nil {
		return nil, err
	}
	return branch(RuleWire, leaf(w), leaf(label)), nil
}

// subroutine_call := "Subroutine" repetition inversion "[" string ","
//
//	"shape" string "]" inversion "(" int_list ")" "->" "(" int_list ")"
//	("with" control_app)?
//
// Either inversion position marks the call as inverted; the tree keeps a
// single inversion node holding every "*" seen.
func (p *parser) subroutineCall() (*Node, error) {
	start, err := p.expect(RuleSubroutineCall, Keyword, "Subroutine")
	if err != nil {
		return nil, err
	}
	rep := branch(RuleRepetition)
	if p.at(Punct, "(") {
		p.next()
		count, err := p.expectKind(RuleSubroutineCall, Repeat)
		if err != nil {
			return nil, err
		}
		if err := p.punct(RuleSubroutineCall, ")"); err != nil {
			return nil, err
		}
		rep.Children = append(rep.Children, leaf(count))
	}
	inv := p.inversion()
	if _, err := p.expect(RuleSubroutineCall, Punct, "["); err != nil {
		return nil, err
	}
	name, err := p.expectKind(RuleSubroutineCall, String)
	if err != nil {
		return nil, err
	}
	if err := p.punct(RuleSubroutineCall, ","); err != nil {
		return nil, err
	}
	if _, err := p.expect(RuleSubroutineCall, Keyword, "shape"); err != nil {
		return nil, err
	}
	shape, err := p.expectKind(RuleSubroutineCall, String)
	if err != nil {
		return nil, err
	}
	if err := p.punct(RuleSubroutineCall, "]"); err != nil {
		return nil, err
	}
	inv.Children = append(inv.Children, p.inversion().Children...)
	if err := p.punct(RuleSubroutineCall, "("); err != nil {
		return nil, err
	}
	ins, err := p.intList()
	if err != nil {
		return nil, err
	}
	if err := p.punct(RuleSubroutineCall, ")"); err != nil {
		return nil, err
	}
	if _, err := p.expectKind(RuleSubroutineCall, Arrow); err != nil {
		return nil, err
	}
	if err := p.punct(RuleSubroutineCall, "("); err != nil {
		return nil, err
	}
	outs, err := p.intList()
	if err != nil {
		return nil, err
	}
	if err := p.punct(RuleSubroutineCall, ")"); err != nil {
		return nil, err
	}
	ctl := branch(RuleControlApp)
	if p.at(Keyword, "with") {
		p.next()
		if ctl, err = p.controlApp(); err != nil {
			return nil, err
		}
	}
	return keyed(start, RuleSubroutineCall, rep, leaf(name), leaf(shape), inv, ins, outs, ctl), nil
}

// int_list := (int ("," int)*)?
func (p *parser) intList() (*Node, error) {
	n := branch(RuleIntList)
	if !p.atKind(Int) {
		return n, nil
	}
	for {
		w, err := p.expectKind(RuleIntList, Int)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, leaf(w))
		if !p.at(Punct, ",") {
			return n, nil
		}
		p.next()
	}
}

// control_app := "nocontrol"
//
//	| "controls=[" signed_list "]" ("with" "nocontrol")?
//
// The leading "with" belongs to the enclosing statement.
func (p *parser) controlApp() (*Node, error) {
	if p.at(Keyword, "nocontrol") {
		return branch(RuleControlApp, leaf(p.next())), nil
	}
	if !p.at(Opener, "controls=[") {
		return nil, p.fail(RuleControlApp, "\"nocontrol\" or \"controls=[\"")
	}
	list := keyed(p.next(), RuleSignedList)
	if !p.at(Punct, "]") {
		for {
			c, err := p.expectKind(RuleControlApp, Int)
			if err != nil {
				return nil, err
			}
			list.Children = append(list.Children, leaf(c))
			if !p.at(Punct, ",") {
				break
			}
			p.next()
		}
	}
	if err := p.punct(RuleControlApp, "]"); err != nil {
		return nil, err
	}
	n := branch(RuleControlApp, list)
	if p.at(Keyword, "with") {
		p.next()
		nc, err := p.expect(RuleControlApp, Keyword, "nocontrol")
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, leaf(nc))
	}
	return n, nil
}

// subroutine := "Subroutine:" string "Shape:" string
//
//	"Controllable:" ("yes"|"no"|"classically") circuit
func (p *parser) subroutine() (*Node, error) {
	start, err := p.expect(RuleSubroutine, Header, "Subroutine:")
	if err != nil {
		return nil, err
	}
	name, err := p.expectKind(RuleSubroutine, String)
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	if _, err := p.expect(RuleSubroutine, Header, "Shape:"); err != nil {
		return nil, err
	}
	shape, err := p.expectKind(RuleSubroutine, String)
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	if _, err := p.expect(RuleSubroutine, Header, "Controllable:"); err != nil {
		return nil, err
	}
	if !p.at(Keyword, "yes") && !p.at(Keyword, "no") && !p.at(Keyword, "classically") {
		return nil, p.fail(RuleSubroutine, "\"yes\", \"no\" or \"classically\"")
	}
	ctl := leaf(p.next())
	if err := p.endStatement(RuleSubroutine); err != nil {
		return nil, err
	}
	body, err := p.circuit()
	if err != nil {
		return nil, err
	}
	return keyed(start, RuleSubroutine, leaf(name), leaf(shape), ctl, body), nil
}
