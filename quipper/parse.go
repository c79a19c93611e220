package quipper

import (
	"fmt"
)

// Parse parses a complete program: the main circuit followed by any number
// of subroutine definitions. The returned Program has been validated and
// carries its Report. With WithStrictCalls, a call to a subroutine that is
// not defined in text is a SemanticError.
func Parse(text string, opts ...Option) (*Program, error) {
	v, err := ParseRule(text, RuleProgram, opts...)
	if err != nil {
		return nil, err
	}
	return v.(*Program), nil
}

// ParseTree parses text as the given rule and returns the concrete tree
// without building model values.
func ParseTree(text string, rule Rule, opts ...Option) (*Node, error) {
	if !rule.EntryPoint() {
		return nil, fmt.Errorf("quipper: %s is not a parse entry rule", rule)
	}
	toks, err := Lex(text, opts...)
	if err != nil {
		return nil, err
	}
	return newParser(toks).parse(rule)
}

// ParseRule parses text as the given rule and builds its model value:
//
//	RuleProgram                       *Program
//	RuleCircuit                       Circuit
//	RuleIOStatement                   IOStatement
//	RuleArity                         []TypeAssignment
//	RuleTypeAssignment                TypeAssignment
//	RuleGate, RuleQGate, RuleQRot,
//	RuleQInit, RuleComment,
//	RuleSubroutineCall                Gate
//	RuleWire                          WireLabel
//	RuleIntList                       []Wire
//	RuleControlApp                    Control
//	RuleSubroutine                    Subroutine
func ParseRule(text string, rule Rule, opts ...Option) (any, error) {
	n, err := ParseTree(text, rule, opts...)
	if err != nil {
		return nil, err
	}
	b := &builder{}
	switch rule {
	case RuleProgram:
		p, err := b.program(n)
		if err != nil {
			return nil, err
		}
		r, err := Validate(p)
		if err != nil {
			return nil, err
		}
		if o := newOptions(opts); o.strict && len(r.Unresolved) > 0 {
			cs := r.Unresolved[0]
			return nil, semanticf(cs.Pos, cs.Name, "call to undefined subroutine")
		}
		p.report = r
		return p, nil
	case RuleCircuit:
		return b.circuit(n)
	case RuleIOStatement:
		return b.ioStatement(n)
	case RuleArity:
		return b.arity(n, "arity")
	case RuleTypeAssignment:
		return b.typeAssignment(n)
	case RuleGate, RuleQGate, RuleQRot, RuleQInit, RuleComment, RuleSubroutineCall:
		return b.gate(n)
	case RuleWire:
		return b.wireLabel(n)
	case RuleIntList:
		return b.intList(n)
	case RuleControlApp:
		return b.control(n)
	case RuleSubroutine:
		return b.subroutine(n)
	}
	return nil, fmt.Errorf("quipper: %s is not a parse entry rule", rule)
}
