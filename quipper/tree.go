package quipper

import (
	"fmt"
	"strings"
)

// Rule names a grammar nonterminal. Every rule up to RuleSubroutine can be
// used as a parse entry point; the rest only appear inside trees.
type Rule int

const (
	RuleProgram Rule = iota
	RuleCircuit
	RuleIOStatement
	RuleArity
	RuleTypeAssignment
	RuleGate
	RuleQGate
	RuleQRot
	RuleQInit
	RuleComment
	RuleWire
	RuleSubroutineCall
	RuleIntList
	RuleControlApp
	RuleSubroutine

	RuleInversion
	RuleRepetition
	RuleWireLabelList
	RuleSignedList
	RuleTerminal
)

var ruleNames = [...]string{
	RuleProgram:        "program",
	RuleCircuit:        "circuit",
	RuleIOStatement:    "iostatement",
	RuleArity:          "arity",
	RuleTypeAssignment: "typeassignment",
	RuleGate:           "gate",
	RuleQGate:          "qgate",
	RuleQRot:           "qrot",
	RuleQInit:          "qinit",
	RuleComment:        "comment",
	RuleWire:           "wire",
	RuleSubroutineCall: "subroutine_call",
	RuleIntList:        "int_list",
	RuleControlApp:     "control_app",
	RuleSubroutine:     "subroutine",
	RuleInversion:      "inversion",
	RuleRepetition:     "repetition",
	RuleWireLabelList:  "wire_label_list",
	RuleSignedList:     "signed_list",
	RuleTerminal:       "terminal",
}

func (r Rule) String() string {
	if r >= 0 && int(r) < len(ruleNames) {
		return ruleNames[r]
	}
	return fmt.Sprintf("Rule(%d)", int(r))
}

// EntryPoint reports whether the rule can start a parse.
func (r Rule) EntryPoint() bool {
	return r >= RuleProgram && r <= RuleSubroutine
}

// LookupRule maps a grammar name such as "subroutine_call" to its Rule.
func LookupRule(name string) (Rule, bool) {
	for i, n := range ruleNames {
		if n == name {
			return Rule(i), true
		}
	}
	return 0, false
}

// Node is a concrete parse tree node. Terminal nodes carry a Token and no
// children; every other node carries the children of its rule in source
// order. Statement nodes also keep their leading keyword in Token so that
// errors can point at the statement; it is not part of String.
type Node struct {
	Rule     Rule
	Token    Token
	Children []*Node
}

func leaf(tok Token) *Node {
	return &Node{Rule: RuleTerminal, Token: tok}
}

func branch(rule Rule, children ...*Node) *Node {
	return &Node{Rule: rule, Children: children}
}

func keyed(tok Token, rule Rule, children ...*Node) *Node {
	return &Node{Rule: rule, Token: tok, Children: children}
}

// Pos returns the position of n's leading token, or of the first token
// under it.
func (n *Node) Pos() Position {
	if n.Token.Pos.Line != 0 {
		return n.Token.Pos
	}
	for _, c := range n.Children {
		if pos := c.Pos(); pos.Line != 0 {
			return pos
		}
	}
	return Position{}
}

// String renders the tree as an s-expression, e.g.
// (qgate "not" (inversion) 0 (control_app nocontrol)).
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	if n.Rule == RuleTerminal {
		sb.WriteString(n.Token.Text)
		return
	}
	sb.WriteByte('(')
	sb.WriteString(n.Rule.String())
	for _, c := range n.Children {
		sb.WriteByte(' ')
		c.write(sb)
	}
	sb.WriteByte(')')
}
