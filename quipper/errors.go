package quipper

import (
	"errors"
	"fmt"
)

// LexError reports text that does not form any token.
type LexError struct {
	Pos Position
	Msg string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: lex error: %s", e.Pos, e.Msg)
}

// SyntaxError reports a token stream that does not satisfy a grammar rule.
type SyntaxError struct {
	Pos      Position
	Rule     Rule
	Expected string
	Found    Token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: syntax error in %s: expected %s, found %s", e.Pos, e.Rule, e.Expected, e.Found)
}

// SemanticError reports a structurally valid construct without meaning,
// such as an unknown gate name or a duplicate wire.
type SemanticError struct {
	Pos Position
	// Literal is the offending source text, when there is one.
	Literal string
	Msg     string
}

func (e *SemanticError) Error() string {
	if e.Literal != "" {
		return fmt.Sprintf("%s: semantic error: %s: %q", e.Pos, e.Msg, e.Literal)
	}
	return fmt.Sprintf("%s: semantic error: %s", e.Pos, e.Msg)
}

// ErrorKind classifies an error returned by this package as "lex",
// "syntax" or "semantic". Any other error yields "".
func ErrorKind(err error) string {
	var (
		lexErr *LexError
		synErr *SyntaxError
		semErr *SemanticError
	)
	switch {
	case errors.As(err, &lexErr):
		return "lex"
	case errors.As(err, &synErr):
		return "syntax"
	case errors.As(err, &semErr):
		return "semantic"
	}
	return ""
}

// ErrorPosition extracts the source position carried by a parse error.
func ErrorPosition(err error) (Position, bool) {
	var (
		lexErr *LexError
		synErr *SyntaxError
		semErr *SemanticError
	)
	switch {
	case errors.As(err, &lexErr):
		return lexErr.Pos, true
	case errors.As(err, &synErr):
		return synErr.Pos, true
	case errors.As(err, &semErr):
		return semErr.Pos, true
	}
	return Position{}, false
}

func semanticf(pos Position, literal string, format string, args ...any) *SemanticError {
	return &SemanticError{Pos: pos, Literal: literal, Msg: fmt.Sprintf(format, args...)}
}
