package quipper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Kind is the lexical class of a Token.
type Kind int

const (
	EOF Kind = iota
	Newline
	Float   // 1.5e-03, 1e-05
	Int     // 0, +2, -3
	String  // "qs[0]"
	Opener  // QGate[ QRot[ Comment[ controls=[
	Header  // Subroutine: Shape: Controllable:
	Repeat  // x154
	Keyword // Inputs, with, nocontrol, Qbit, ...
	Arrow   // ->
	Punct   // [ ] ( ) : , *
)

var kindNames = [...]string{
	EOF:     "end of input",
	Newline: "newline",
	Float:   "float",
	Int:     "integer",
	String:  "string",
	Opener:  "opener",
	Header:  "header",
	Repeat:  "repetition",
	Keyword: "keyword",
	Arrow:   "arrow",
	Punct:   "punctuation",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Position locates a token in the source text. Line and Column are 1-based.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexeme.
type Token struct {
	Kind Kind
	Text string
	Pos  Position
}

// Is reports whether the token has the given kind and literal text.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case Newline:
		return "newline"
	default:
		return fmt.Sprintf("%q", t.Text)
	}
}

// Rule order matters: the first pattern that matches at the current offset
// wins, so longer fixed spellings come before their prefixes.
var quipperLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "Newline", Pattern: `\n`},
	{Name: "Float", Pattern: `-?\d+(?:\.\d+)?e-?\d\d\b`},
	{Name: "Int", Pattern: `[-+]?\d+`},
	{Name: "String", Pattern: `"[^"\n]*"`},
	{Name: "Opener", Pattern: `(?:QGate|QRot|Comment|controls=)\[`},
	{Name: "Header", Pattern: `(?:Subroutine|Shape|Controllable):`},
	{Name: "Repeat", Pattern: `x\d+\b`},
	{Name: "Keyword", Pattern: `\b(?:Inputs|Outputs|Subroutine|QInit0|QInit1|nocontrol|with|shape|Qbit|Cbit|yes|no|classically)\b`},
	{Name: "Arrow", Pattern: `->`},
	{Name: "Punct", Pattern: `[\[\]():,*]`},
})

var symbolKinds = func() map[lexer.TokenType]Kind {
	kinds := map[string]Kind{
		"Newline": Newline,
		"Float":   Float,
		"Int":     Int,
		"String":  String,
		"Opener":  Opener,
		"Header":  Header,
		"Repeat":  Repeat,
		"Keyword": Keyword,
		"Arrow":   Arrow,
		"Punct":   Punct,
	}
	out := make(map[lexer.TokenType]Kind, len(kinds))
	for name, typ := range quipperLexer.Symbols() {
		if k, ok := kinds[name]; ok {
			out[typ] = k
		}
	}
	return out
}()

// Lex turns text into tokens. Horizontal whitespace is dropped, newlines are
// kept as statement separators and the slice always ends with an EOF token.
func Lex(text string, opts ...Option) ([]Token, error) {
	o := newOptions(opts)
	lex, err := quipperLexer.Lex(o.filename, strings.NewReader(text))
	if err != nil {
		return nil, convertLexError(err, o.filename)
	}
	var toks []Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, convertLexError(err, o.filename)
		}
		pos := convertPosition(tok.Pos, o.filename)
		if tok.EOF() {
			toks = append(toks, Token{Kind: EOF, Pos: pos})
			return toks, nil
		}
		kind, ok := symbolKinds[tok.Type]
		if !ok {
			continue // whitespace
		}
		toks = append(toks, Token{Kind: kind, Text: tok.Value, Pos: pos})
	}
}

func convertPosition(p lexer.Position, filename string) Position {
	if p.Filename != "" {
		filename = p.Filename
	}
	return Position{Filename: filename, Offset: p.Offset, Line: p.Line, Column: p.Column}
}

func convertLexError(err error, filename string) error {
	var lerr *lexer.Error
	if errors.As(err, &lerr) {
		return &LexError{Pos: convertPosition(lerr.Pos, filename), Msg: lerr.Msg}
	}
	return &LexError{Pos: Position{Filename: filename, Line: 1, Column: 1}, Msg: err.Error()}
}
