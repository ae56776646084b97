// Package lexer tokenizes Athena DSL source text. The grammar is
// line-based: one directive per logical line, hyphenated keywords,
// `#` line comments, and `/* ... */` block comments that may span lines
// and appear anywhere whitespace may (see spec §4.2).
package lexer

import "github.com/athena-lang/athena/internal/diag"

// Kind classifies a Token.
type Kind int

const (
	EOF Kind = iota
	Newline
	Word     // identifiers, hyphenated keywords, and bare enum values
	Number   // digit runs, optionally with one '.' and/or trailing unit letters
	String   // "quoted string" with escapes resolved
	Template // {{NAME}}
	Invalid
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Newline:
		return "newline"
	case Word:
		return "word"
	case Number:
		return "number"
	case String:
		return "string"
	case Template:
		return "template"
	default:
		return "invalid"
	}
}

// Token is one lexical unit with its source span.
type Token struct {
	Kind  Kind
	Value string // decoded value for String/Template; raw text otherwise
	Span  diag.Span
}
