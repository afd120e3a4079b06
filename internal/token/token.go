// Package token defines the classified token stream shared by the lexer,
// the language post-processors and the renderers.
package token

import (
	"slices"
	"strings"
)

// Type tags emitted by the lexer adapter.
const (
	Plain       = "plain"
	Keyword     = "keyword"
	ClassName   = "class-name"
	Function    = "function"
	Boolean     = "boolean"
	Number      = "number"
	String      = "string"
	Char        = "char"
	Comment     = "comment"
	Operator    = "operator"
	Punctuation = "punctuation"

	// Directive lines
	Macro      = "macro"
	Property   = "property"
	Directive  = "directive"
	Expression = "expression"
)

// Type tags emitted by the post-processors.
const (
	Prefix           = "token"
	NamespaceName    = "namespace-name"
	MemberVariable   = "member-variable"
	MacroName        = "macro-name"
	DirectiveKeyword = "directive-keyword"
	DefinedKeyword   = "defined-keyword"
	Undefined        = "undefined"
)

// Token is the minimal unit of classified text.
type Token struct {
	Content string
	Types   []string
}

// Line is one source line after lexing, without its newline token.
type Line []Token

// New creates a token with the given content and types.
func New(content string, types ...string) Token {
	return Token{Content: content, Types: types}
}

// Newline is the line boundary token.
func Newline() Token {
	return Token{Content: "\n", Types: []string{Plain}}
}

// Is reports whether the token carries type tag t.
func (t Token) Is(tag string) bool {
	return slices.Contains(t.Types, tag)
}

// IsNewline reports whether the token is a line boundary.
func (t Token) IsNewline() bool {
	return t.Content == "\n"
}

// IsBlank reports whether the content is empty or whitespace only.
func (t Token) IsBlank() bool {
	return strings.TrimSpace(t.Content) == ""
}

// Retag replaces the token's types.
func (t *Token) Retag(types ...string) {
	t.Types = types
}

// Append adds tag unless it is already present.
func (t *Token) Append(tag string) {
	if !t.Is(tag) {
		t.Types = append(t.Types, tag)
	}
}

// Clone returns a deep copy of the token.
func (t Token) Clone() Token {
	return Token{Content: t.Content, Types: slices.Clone(t.Types)}
}

// ClassList returns the space-joined class attribute used by renderers.
// The "token" prefix is emitted exactly once.
func (t Token) ClassList() string {
	parts := make([]string, 0, len(t.Types)+1)
	parts = append(parts, Prefix)
	for _, typ := range t.Types {
		if typ != Prefix {
			parts = append(parts, typ)
		}
	}
	return strings.Join(parts, " ")
}

// Flatten reconstitutes the raw text of a line from its tokens.
func Flatten(line Line) string {
	var b strings.Builder
	for _, t := range line {
		b.WriteString(t.Content)
	}
	return b.String()
}

// Clone returns a deep copy of the line.
func (l Line) Clone() Line {
	out := make(Line, len(l))
	for i, t := range l {
		out[i] = t.Clone()
	}
	return out
}

// SplitLines splits a flat token stream on newline tokens. A stream of n
// newline tokens always yields n+1 lines.
func SplitLines(tokens []Token) []Line {
	lines := []Line{{}}
	for _, t := range tokens {
		if t.IsNewline() {
			lines = append(lines, Line{})
			continue
		}
		lines[len(lines)-1] = append(lines[len(lines)-1], t)
	}
	return lines
}

// CloneLines deep-copies a sequence of lines.
func CloneLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	for i, l := range lines {
		out[i] = l.Clone()
	}
	return out
}
