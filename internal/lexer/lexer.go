// Package lexer turns source text into the line-split token stream consumed
// by the language post-processors, using chroma as the generic tokenizer.
package lexer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/gubarz/mdhl/internal/token"
)

var (
	directiveLineRe = regexp.MustCompile(`^(\s*)(#\s*[A-Za-z_]\w*)(.*)$`)
	directiveTailRe = regexp.MustCompile(`\s+|//.*|/\*.*?\*/|"(?:[^"\\]|\\.)*"|[A-Za-z_]\w*|\d[\w.']*|::|->|&&|\|\||[=!<>]=|.`)
	includePathRe   = regexp.MustCompile(`^(\s*)(<[^>]*>|"[^"]*")(.*)$`)
	identStartRe    = regexp.MustCompile(`^[A-Za-z_]`)
)

// Tokenize lexes source with the chroma lexer registered for lang and
// returns one Line per source line. Unknown languages fall back to plain
// text.
func Tokenize(lang, source string) ([]token.Line, error) {
	l := lexers.Get(lang)
	if l == nil {
		l = lexers.Fallback
	}

	source = strings.TrimRight(strings.ReplaceAll(source, "\r\n", "\n"), "\n")
	it, err := l.Tokenise(nil, source)
	if err != nil {
		return nil, fmt.Errorf("tokenize %s: %w", lang, err)
	}

	raw := splitRaw(it.Tokens())
	want := strings.Count(source, "\n") + 1
	for len(raw) < want {
		raw = append(raw, nil)
	}
	raw = raw[:want]

	lines := make([]token.Line, len(raw))
	for i, r := range raw {
		lines[i] = convertLine(r)
	}
	return lines, nil
}

// splitRaw splits chroma tokens on embedded newlines.
func splitRaw(tokens []chroma.Token) [][]chroma.Token {
	lines := [][]chroma.Token{nil}
	for _, t := range tokens {
		parts := strings.Split(t.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part != "" {
				lines[len(lines)-1] = append(lines[len(lines)-1], chroma.Token{Type: t.Type, Value: part})
			}
		}
	}
	return lines
}

func convertLine(raw []chroma.Token) token.Line {
	var text strings.Builder
	for _, t := range raw {
		text.WriteString(t.Value)
	}
	if isDirectiveLine(raw) {
		if line, ok := scanDirective(text.String()); ok {
			return line
		}
	}

	line := make(token.Line, 0, len(raw))
	for _, t := range raw {
		types := classify(t.Type)
		if types[0] == token.Plain && strings.Contains(t.Value, "::") {
			line = append(line, splitScoped(t.Value)...)
			continue
		}
		line = append(line, token.Token{Content: t.Value, Types: types})
	}
	return mergeOperators(line)
}

// isDirectiveLine reports whether the first visible token of a line is
// preprocessor text. Lines inside "#if 0" regions arrive as plain comments.
func isDirectiveLine(raw []chroma.Token) bool {
	for _, t := range raw {
		if strings.TrimSpace(t.Value) == "" {
			continue
		}
		switch t.Type {
		case chroma.CommentPreproc, chroma.CommentPreprocFile, chroma.Comment:
			return strings.HasPrefix(strings.TrimSpace(t.Value), "#")
		}
		return false
	}
	return false
}

// scanDirective splits a preprocessor line into head, names and
// punctuation.
func scanDirective(text string) (token.Line, bool) {
	m := directiveLineRe.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}

	var line token.Line
	if m[1] != "" {
		line = append(line, token.New(m[1], token.Plain))
	}
	line = append(line, token.New(m[2], token.Macro, token.Property, token.Directive))

	tail := m[3]
	name := strings.TrimSpace(strings.TrimPrefix(m[2], "#"))
	if name == "include" || name == "import" {
		if inc := includePathRe.FindStringSubmatch(tail); inc != nil {
			if inc[1] != "" {
				line = append(line, token.New(inc[1], token.Macro, token.Property))
			}
			line = append(line, token.New(inc[2], token.Macro, token.Property, token.String))
			tail = inc[3]
		}
	}

	for _, part := range directiveTailRe.FindAllString(tail, -1) {
		line = append(line, classifyDirectivePart(part))
	}
	return line, true
}

func classifyDirectivePart(part string) token.Token {
	switch {
	case strings.TrimSpace(part) == "":
		return token.New(part, token.Macro, token.Property)
	case strings.HasPrefix(part, "//"), strings.HasPrefix(part, "/*"):
		return token.New(part, token.Comment)
	case strings.HasPrefix(part, `"`):
		return token.New(part, token.Macro, token.Property, token.String)
	case identStartRe.MatchString(part):
		return token.New(part, token.Macro, token.Property, token.Expression)
	case part[0] >= '0' && part[0] <= '9':
		return token.New(part, token.Macro, token.Property, token.Number)
	default:
		return token.New(part, token.Macro, token.Property, token.Punctuation)
	}
}

// classify maps a chroma token type onto the shared type tags.
func classify(tt chroma.TokenType) []string {
	switch {
	case tt == chroma.NameClass:
		return []string{token.ClassName}
	case tt == chroma.NameFunction || tt == chroma.NameFunctionMagic:
		return []string{token.Function}
	case tt == chroma.KeywordConstant:
		return []string{token.Boolean}
	case tt.InCategory(chroma.Keyword), tt == chroma.NameBuiltin:
		return []string{token.Keyword}
	case tt == chroma.LiteralStringChar:
		return []string{token.Char}
	case tt.InSubCategory(chroma.LiteralString):
		return []string{token.String}
	case tt.InSubCategory(chroma.LiteralNumber):
		return []string{token.Number}
	case tt == chroma.CommentPreproc || tt == chroma.CommentPreprocFile:
		return []string{token.Macro, token.Property}
	case tt.InCategory(chroma.Comment):
		return []string{token.Comment}
	case tt.InCategory(chroma.Operator):
		return []string{token.Operator}
	case tt.InCategory(chroma.Punctuation):
		return []string{token.Punctuation}
	}
	return []string{token.Plain}
}

// splitScoped breaks "ns::Name" into separate name and operator tokens.
func splitScoped(s string) []token.Token {
	var out []token.Token
	for i, part := range strings.Split(s, "::") {
		if i > 0 {
			out = append(out, token.New("::", token.Operator))
		}
		if part != "" {
			out = append(out, token.New(part, token.Plain))
		}
	}
	return out
}

// mergeOperators joins ":" ":" and "-" ">" pairs the lexer emitted
// separately.
func mergeOperators(line token.Line) token.Line {
	out := line[:0]
	for i := 0; i < len(line); i++ {
		t := line[i]
		if i+1 < len(line) && isSymbol(t) && isSymbol(line[i+1]) {
			pair := t.Content + line[i+1].Content
			if pair == "::" || pair == "->" {
				out = append(out, token.New(pair, token.Operator))
				i++
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

func isSymbol(t token.Token) bool {
	return t.Is(token.Operator) || t.Is(token.Punctuation)
}
