package cpp

import (
	"regexp"
	"strings"

	"github.com/gubarz/mdhl/internal/token"
)

// A minimal stand-in for the chroma adapter so the pipeline can be tested
// on literal C++ text.

var (
	testDirectiveRe = regexp.MustCompile(`^(\s*)(#\s*[a-z]+)(.*)$`)
	testTokenRe     = regexp.MustCompile(`\s+|//.*|"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'|<[\w./]+>|[A-Za-z_]\w*|\d[\w.]*|::|->|.`)
	testIdentRe     = regexp.MustCompile(`^[A-Za-z_]`)
	testKeywords    = map[string]bool{
		"class": true, "struct": true, "enum": true, "union": true, "namespace": true,
		"using": true, "public": true, "private": true, "protected": true,
		"int": true, "void": true, "bool": true, "char": true, "auto": true,
		"const": true, "return": true, "this": true, "template": true,
		"typename": true, "static": true, "if": true, "else": true,
	}
)

func lexLines(lines ...string) []token.Line {
	out := make([]token.Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, lexLine(l))
	}
	return out
}

func lexLine(text string) token.Line {
	if m := testDirectiveRe.FindStringSubmatch(text); m != nil {
		var line token.Line
		if m[1] != "" {
			line = append(line, token.New(m[1], token.Plain))
		}
		line = append(line, token.New(m[2], token.Macro, token.Property, token.Directive))
		for _, part := range testTokenRe.FindAllString(m[3], -1) {
			switch {
			case strings.TrimSpace(part) == "":
				line = append(line, token.New(part, token.Macro, token.Property))
			case strings.HasPrefix(part, "<") && len(part) > 1, strings.HasPrefix(part, `"`):
				line = append(line, token.New(part, token.Macro, token.Property, token.String))
			case testIdentRe.MatchString(part):
				line = append(line, token.New(part, token.Macro, token.Property, token.Expression))
			default:
				line = append(line, token.New(part, token.Macro, token.Property, token.Punctuation))
			}
		}
		return line
	}

	parts := testTokenRe.FindAllString(text, -1)
	var line token.Line
	prevWord := ""
	for i, part := range parts {
		next := ""
		for _, p := range parts[i+1:] {
			if strings.TrimSpace(p) != "" {
				next = p
				break
			}
		}
		switch {
		case strings.TrimSpace(part) == "":
			line = append(line, token.New(part, token.Plain))
			continue
		case strings.HasPrefix(part, "//"):
			line = append(line, token.New(part, token.Comment))
		case strings.HasPrefix(part, `"`):
			line = append(line, token.New(part, token.String))
		case strings.HasPrefix(part, `'`):
			line = append(line, token.New(part, token.Char))
		case part[0] >= '0' && part[0] <= '9':
			line = append(line, token.New(part, token.Number))
		case testKeywords[part]:
			line = append(line, token.New(part, token.Keyword))
		case testIdentRe.MatchString(part):
			switch {
			case prevWord == "class" || prevWord == "struct" || prevWord == "enum" || prevWord == "union":
				line = append(line, token.New(part, token.ClassName))
			case next == "(":
				line = append(line, token.New(part, token.Function))
			default:
				line = append(line, token.New(part, token.Plain))
			}
		case part == "::" || part == "->" || strings.ContainsAny(part, "=+-*/&|<>!%"):
			line = append(line, token.New(part, token.Operator))
		case strings.HasPrefix(part, "<"):
			line = append(line, token.New(part, token.Operator))
		default:
			line = append(line, token.New(part, token.Punctuation))
		}
		prevWord = part
	}
	return line
}

// find returns the first token of line with the given content.
func find(line token.Line, content string) token.Token {
	for _, t := range line {
		if t.Content == content {
			return t
		}
	}
	return token.Token{}
}

func isUndefined(line token.Line) bool {
	if len(line) == 0 {
		return false
	}
	for _, t := range line {
		if !t.Is(token.Undefined) {
			return false
		}
	}
	return true
}
