package cpp

import (
	"regexp"
	"strings"

	"github.com/gubarz/mdhl/internal/token"
)

// classHeaderRe matches a class, struct, union or enum definition whose
// opening brace is on the same line. Forward declarations never match.
var classHeaderRe = regexp.MustCompile(`^\s*(?:template\s*<.*>\s*)?(?:(?:typedef|export)\s+)?(?:class|struct|union|enum(?:\s+(?:class|struct))?)\b[^;{]*\{`)

// trackMembers walks the braces of a line, pushing one scope frame per
// opening brace and popping one per closing brace, and harvests plain
// identifiers found directly inside a class body.
func (p *Processor) trackMembers(line token.Line, text string) {
	header := classHeaderRe.MatchString(text)
	// On a header line nothing before the opening brace belongs to the body.
	harvest := !header

	for _, t := range line {
		if !isStructural(t) {
			continue
		}
		if harvest && p.inClassBody() && p.isMemberCandidate(t) {
			p.members.add(strings.TrimSpace(t.Content))
		}
		for _, r := range t.Content {
			switch r {
			case '{':
				p.scopes = append(p.scopes, header)
				header = false
				harvest = true
			case '}':
				if len(p.scopes) > 0 {
					p.scopes = p.scopes[:len(p.scopes)-1]
				}
			}
		}
	}
}

func (p *Processor) inClassBody() bool {
	return len(p.scopes) > 0 && p.scopes[len(p.scopes)-1]
}

func (p *Processor) isMemberCandidate(t token.Token) bool {
	if !t.Is(token.Plain) || t.IsBlank() {
		return false
	}
	name := strings.TrimSpace(t.Content)
	if !identifierRe.MatchString(name) {
		return false
	}
	return !p.classes.has(name) && !p.namespaces.has(name) && !p.macros.has(name)
}

// isStructural reports whether braces inside t are code rather than text.
func isStructural(t token.Token) bool {
	if t.Is(token.String) || t.Is(token.Char) || t.Is(token.Comment) || t.Is(token.Macro) {
		return false
	}
	return true
}
