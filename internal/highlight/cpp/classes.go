package cpp

import (
	"regexp"
	"strings"

	"github.com/gubarz/mdhl/internal/token"
)

var (
	aliasSeparatorRe = regexp.MustCompile(`::|[<>,=\s()\[\]]+`)
	numericRe        = regexp.MustCompile(`^[0-9]`)
)

// collectClasses registers type names found on a line: anything the lexer
// already tagged as a class, plus the non-lowercase identifiers of a
// using-alias declaration.
func (p *Processor) collectClasses(line token.Line, text string) {
	for _, t := range line {
		if t.Is(token.ClassName) {
			p.classes.add(strings.TrimSpace(t.Content))
		}
	}

	m := usingAliasRe.FindStringSubmatch(text)
	if m == nil {
		return
	}
	for _, name := range aliasTypeNames(m[1]) {
		if !isLowercase(name) {
			p.classes.add(name)
		}
	}
}

// aliasTypeNames splits "Alias = ns::Type<Arg *, 4>" into candidate names.
func aliasTypeNames(alias string) []string {
	var names []string
	for _, part := range aliasSeparatorRe.Split(alias, -1) {
		part = strings.Trim(part, "*&")
		if part == "" || builtinKeywords[part] || numericRe.MatchString(part) {
			continue
		}
		names = append(names, part)
	}
	return names
}
