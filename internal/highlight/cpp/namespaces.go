package cpp

import (
	"regexp"
	"strings"
)

const qualifiedName = `(?:::\s*)?[A-Za-z_]\w*(?:\s*::\s*[A-Za-z_]\w*)*`

var (
	namespaceBlockRe = regexp.MustCompile(`^\s*(?:inline\s+)?namespace\s+(` + qualifiedName + `)\s*\{`)
	usingNamespaceRe = regexp.MustCompile(`^\s*using\s+namespace\s+(` + qualifiedName + `)\s*;`)
	namespaceAliasRe = regexp.MustCompile(`^\s*namespace\s+([A-Za-z_]\w*)\s*=\s*(` + qualifiedName + `)\s*;`)
	usingAliasRe     = regexp.MustCompile(`^\s*using\s+([A-Za-z_]\w*\s*=\s*[^;]+);`)
	qualifierRe      = regexp.MustCompile(`([A-Za-z_]\w*)\s*::`)
)

// namespaceRule maps a matched line to the namespace names it declares.
type namespaceRule struct {
	re      *regexp.Regexp
	collect func(m []string) []string
}

// namespaceRules are evaluated top to bottom, first match wins.
var namespaceRules = []namespaceRule{
	{namespaceBlockRe, func(m []string) []string { return splitScope(m[1]) }},
	{usingNamespaceRe, func(m []string) []string { return splitScope(m[1]) }},
	{namespaceAliasRe, func(m []string) []string { return append([]string{m[1]}, splitScope(m[2])...) }},
	{usingAliasRe, func(m []string) []string { return aliasQualifiers(m[1]) }},
}

// collectNamespaces registers every namespace name declared on text.
func (p *Processor) collectNamespaces(text string) {
	for _, rule := range namespaceRules {
		m := rule.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		for _, name := range rule.collect(m) {
			p.namespaces.add(name)
		}
		return
	}
}

// splitScope splits A::B::C into its identifiers.
func splitScope(qualified string) []string {
	var names []string
	for _, part := range strings.Split(qualified, "::") {
		part = strings.TrimSpace(part)
		if part == "" || part == "namespace" || part == "using" || part == "inline" {
			continue
		}
		names = append(names, part)
	}
	return names
}

// aliasQualifiers returns the lowercase scope qualifiers used in the type
// expression of a using-alias. Qualifiers starting with an uppercase
// letter are nested classes, not namespaces.
func aliasQualifiers(alias string) []string {
	_, rhs, ok := strings.Cut(alias, "=")
	if !ok {
		return nil
	}
	var names []string
	for _, m := range qualifierRe.FindAllStringSubmatch(rhs, -1) {
		if isLowercase(m[1]) {
			names = append(names, m[1])
		}
	}
	return names
}

func isLowercase(s string) bool {
	return s == strings.ToLower(s)
}
