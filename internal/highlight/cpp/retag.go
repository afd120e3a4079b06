package cpp

import (
	"strings"

	"github.com/gubarz/mdhl/internal/token"
)

// retag rewrites the types of a line in place using the current registries.
func (p *Processor) retag(line token.Line, defined bool) {
	skip := -1
tokens:
	for i := 0; i < len(line); i++ {
		if i == skip {
			continue
		}
		t := &line[i]

		switch {
		case isAccessor(*t):
			next := i + 1
			if next < len(line) && line[next].Is(token.Plain) && !line[next].IsBlank() {
				if tag := p.lookupMember(strings.TrimSpace(line[next].Content)); tag != "" {
					line[next].Retag(token.Prefix, tag)
					skip = next
				}
			}
		case isDirectiveHead(*t):
			p.retagDirective(line, i)
			break tokens
		case t.Is(token.Plain) || t.Is(token.Expression):
			if tag := p.lookup(strings.TrimSpace(t.Content)); tag != "" {
				t.Retag(token.Prefix, tag)
			}
		}
	}

	if !defined {
		for i := range line {
			line[i].Append(token.Undefined)
		}
	}
}

// lookupMember classifies the name following ::, . or ->. The identifier
// "type" is always a type so that Trait<T>::type reads as one.
func (p *Processor) lookupMember(name string) string {
	switch {
	case name == "type":
		return token.ClassName
	case p.namespaces.has(name):
		return token.NamespaceName
	case p.classes.has(name):
		return token.ClassName
	case p.members.has(name):
		return token.MemberVariable
	}
	return ""
}

func (p *Processor) lookup(name string) string {
	if !identifierRe.MatchString(name) {
		return ""
	}
	switch {
	case p.namespaces.has(name):
		return token.NamespaceName
	case p.classes.has(name):
		return token.ClassName
	case p.macros.has(name):
		return token.MacroName
	case p.members.has(name):
		return token.MemberVariable
	}
	return ""
}

// retagDirective assigns semantic roles to the tokens of a directive line
// starting at its head token.
func (p *Processor) retagDirective(line token.Line, head int) {
	name := directiveName(line[head].Content)
	line[head].Retag(token.Prefix, token.DirectiveKeyword)

	for i := head + 1; i < len(line); i++ {
		t := &line[i]
		if t.Is(token.String) || t.Is(token.Comment) || !identifierRe.MatchString(t.Content) {
			continue
		}
		switch name {
		case "if", "ifdef", "ifndef", "elif", "elifdef", "elifndef":
			if t.Content == "defined" {
				t.Retag(token.Prefix, token.DefinedKeyword)
			} else {
				t.Retag(token.Prefix, token.MacroName)
			}
		case "define", "undef":
			t.Retag(token.Prefix, token.MacroName)
			return
		default:
			return
		}
	}
}

func isAccessor(t token.Token) bool {
	if !t.Is(token.Punctuation) && !t.Is(token.Operator) {
		return false
	}
	switch t.Content {
	case "::", ".", "->":
		return true
	}
	return false
}

func isDirectiveHead(t token.Token) bool {
	return t.Is(token.Directive) || t.Is(token.DirectiveKeyword)
}

// directiveName extracts "ifdef" from "#  ifdef".
func directiveName(head string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(head), "#"))
}
