// Package cpp re-classifies a lexed C++ listing using line-oriented
// heuristics: preprocessor conditional state, namespace and class
// registries grown while scanning, and member-variable detection by brace
// scope.
//
// All state belongs to one Processor, which covers exactly one code block.
// Lines must be fed in document order because every registry is cumulative.
package cpp

import (
	"log/slog"

	"github.com/gubarz/mdhl/internal/token"
)

// Processor holds the registries and stacks of one code block.
type Processor struct {
	logger *slog.Logger

	namespaces *nameSet
	classes    *nameSet
	macros     *nameSet
	members    *nameSet

	frames  []condFrame
	defined bool
	scopes  []bool

	lineNo int
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger used for malformed preprocessor nesting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMacros predefines macro names, as -D flags would.
func WithMacros(names ...string) Option {
	return func(p *Processor) {
		for _, name := range names {
			p.macros.add(name)
		}
	}
}

// WithNamespaces seeds extra namespace names.
func WithNamespaces(names ...string) Option {
	return func(p *Processor) {
		for _, name := range names {
			p.namespaces.add(name)
		}
	}
}

// WithClasses seeds extra type names.
func WithClasses(names ...string) Option {
	return func(p *Processor) {
		for _, name := range names {
			p.classes.add(name)
		}
	}
}

// NewProcessor creates a Processor with fresh, seeded registries.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		logger:     slog.Default(),
		namespaces: newNameSet(seedNamespaces...),
		classes:    newNameSet(seedClasses...),
		macros:     newNameSet(),
		members:    newNameSet(),
		defined:    true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs a fresh Processor over one code block.
func Process(lines []token.Line, opts ...Option) []token.Line {
	return NewProcessor(opts...).Process(lines)
}

// Process re-tags lines in order and returns rewritten copies. The input is
// not modified.
func (p *Processor) Process(lines []token.Line) []token.Line {
	out := make([]token.Line, len(lines))
	for i, line := range lines {
		out[i] = p.ProcessLine(line)
	}
	p.logger.Debug("processed C++ block",
		"lines", len(lines),
		"namespaces", p.namespaces.len(),
		"classes", p.classes.len(),
		"macros", p.macros.len(),
		"members", p.members.len(),
		"open_conditionals", len(p.frames))
	return out
}

// ProcessLine feeds the next line of the block and returns its re-tagged
// copy.
func (p *Processor) ProcessLine(line token.Line) token.Line {
	p.lineNo++
	out := line.Clone()
	text := token.Flatten(out)

	p.collectNamespaces(text)
	p.collectClasses(out, text)
	p.trackMembers(out, text)
	st := p.preprocess(text)

	p.retag(out, p.defined || st.forceDefine)
	p.defined = st.isNextDefined
	return out
}

// Namespaces returns the known namespace names in registration order.
func (p *Processor) Namespaces() []string { return p.namespaces.names() }

// Classes returns the known type names in registration order.
func (p *Processor) Classes() []string { return p.classes.names() }

// Macros returns the defined macro names in registration order.
func (p *Processor) Macros() []string { return p.macros.names() }

// Members returns the harvested member-variable names.
func (p *Processor) Members() []string { return p.members.names() }

// Defined reports whether code following the last processed line is live.
func (p *Processor) Defined() bool { return p.defined }

// Depth returns the number of unclosed #if directives.
func (p *Processor) Depth() int { return len(p.frames) }
