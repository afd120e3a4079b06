// Package highlight selects the language post-processor for a code block.
package highlight

import (
	"log/slog"
	"strings"

	"github.com/gubarz/mdhl/internal/highlight/cpp"
	"github.com/gubarz/mdhl/internal/token"
)

// Options carries the per-language settings applied to every block.
type Options struct {
	Logger *slog.Logger

	// C++ registries seeds
	Defines    []string
	Namespaces []string
	Classes    []string
}

// Processor re-tags the lines of one code block.
type Processor func(lines []token.Line, opts Options) []token.Line

var processors = map[string]Processor{}

// Register associates a post-processor with one or more language names.
func Register(p Processor, langs ...string) {
	for _, lang := range langs {
		processors[strings.ToLower(lang)] = p
	}
}

func init() {
	Register(processCPP, "cpp", "c++", "cc", "cxx", "hpp", "hh", "h++")
}

func processCPP(lines []token.Line, opts Options) []token.Line {
	return cpp.Process(lines,
		cpp.WithLogger(opts.Logger),
		cpp.WithMacros(opts.Defines...),
		cpp.WithNamespaces(opts.Namespaces...),
		cpp.WithClasses(opts.Classes...),
	)
}

// Supported reports whether lang has a post-processor.
func Supported(lang string) bool {
	_, ok := processors[strings.ToLower(lang)]
	return ok
}

// Process runs the post-processor for lang over one code block. Blocks in
// languages without a post-processor are returned as they are.
func Process(lang string, lines []token.Line, opts Options) []token.Line {
	p, ok := processors[strings.ToLower(lang)]
	if !ok {
		return lines
	}
	return p(lines, opts)
}
