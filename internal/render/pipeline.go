package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/gubarz/mdhl/internal/highlight"
	"github.com/gubarz/mdhl/internal/lexer"
	"github.com/gubarz/mdhl/internal/parser"
	"github.com/gubarz/mdhl/internal/token"
)

// Pipeline lexes, re-tags and renders code blocks
type Pipeline struct {
	Renderer    Renderer
	Highlight   highlight.Options
	LineNumbers bool
}

// Tokens returns the re-tagged lines of a block
func (p *Pipeline) Tokens(b *parser.CodeBlock) ([]token.Line, error) {
	lines, err := lexer.Tokenize(b.Lang, b.Content)
	if err != nil {
		return nil, fmt.Errorf("%s:%d: %w", b.File, b.StartLine, err)
	}
	return highlight.Process(b.Lang, lines, p.Highlight), nil
}

// RenderBlock writes one rendered block to w
func (p *Pipeline) RenderBlock(w io.Writer, b *parser.CodeBlock) error {
	lines, err := p.Tokens(b)
	if err != nil {
		return err
	}
	return p.Renderer.Render(w, lines, Options{
		Lang:        b.Lang,
		LineNumbers: p.LineNumbers,
		Meta:        b.Meta,
	})
}

// RenderString returns one rendered block as a string
func (p *Pipeline) RenderString(b *parser.CodeBlock) (string, error) {
	var sb strings.Builder
	if err := p.RenderBlock(&sb, b); err != nil {
		return "", err
	}
	return sb.String(), nil
}
