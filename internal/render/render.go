// Package render writes re-tagged code blocks to the terminal or as HTML,
// applying the per-block fence metadata.
package render

import (
	"errors"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/gubarz/mdhl/internal/parser"
	"github.com/gubarz/mdhl/internal/token"
)

// ErrUnknownFormat is returned by New for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown render format")

// Supported format names
const (
	FormatANSI = "ansi"
	FormatHTML = "html"
)

// Marker is the diff-style annotation of one line
type Marker int

const (
	MarkerNone Marker = iota
	MarkerAdded
	MarkerRemoved
	MarkerModified
	MarkerHighlighted
)

// String returns the marker's class name
func (m Marker) String() string {
	switch m {
	case MarkerAdded:
		return "added"
	case MarkerRemoved:
		return "removed"
	case MarkerModified:
		return "modified"
	case MarkerHighlighted:
		return "highlighted"
	}
	return ""
}

// gutter returns the one-character terminal gutter symbol
func (m Marker) gutter() string {
	switch m {
	case MarkerAdded:
		return "+"
	case MarkerRemoved:
		return "-"
	case MarkerModified:
		return "~"
	case MarkerHighlighted:
		return ">"
	}
	return " "
}

// MarkerFor returns the marker of 1-based line n. Added wins over removed,
// removed over modified, modified over highlighted.
func MarkerFor(meta parser.Meta, n int) Marker {
	switch {
	case meta.Added.Has(n):
		return MarkerAdded
	case meta.Removed.Has(n):
		return MarkerRemoved
	case meta.Modified.Has(n):
		return MarkerModified
	case meta.Highlighted.Has(n):
		return MarkerHighlighted
	}
	return MarkerNone
}

// Options controls how one block is rendered
type Options struct {
	Lang        string
	LineNumbers bool
	Meta        parser.Meta
}

// showLineNumbers resolves the block override against the default
func (o Options) showLineNumbers() bool {
	switch o.Meta.LineNumbers {
	case parser.LineNumbersEnabled:
		return true
	case parser.LineNumbersDisabled:
		return false
	}
	return o.LineNumbers
}

// Renderer writes the lines of one code block
type Renderer interface {
	Render(w io.Writer, lines []token.Line, opts Options) error
}

// New returns the renderer for a format name
func New(format string, styles *StyleManager) (Renderer, error) {
	switch strings.ToLower(format) {
	case FormatANSI, "":
		if styles == nil {
			styles = DefaultStyles()
		}
		return &Terminal{Styles: styles}, nil
	case FormatHTML:
		return HTML{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// ============================================================================
// Terminal
// ============================================================================

// Terminal renders lines with lipgloss styles
type Terminal struct {
	Styles *StyleManager
}

// Render writes the visible lines, each followed by a newline
func (r *Terminal) Render(w io.Writer, lines []token.Line, opts Options) error {
	width := len(strconv.Itoa(len(lines)))
	numbers := opts.showLineNumbers()
	var b strings.Builder

	for i, line := range lines {
		n := i + 1
		if opts.Meta.Hidden.Has(n) {
			continue
		}
		marker := MarkerFor(opts.Meta, n)
		lineStyle, marked := r.Styles.LineStyle(marker)

		if numbers {
			b.WriteString(r.Styles.LineNumber.Render(fmt.Sprintf("%*d", width, n)))
			b.WriteByte(' ')
		}
		if hasMarkers(opts.Meta) {
			b.WriteString(r.Styles.Marker.Render(marker.gutter()))
			b.WriteByte(' ')
		}
		for _, t := range line {
			style := r.Styles.TokenStyle(t)
			if marked {
				style = style.Inherit(lineStyle)
			}
			b.WriteString(style.Render(t.Content))
		}
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// hasMarkers reports whether the gutter needs a marker column
func hasMarkers(meta parser.Meta) bool {
	return len(meta.Added) > 0 || len(meta.Removed) > 0 || len(meta.Modified) > 0
}

// ============================================================================
// HTML
// ============================================================================

// HTML renders lines as class-annotated spans, one div per line
type HTML struct{}

// Render writes a <pre> element holding the visible lines
func (HTML) Render(w io.Writer, lines []token.Line, opts Options) error {
	var b strings.Builder

	b.WriteString(`<pre class="code`)
	if opts.Lang != "" {
		b.WriteString(" language-")
		b.WriteString(html.EscapeString(opts.Lang))
	}
	b.WriteString(`"><code>`)

	numbers := opts.showLineNumbers()
	for i, line := range lines {
		n := i + 1
		if opts.Meta.Hidden.Has(n) {
			continue
		}
		b.WriteString(`<div class="line`)
		if m := MarkerFor(opts.Meta, n); m != MarkerNone {
			b.WriteByte(' ')
			b.WriteString(m.String())
		}
		fmt.Fprintf(&b, `" data-line="%d">`, n)
		if numbers {
			fmt.Fprintf(&b, `<span class="line-number">%d</span>`, n)
		}
		for _, t := range line {
			b.WriteString(`<span class="`)
			b.WriteString(html.EscapeString(t.ClassList()))
			b.WriteString(`">`)
			b.WriteString(html.EscapeString(t.Content))
			b.WriteString(`</span>`)
		}
		b.WriteString("</div>\n")
	}
	b.WriteString("</code></pre>\n")

	_, err := io.WriteString(w, b.String())
	return err
}
