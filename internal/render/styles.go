package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/mdhl/internal/config"
	"github.com/gubarz/mdhl/internal/token"
)

// styledTags lists every type tag that gets a terminal color
var styledTags = []string{
	token.Plain,
	token.Keyword,
	token.ClassName,
	token.Function,
	token.Boolean,
	token.Number,
	token.String,
	token.Char,
	token.Comment,
	token.Operator,
	token.Punctuation,
	token.Macro,
	token.NamespaceName,
	token.MemberVariable,
	token.MacroName,
	token.DirectiveKeyword,
	token.DefinedKeyword,
}

// StyleManager encapsulates the terminal styles for tokens and line markers
type StyleManager struct {
	// Token styles keyed by type tag
	Tokens map[string]lipgloss.Style

	// Gutter styles
	LineNumber lipgloss.Style
	Marker     lipgloss.Style

	// Line backgrounds from fence metadata
	Added       lipgloss.Style
	Removed     lipgloss.Style
	Modified    lipgloss.Style
	Highlighted lipgloss.Style
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	s := &StyleManager{Tokens: make(map[string]lipgloss.Style, len(styledTags))}
	for _, tag := range styledTags {
		s.Tokens[tag] = lipgloss.NewStyle()
	}
	s.Tokens[token.Keyword] = lipgloss.NewStyle().Bold(true)
	s.Tokens[token.Comment] = lipgloss.NewStyle().Italic(true)
	s.LineNumber = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	s.Marker = lipgloss.NewStyle().Bold(true)
	s.Added = lipgloss.NewStyle().Background(lipgloss.Color("22"))
	s.Removed = lipgloss.NewStyle().Background(lipgloss.Color("52"))
	s.Modified = lipgloss.NewStyle().Background(lipgloss.Color("58"))
	s.Highlighted = lipgloss.NewStyle().Background(lipgloss.Color("237"))
	return s
}

// LoadFromConfig updates styles based on configuration
func (s *StyleManager) LoadFromConfig() {
	for _, tag := range styledTags {
		style := lipgloss.NewStyle().Foreground(parseANSIColor(config.GetColor(tag)))
		switch tag {
		case token.Keyword, token.DirectiveKeyword:
			style = style.Bold(true)
		case token.Comment:
			style = style.Italic(true)
		}
		s.Tokens[tag] = style
	}

	s.LineNumber = lipgloss.NewStyle().Foreground(parseANSIColor(config.GetColor("line-number")))
	s.Added = lipgloss.NewStyle().Background(parseANSIColor(config.GetColor("added")))
	s.Removed = lipgloss.NewStyle().Background(parseANSIColor(config.GetColor("removed")))
	s.Modified = lipgloss.NewStyle().Background(parseANSIColor(config.GetColor("modified")))
	s.Highlighted = lipgloss.NewStyle().Background(parseANSIColor(config.GetColor("highlighted")))
}

// TokenStyle returns the style for a token. The most specific tag wins,
// which is the last styled tag in the token's type list. Tokens of
// inactive preprocessor branches render faint.
func (s *StyleManager) TokenStyle(t token.Token) lipgloss.Style {
	style := lipgloss.NewStyle()
	for i := len(t.Types) - 1; i >= 0; i-- {
		if st, ok := s.Tokens[t.Types[i]]; ok {
			style = st
			break
		}
	}
	if t.Is(token.Undefined) {
		style = style.Faint(true)
	}
	return style
}

// LineStyle returns the background style for a marked line
func (s *StyleManager) LineStyle(m Marker) (lipgloss.Style, bool) {
	switch m {
	case MarkerAdded:
		return s.Added, true
	case MarkerRemoved:
		return s.Removed, true
	case MarkerModified:
		return s.Modified, true
	case MarkerHighlighted:
		return s.Highlighted, true
	}
	return lipgloss.Style{}, false
}

// parseANSIColor converts ANSI color codes to lipgloss colors
func parseANSIColor(code string) lipgloss.Color {
	ansiToLipgloss := map[string]string{
		"30": "0", "31": "1", "32": "2", "33": "3",
		"34": "4", "35": "5", "36": "6", "37": "7",
		"90": "8", "91": "9", "92": "10", "93": "11",
		"94": "12", "95": "13", "96": "14", "97": "15",
	}
	if mapped, ok := ansiToLipgloss[code]; ok {
		return lipgloss.Color(mapped)
	}
	return lipgloss.Color(code)
}
