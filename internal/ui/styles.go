package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/mdhl/internal/config"
)

// StyleManager encapsulates the browser chrome styles
type StyleManager struct {
	// List view styles
	Header   lipgloss.Style
	Lang     lipgloss.Style
	Path     lipgloss.Style
	Selected lipgloss.Style
	Cursor   lipgloss.Style
	Dim      lipgloss.Style
	Error    lipgloss.Style

	// Preview styles
	PreviewTitle  lipgloss.Style
	PreviewHeader lipgloss.Style
	PreviewDesc   lipgloss.Style

	// Chrome styles
	Divider lipgloss.Style

	// Colors for direct access
	SelectedBg lipgloss.Color
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		Header:        lipgloss.NewStyle().Bold(true),
		Lang:          lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
		Path:          lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Selected:      lipgloss.NewStyle().Background(lipgloss.Color("236")),
		Cursor:        lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		Dim:           lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error:         lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		PreviewTitle:  lipgloss.NewStyle().Bold(true).Underline(true),
		PreviewHeader: lipgloss.NewStyle().Bold(true),
		PreviewDesc:   lipgloss.NewStyle().Italic(true),
		Divider:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		SelectedBg:    lipgloss.Color("236"),
	}
}

// LoadFromConfig updates styles based on configuration
func (s *StyleManager) LoadFromConfig() {
	dim := lipgloss.Color(config.GetColor("line-number"))
	selectedBg := lipgloss.Color(config.GetColor("highlighted"))
	langColor := lipgloss.Color(config.GetColor("class-name"))

	s.Lang = lipgloss.NewStyle().Foreground(langColor)
	s.Dim = lipgloss.NewStyle().Foreground(dim)
	s.Divider = lipgloss.NewStyle().Foreground(dim)
	s.Selected = lipgloss.NewStyle().Background(selectedBg)
	s.SelectedBg = selectedBg
}

// WithSelection returns a copy of the given style with the selected background applied
func (s *StyleManager) WithSelection(style lipgloss.Style) lipgloss.Style {
	return style.Background(s.SelectedBg)
}

// Global style manager instance
var styles = DefaultStyles()

// RefreshStyles updates the global styles from config
func RefreshStyles() {
	styles.LoadFromConfig()
}
