// Package theme holds the console color palette shared by CLI output.
package theme

import (
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for terminal output.
type Theme struct {
	Name   string
	IsDark bool

	// Semantic colors
	Primary   string // hex, "#rrggbb"
	Secondary string

	// Foreground hierarchy (dim→bright)
	FgMuted string
	FgBase  string

	// Status colors
	Success string
	Warning string
	Error   string

	// Lazy-built styles
	styles     *Styles
	stylesOnce sync.Once
}

// Styles contains pre-built lipgloss styles for CLI output.
type Styles struct {
	HeaderTitle lipgloss.Style
	Key         lipgloss.Style
	Muted       lipgloss.Style
	Success     lipgloss.Style
}

// S returns the pre-built styles for this theme.
// Styles are lazily initialized on first call.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

// buildStyles constructs the pre-built styles from theme colors.
func (t *Theme) buildStyles() *Styles {
	return &Styles{
		HeaderTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)).
			Bold(true),
		Key:     lipgloss.NewStyle().Foreground(lipgloss.Color(t.Secondary)),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)),
	}
}
