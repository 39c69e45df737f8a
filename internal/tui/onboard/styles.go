package onboard

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Color palette (Catppuccin Mocha)
var (
	colorPrimary       = lipgloss.Color("#cba6f7") // Mauve
	colorText          = lipgloss.Color("#cdd6f4") // Text
	colorBase          = lipgloss.Color("#1e1e2e") // Base
	colorSubtext0      = lipgloss.Color("#a6adc8") // Subtext0
	colorSubtext1      = lipgloss.Color("#bac2de") // Subtext1
	colorSurface2      = lipgloss.Color("#585b70") // Surface2
	colorOverlay0      = lipgloss.Color("#6c7086") // Overlay0
	colorGreen         = lipgloss.Color("#a6e3a1") // Green
	colorRed           = lipgloss.Color("#f38ba8") // Red
	colorYellow        = lipgloss.Color("#f9e2af") // Yellow
	colorBorderFocused = lipgloss.Color("#b4befe") // Lavender
)

var (
	styleModalContainer = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorderFocused).
				Background(colorBase).
				Padding(1, 2)

	styleModalTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true).
			Align(lipgloss.Center)

	styleLabel    = lipgloss.NewStyle().Foreground(colorSubtext0)
	styleError    = lipgloss.NewStyle().Foreground(colorRed)
	styleNotice   = lipgloss.NewStyle().Foreground(colorYellow)
	styleSelected = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	styleItem     = lipgloss.NewStyle().Foreground(colorText)
	styleItemHint = lipgloss.NewStyle().Foreground(colorOverlay0)
)

// Step indicator styles, one per status.
var (
	styleStepValid   = lipgloss.NewStyle().Foreground(colorGreen)
	styleStepInvalid = lipgloss.NewStyle().Foreground(colorRed)
	styleStepPending = lipgloss.NewStyle().Foreground(colorOverlay0)
	styleStepCurrent = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Underline(true)
)

// Hint bar styles
var (
	styleHintKey = lipgloss.NewStyle().
			Foreground(colorSubtext1).
			Bold(true)

	styleHintDesc = lipgloss.NewStyle().
			Foreground(colorSubtext0)

	styleHintSeparator = lipgloss.NewStyle().
				Foreground(colorSurface2)
)

// renderHintBar renders key-description pairs as "key desc • key desc".
func renderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	var b strings.Builder
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(" " + styleHintSeparator.Render("•") + " ")
		}
		b.WriteString(styleHintKey.Render(pairs[i]) + " " + styleHintDesc.Render(pairs[i+1]))
	}
	return b.String()
}
