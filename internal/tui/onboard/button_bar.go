package onboard

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Enabled
	ButtonDisabled                    // Grayed out, the guard refuses the action
	ButtonFocused                     // Highlighted
)

// Button represents a single button in the button bar.
type Button struct {
	Label string
	State ButtonState
}

// ButtonBar renders a row of buttons centered in its width.
type ButtonBar struct {
	buttons []Button
	width   int
}

// NewButtonBar creates a new button bar with the given buttons.
func NewButtonBar(buttons []Button) *ButtonBar {
	return &ButtonBar{
		buttons: buttons,
		width:   60,
	}
}

// SetWidth updates the width for the button bar.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

// Buttons returns the buttons in display order.
func (b *ButtonBar) Buttons() []Button {
	return b.buttons
}

var (
	styleButtonNormal = lipgloss.NewStyle().
				Foreground(colorText).
				Background(lipgloss.Color("#313244")).
				Padding(0, 2).
				MarginLeft(1).
				MarginRight(1)

	styleButtonDisabled = lipgloss.NewStyle().
				Foreground(colorOverlay0).
				Background(lipgloss.Color("#181825")).
				Padding(0, 2).
				MarginLeft(1).
				MarginRight(1)

	styleButtonFocused = lipgloss.NewStyle().
				Foreground(colorBase).
				Background(colorBorderFocused).
				Bold(true).
				Padding(0, 2).
				MarginLeft(1).
				MarginRight(1)
)

// Render renders the button bar.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(b.buttons))
	for _, btn := range b.buttons {
		switch btn.State {
		case ButtonDisabled:
			rendered = append(rendered, styleButtonDisabled.Render(btn.Label))
		case ButtonFocused:
			rendered = append(rendered, styleButtonFocused.Render(btn.Label))
		default:
			rendered = append(rendered, styleButtonNormal.Render(btn.Label))
		}
	}

	return lipgloss.Place(b.width, 1, lipgloss.Center, lipgloss.Center, strings.Join(rendered, ""))
}

// navButtons builds the Back/Next pair for a step. The first step offers
// Cancel instead of Back and the last step says Finish.
func navButtons(first, last, nextEnabled bool) []Button {
	back := Button{Label: "← Back", State: ButtonNormal}
	if first {
		back.Label = "Cancel"
	}

	next := Button{Label: "Next →", State: ButtonFocused}
	if last {
		next.Label = "Finish"
	}
	if !nextEnabled {
		next.State = ButtonDisabled
	}

	return []Button{back, next}
}
