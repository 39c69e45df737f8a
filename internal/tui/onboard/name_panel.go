package onboard

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/gosimple/slug"
	"github.com/mark3labs/secconsole/internal/wizard"
)

const maxNameLen = 64

// NamePanel collects the display name of the source.
type NamePanel struct {
	index int
	input textinput.Model
	err   string
	width int
}

// NewNamePanel creates the name input for step index.
func NewNamePanel(index int) *NamePanel {
	input := textinput.New()
	input.Placeholder = "e.g. Production CloudTrail"
	input.Prompt = ""
	input.CharLimit = maxNameLen * 2
	input.SetStyles(textinput.Styles{
		Focused: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(colorText),
			Placeholder: lipgloss.NewStyle().Foreground(colorSubtext0),
			Prompt:      lipgloss.NewStyle().Foreground(colorBorderFocused),
		},
		Blurred: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(colorSubtext0),
			Placeholder: lipgloss.NewStyle().Foreground(colorSubtext0),
			Prompt:      lipgloss.NewStyle().Foreground(colorOverlay0),
		},
		Cursor: textinput.CursorStyle{
			Color: colorPrimary,
			Shape: tea.CursorBar,
			Blink: true,
		},
	})
	input.SetWidth(50)

	return &NamePanel{index: index, input: input, width: 60}
}

// Init restores the name from shared data and focuses the input.
func (p *NamePanel) Init(h wizard.Handle) tea.Cmd {
	if name, ok := h.SharedData()[KeyName].(string); ok && name != p.input.Value() {
		p.input.SetValue(name)
		p.input.CursorEnd()
	}
	if p.input.Value() != "" {
		p.commit(h)
	}
	return tea.Batch(p.input.Focus(), textinput.Blink)
}

// Update handles typing and enter.
func (p *NamePanel) Update(msg tea.Msg, h wizard.Handle) tea.Cmd {
	if key, ok := msg.(tea.KeyPressMsg); ok && key.String() == "enter" {
		p.commit(h)
		if err := h.GoNext(); err != nil {
			if p.err == "" {
				p.err = "Enter a name to continue"
			}
		}
		return nil
	}

	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.commit(h)
	}
	return cmd
}

// commit validates the input and publishes it to the wizard.
func (p *NamePanel) commit(h wizard.Handle) {
	name := strings.TrimSpace(p.input.Value())
	status, msg := validateName(name)
	p.err = msg

	h.SetSharedData(wizard.Data{
		KeyName: name,
		KeyID:   slug.Make(name),
	})
	h.SetStepStatus(p.index, status)
}

// validateName returns the step status for name and a message when it is
// not valid.
func validateName(name string) (wizard.Status, string) {
	switch {
	case name == "":
		return wizard.StatusPending, ""
	case len(name) > maxNameLen:
		return wizard.StatusInvalid, "Name too long (max 64 characters)"
	case slug.Make(name) == "":
		return wizard.StatusInvalid, "Name needs at least one letter or digit"
	}
	return wizard.StatusValid, ""
}

// Value returns the raw input.
func (p *NamePanel) Value() string {
	return p.input.Value()
}

// SetSize updates the input width.
func (p *NamePanel) SetSize(width, height int) {
	p.width = width
	if width > 12 {
		p.input.SetWidth(width - 10)
	}
}

// View renders the name panel.
func (p *NamePanel) View() string {
	var b strings.Builder

	b.WriteString(styleLabel.Render("Source Name"))
	b.WriteString("\n")
	b.WriteString(p.input.View())
	b.WriteString("\n")

	if p.err != "" {
		b.WriteString(styleError.Render("✗ " + p.err))
		b.WriteString("\n")
	} else if id := slug.Make(p.input.Value()); id != "" {
		b.WriteString(styleItemHint.Render("id: " + id))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(renderHintBar(
		"enter", "next",
		"esc", "cancel",
	))
	return b.String()
}
