package onboard

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/secconsole/internal/wizard"
)

// KindPanel selects the source type from SourceKinds.
type KindPanel struct {
	index  int
	cursor int
	width  int
	height int
}

// NewKindPanel creates the type selector for step index.
func NewKindPanel(index int) *KindPanel {
	return &KindPanel{index: index, width: 60, height: 20}
}

// Init moves the cursor to the kind already chosen, if any.
func (p *KindPanel) Init(h wizard.Handle) tea.Cmd {
	if id, ok := h.SharedData()[KeyKind].(string); ok {
		for i, k := range SourceKinds {
			if k.ID == id {
				p.cursor = i
				h.SetStepStatus(p.index, wizard.StatusValid)
				break
			}
		}
	}
	return nil
}

// Update handles list navigation and selection.
func (p *KindPanel) Update(msg tea.Msg, h wizard.Handle) tea.Cmd {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}

	switch key.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(SourceKinds)-1 {
			p.cursor++
		}
	case "home", "g":
		p.cursor = 0
	case "end", "G":
		p.cursor = len(SourceKinds) - 1
	case "space", " ":
		p.choose(h)
	case "enter":
		p.choose(h)
		_ = h.GoNext()
	}
	return nil
}

func (p *KindPanel) choose(h wizard.Handle) {
	h.SetSharedData(wizard.Data{KeyKind: SourceKinds[p.cursor].ID})
	h.SetStepStatus(p.index, wizard.StatusValid)
}

// Selected returns the kind under the cursor.
func (p *KindPanel) Selected() SourceKind {
	return SourceKinds[p.cursor]
}

// SetSize updates the panel dimensions.
func (p *KindPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// View renders the kind list.
func (p *KindPanel) View() string {
	var b strings.Builder

	b.WriteString(styleLabel.Render("Source Type"))
	b.WriteString("\n\n")

	for i, k := range SourceKinds {
		if i == p.cursor {
			b.WriteString(styleSelected.Render("▸ " + k.Label))
		} else {
			b.WriteString(styleItem.Render("  " + k.Label))
		}
		b.WriteString("  ")
		b.WriteString(styleItemHint.Render(k.Hint))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(renderHintBar(
		"↑↓", "navigate",
		"enter", "select",
		"esc", "back",
	))
	return b.String()
}
