package onboard

import (
	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/secconsole/internal/wizard"
)

// Panel is the UI of one wizard step. Panels never hold wizard state of
// their own beyond input widgets: they read shared data and report
// validity through the handle.
type Panel interface {
	// Init is called each time the step becomes current.
	Init(h wizard.Handle) tea.Cmd
	Update(msg tea.Msg, h wizard.Handle) tea.Cmd
	View() string
	SetSize(width, height int)
}

// finishMsg is sent by the review panel once the user confirms.
type finishMsg struct{}

// DescriptionEditedMsg carries the description written in $EDITOR.
type DescriptionEditedMsg struct {
	Content string
}

// newPanel resolves the panel for a step from its kind. restored is the
// draft data the wizard was rehydrated from, if any.
func newPanel(step wizard.Step, index int, restored wizard.Data) Panel {
	switch step.Kind {
	case wizard.KindInput:
		return NewNamePanel(index)
	case wizard.KindSelect:
		return NewKindPanel(index)
	default:
		return NewReviewPanel(index, restored)
	}
}

// Steps returns the onboarding steps in order.
func Steps() []wizard.Step {
	return []wizard.Step{
		{ID: "name", Title: "Name the Source", Kind: wizard.KindInput},
		{ID: "kind", Title: "Select Source Type", Kind: wizard.KindSelect},
		{ID: "review", Title: "Review", Kind: wizard.KindReview},
	}
}
