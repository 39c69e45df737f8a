package onboard

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/x/ansi"
	"github.com/mark3labs/secconsole/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Plain output so rendered text can be matched.
	lipgloss.Writer.Profile = colorprofile.Ascii
}

func newTestModel(t *testing.T, opts ...wizard.Option) (*Model, *wizard.Controller) {
	t.Helper()
	c, err := wizard.New(Steps(), opts...)
	require.NoError(t, err)

	m := NewModel(c, nil)
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, c
}

func plain(s string) string {
	return ansi.Strip(s)
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func press(m *Model, code rune) tea.Cmd {
	_, cmd := m.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

func TestModel_CompletesOnboarding(t *testing.T) {
	m, c := newTestModel(t)

	typeText(m, "prod trail")
	require.Equal(t, wizard.StatusValid, c.StepStatus(0))
	require.Equal(t, "prod trail", c.SharedData()[KeyName])
	require.Equal(t, "prod-trail", c.SharedData()[KeyID])

	press(m, tea.KeyEnter)
	require.Equal(t, 1, c.CurrentIndex())
	require.Equal(t, wizard.StatusPending, c.StepStatus(1))

	press(m, tea.KeyDown)
	press(m, tea.KeyEnter)
	require.Equal(t, 2, c.CurrentIndex())
	require.Equal(t, "okta", c.SharedData()[KeyKind])

	cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd, "confirming the review should request finish")
	require.True(t, c.Complete())

	_, quit := m.Update(finishMsg{})
	require.NotNil(t, quit)
	assert.True(t, m.Finished())
	assert.False(t, m.Cancelled())

	src := m.Source()
	assert.Equal(t, Source{ID: "prod-trail", Name: "prod trail", Kind: "okta"}, src)
}

func TestModel_NextBlockedUntilValid(t *testing.T) {
	m, c := newTestModel(t)

	press(m, tea.KeyEnter)
	assert.Equal(t, 0, c.CurrentIndex())

	press(m, tea.KeyTab)
	assert.Equal(t, 0, c.CurrentIndex())
	assert.Contains(t, plain(m.Render()), "Complete this step first")

	typeText(m, "syslog edge")
	press(m, tea.KeyTab)
	assert.Equal(t, 1, c.CurrentIndex())
	assert.NotContains(t, plain(m.Render()), "Complete this step first")
}

func TestModel_InvalidNameMarksStep(t *testing.T) {
	m, c := newTestModel(t)

	typeText(m, "!!!")
	assert.Equal(t, wizard.StatusInvalid, c.StepStatus(0))
	assert.Contains(t, plain(m.Render()), "Name needs at least one letter or digit")

	press(m, tea.KeyEnter)
	assert.Equal(t, 0, c.CurrentIndex())
}

func TestModel_Esc(t *testing.T) {
	t.Run("first step cancels", func(t *testing.T) {
		m, _ := newTestModel(t)
		cmd := press(m, tea.KeyEscape)
		require.NotNil(t, cmd)
		assert.True(t, m.Cancelled())
	})

	t.Run("later step goes back", func(t *testing.T) {
		m, c := newTestModel(t)
		typeText(m, "okta")
		press(m, tea.KeyEnter)
		require.Equal(t, 1, c.CurrentIndex())

		press(m, tea.KeyEscape)
		assert.Equal(t, 0, c.CurrentIndex())
		assert.False(t, m.Cancelled())
		assert.Equal(t, "okta", m.panels[0].(*NamePanel).Value(), "input keeps its value")
	})
}

func TestModel_AltJump(t *testing.T) {
	alt := func(r rune) tea.KeyPressMsg {
		return tea.KeyPressMsg{Code: r, Mod: tea.ModAlt}
	}

	m, c := newTestModel(t)

	m.Update(alt('3'))
	assert.Equal(t, 0, c.CurrentIndex())
	assert.Contains(t, plain(m.Render()), "Complete the earlier steps first")

	m.Update(alt('9'))
	assert.Equal(t, 0, c.CurrentIndex())

	typeText(m, "gcp")
	press(m, tea.KeyEnter)
	press(m, tea.KeyEnter)
	require.Equal(t, 2, c.CurrentIndex())

	m.Update(alt('1'))
	assert.Equal(t, 0, c.CurrentIndex())

	m.Update(alt('3'))
	assert.Equal(t, 2, c.CurrentIndex())
}

func TestModel_AltJumpStrictIgnoresMissingSteps(t *testing.T) {
	m, c := newTestModel(t, wizard.WithStrictBounds())

	assert.NotPanics(t, func() { m.Update(tea.KeyPressMsg{Code: '7', Mod: tea.ModAlt}) })
	assert.Equal(t, 0, c.CurrentIndex())
}

func TestModel_FinishNeedsCompleteWizard(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(finishMsg{})
	assert.Nil(t, cmd)
	assert.False(t, m.Finished())
	assert.Contains(t, plain(m.Render()), "Some steps are not complete")
}

func TestModel_RenderButtons(t *testing.T) {
	m, c := newTestModel(t)

	out := plain(m.Render())
	assert.Contains(t, out, "Step 1 of 3: Name the Source")
	assert.Contains(t, out, "Cancel")
	assert.Contains(t, out, "Next →")

	typeText(m, "azure")
	press(m, tea.KeyEnter)
	press(m, tea.KeyEnter)
	require.Equal(t, 2, c.CurrentIndex())

	out = plain(m.Render())
	assert.Contains(t, out, "Step 3 of 3: Review")
	assert.Contains(t, out, "← Back")
	assert.Contains(t, out, "Finish")
	assert.Contains(t, out, "✓ 1 Name the Source")
}

func TestNavButtons(t *testing.T) {
	tests := []struct {
		name        string
		first, last bool
		next        bool
		wantBack    string
		wantNext    Button
	}{
		{"first step", true, false, true, "Cancel", Button{"Next →", ButtonFocused}},
		{"middle blocked", false, false, false, "← Back", Button{"Next →", ButtonDisabled}},
		{"last step", false, true, true, "← Back", Button{"Finish", ButtonFocused}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := navButtons(tt.first, tt.last, tt.next)
			require.Len(t, got, 2)
			assert.Equal(t, tt.wantBack, got[0].Label)
			assert.Equal(t, tt.wantNext, got[1])
		})
	}
}

func TestButtonBar_Render(t *testing.T) {
	bar := NewButtonBar(navButtons(false, true, false))
	bar.SetWidth(40)

	out := bar.Render()
	assert.Contains(t, out, "← Back")
	assert.Contains(t, out, "Finish")
	assert.Empty(t, NewButtonBar(nil).Render())
}
