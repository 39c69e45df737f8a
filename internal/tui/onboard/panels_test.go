package onboard

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/secconsole/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T, data wizard.Data) *wizard.Controller {
	t.Helper()
	c, err := wizard.New(Steps(), wizard.WithData(data))
	require.NoError(t, err)
	return c
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    wizard.Status
		wantMsg bool
	}{
		{"empty is pending", "", wizard.StatusPending, false},
		{"plain name", "Prod CloudTrail", wizard.StatusValid, false},
		{"unicode", "Überwachung", wizard.StatusValid, false},
		{"punctuation only", "!!!", wizard.StatusInvalid, true},
		{"too long", strings.Repeat("a", 65), wizard.StatusInvalid, true},
		{"max length", strings.Repeat("a", 64), wizard.StatusValid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := validateName(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantMsg, msg != "")
		})
	}
}

func TestNamePanel_InitFromSharedData(t *testing.T) {
	c := newTestController(t, wizard.Data{KeyName: "Edge Syslog"})
	p := NewNamePanel(0)

	p.Init(c)
	assert.Equal(t, "Edge Syslog", p.Value())
	assert.Equal(t, wizard.StatusValid, c.StepStatus(0))
	assert.Equal(t, "edge-syslog", c.SharedData()[KeyID])
}

func TestKindPanel(t *testing.T) {
	t.Run("restores selection", func(t *testing.T) {
		c := newTestController(t, wizard.Data{KeyKind: "syslog"})
		p := NewKindPanel(1)

		p.Init(c)
		assert.Equal(t, "syslog", p.Selected().ID)
		assert.Equal(t, wizard.StatusValid, c.StepStatus(1))
	})

	t.Run("unknown kind stays pending", func(t *testing.T) {
		c := newTestController(t, wizard.Data{KeyKind: "ftp"})
		p := NewKindPanel(1)

		p.Init(c)
		assert.Equal(t, SourceKinds[0].ID, p.Selected().ID)
		assert.Equal(t, wizard.StatusPending, c.StepStatus(1))
	})

	t.Run("cursor stays in bounds", func(t *testing.T) {
		c := newTestController(t, nil)
		p := NewKindPanel(1)
		p.Init(c)

		p.Update(tea.KeyPressMsg{Code: tea.KeyUp}, c)
		assert.Equal(t, SourceKinds[0].ID, p.Selected().ID)

		for range SourceKinds {
			p.Update(tea.KeyPressMsg{Code: tea.KeyDown}, c)
		}
		assert.Equal(t, SourceKinds[len(SourceKinds)-1].ID, p.Selected().ID)
		assert.Equal(t, wizard.StatusPending, c.StepStatus(1), "moving does not select")
	})
}

func TestReviewPanel(t *testing.T) {
	t.Run("description edit updates shared data", func(t *testing.T) {
		c := newTestController(t, wizard.Data{KeyName: "Okta", KeyKind: "okta"})
		p := NewReviewPanel(2, nil)
		p.Init(c)

		p.Update(DescriptionEditedMsg{Content: "Corporate IdP\n"}, c)
		assert.Equal(t, "Corporate IdP", c.SharedData()[KeyDescription])
		assert.Contains(t, p.Markdown(), "## Description")
		assert.Contains(t, p.Markdown(), "Corporate IdP")
	})

	t.Run("incomplete source cannot be confirmed", func(t *testing.T) {
		c := newTestController(t, wizard.Data{KeyName: "Okta"})
		p := NewReviewPanel(2, nil)
		p.Init(c)

		cmd := p.Update(tea.KeyPressMsg{Code: tea.KeyEnter}, c)
		assert.Nil(t, cmd)
		assert.Equal(t, wizard.StatusInvalid, c.StepStatus(2))
		assert.Contains(t, plain(p.View()), "unknown source kind")
	})
}

func TestReviewMarkdown(t *testing.T) {
	current := Source{ID: "okta-prod", Name: "Okta Prod", Kind: "okta"}

	t.Run("summary", func(t *testing.T) {
		md := reviewMarkdown(current, nil)
		assert.Contains(t, md, "# Okta Prod")
		assert.Contains(t, md, "| ID | `okta-prod` |")
		assert.Contains(t, md, "| Type | Okta System Log |")
		assert.NotContains(t, md, "Changes since draft")
	})

	t.Run("diff against draft", func(t *testing.T) {
		restored := Source{ID: "okta", Name: "Okta", Kind: "okta"}
		md := reviewMarkdown(current, &restored)
		assert.Contains(t, md, "## Changes since draft")
		assert.Contains(t, md, "-name: Okta\n")
		assert.Contains(t, md, "+name: Okta Prod\n")
	})

	t.Run("unchanged draft has no diff", func(t *testing.T) {
		restored := current
		md := reviewMarkdown(current, &restored)
		assert.NotContains(t, md, "Changes since draft")
	})
}

func TestNewPanel_ResolvesByKind(t *testing.T) {
	steps := Steps()
	require.Len(t, steps, 3)

	assert.IsType(t, &NamePanel{}, newPanel(steps[0], 0, nil))
	assert.IsType(t, &KindPanel{}, newPanel(steps[1], 1, nil))
	assert.IsType(t, &ReviewPanel{}, newPanel(steps[2], 2, nil))
}
