package onboard

import (
	"fmt"
	"os"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/glamour/v2"
	"github.com/aymanbagabas/go-udiff"
	"github.com/charmbracelet/x/editor"
	"github.com/mark3labs/secconsole/internal/wizard"
)

// ReviewPanel shows the source about to be written and confirms it.
type ReviewPanel struct {
	index    int
	restored wizard.Data
	viewport viewport.Model
	markdown string
	err      string
	width    int
	height   int
}

// NewReviewPanel creates the review for step index. When restored is
// non-nil the review also shows what changed since the draft was loaded.
func NewReviewPanel(index int, restored wizard.Data) *ReviewPanel {
	vp := viewport.New(
		viewport.WithWidth(60),
		viewport.WithHeight(12),
	)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return &ReviewPanel{
		index:    index,
		restored: restored,
		viewport: vp,
		width:    60,
		height:   20,
	}
}

// Init renders the summary from the current shared data. The step stays
// pending until the user confirms.
func (p *ReviewPanel) Init(h wizard.Handle) tea.Cmd {
	p.refresh(h)
	return nil
}

func (p *ReviewPanel) refresh(h wizard.Handle) {
	src := SourceFromData(h.SharedData())
	p.err = ""
	if err := src.Validate(); err != nil {
		p.err = err.Error()
	}

	var restored *Source
	if p.restored != nil {
		r := SourceFromData(p.restored)
		restored = &r
	}

	p.markdown = reviewMarkdown(src, restored)
	p.viewport.SetContent(renderMarkdown(p.markdown, p.width))
}

// Update handles confirmation, scrolling and editing.
func (p *ReviewPanel) Update(msg tea.Msg, h wizard.Handle) tea.Cmd {
	switch msg := msg.(type) {
	case DescriptionEditedMsg:
		h.SetSharedData(wizard.Data{KeyDescription: strings.TrimSpace(msg.Content)})
		p.refresh(h)
		return nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			if p.err != "" {
				h.SetStepStatus(p.index, wizard.StatusInvalid)
				return nil
			}
			h.SetStepStatus(p.index, wizard.StatusValid)
			return func() tea.Msg { return finishMsg{} }
		case "e":
			desc, _ := h.SharedData()[KeyDescription].(string)
			return openEditor(desc)
		}
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

// Markdown returns the unrendered review document.
func (p *ReviewPanel) Markdown() string {
	return p.markdown
}

// SetSize updates the viewport dimensions.
func (p *ReviewPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.viewport.SetWidth(width)
	vh := height - 4
	if vh < 5 {
		vh = 5
	}
	p.viewport.SetHeight(vh)
	if p.markdown != "" {
		p.viewport.SetContent(renderMarkdown(p.markdown, width))
	}
}

// View renders the review panel.
func (p *ReviewPanel) View() string {
	var b strings.Builder

	b.WriteString(p.viewport.View())
	b.WriteString("\n")

	if p.err != "" {
		b.WriteString(styleError.Render("✗ " + p.err))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if os.Getenv("EDITOR") != "" {
		b.WriteString(renderHintBar(
			"↑↓", "scroll",
			"e", "edit description",
			"enter", "finish",
			"esc", "back",
		))
	} else {
		b.WriteString(renderHintBar(
			"↑↓", "scroll",
			"enter", "finish",
			"esc", "back",
		))
	}
	return b.String()
}

// reviewMarkdown builds the review document. A diff section is added when
// the source differs from the restored draft.
func reviewMarkdown(src Source, restored *Source) string {
	var b strings.Builder

	b.WriteString("# " + fallback(src.Name, "Unnamed source") + "\n\n")
	b.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| ID | `%s` |\n", fallback(src.ID, "-"))
	kind := src.Kind
	if k, ok := kindByID(src.Kind); ok {
		kind = k.Label
	}
	fmt.Fprintf(&b, "| Type | %s |\n", fallback(kind, "-"))
	b.WriteString("\n")

	if src.Description != "" {
		b.WriteString("## Description\n\n" + src.Description + "\n\n")
	}

	if restored != nil {
		if diff := udiff.Unified("draft", "current", restored.YAML(), src.YAML()); diff != "" {
			b.WriteString("## Changes since draft\n\n```diff\n" + diff + "```\n")
		}
	}

	return b.String()
}

func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// renderMarkdown renders markdown with glamour, falling back to the plain
// text when rendering fails.
func renderMarkdown(content string, width int) string {
	if width > 120 {
		width = 120
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimSuffix(rendered, "\n")
}

// openEditor launches $EDITOR on the description and reports the result as
// a DescriptionEditedMsg.
func openEditor(content string) tea.Cmd {
	tmpfile, err := os.CreateTemp("", "secconsole_source_*.md")
	if err != nil {
		return nil
	}
	if _, err := tmpfile.WriteString(content); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(tmpfile.Name())
		return nil
	}
	_ = tmpfile.Close()

	cmd, err := editor.Command("secconsole", tmpfile.Name())
	if err != nil {
		_ = os.Remove(tmpfile.Name())
		return nil
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		defer func() { _ = os.Remove(tmpfile.Name()) }()
		if err != nil {
			return nil
		}
		data, err := os.ReadFile(tmpfile.Name())
		if err != nil {
			return nil
		}
		return DescriptionEditedMsg{Content: string(data)}
	})
}
