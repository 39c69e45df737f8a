// Package onboard is the terminal wizard that onboards a log source. Each
// step is a Panel hosted by a wizard.Controller, which owns navigation and
// shared data.
package onboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/secconsole/internal/logger"
	"github.com/mark3labs/secconsole/internal/session"
	"github.com/mark3labs/secconsole/internal/wizard"
)

// ErrCancelled is returned by Run when the user leaves the wizard.
var ErrCancelled = errors.New("onboarding cancelled by user")

// Model is the BubbleTea model hosting the onboarding steps.
type Model struct {
	c         *wizard.Controller
	panels    []Panel
	active    int
	notice    string
	cancelled bool
	finished  bool
	width     int
	height    int
}

// NewModel creates the model for c. restored is the draft data c was
// hydrated from, or nil.
func NewModel(c *wizard.Controller, restored wizard.Data) *Model {
	steps := c.Steps()
	panels := make([]Panel, len(steps))
	for i, s := range steps {
		panels[i] = newPanel(s, i, restored)
	}
	return &Model{
		c:      c,
		panels: panels,
		active: -1,
		width:  80,
		height: 24,
	}
}

// Init initializes the panel of the current step.
func (m *Model) Init() tea.Cmd {
	return m.sync()
}

// Update handles messages for the wizard.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch key := msg.String(); key {
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "esc":
			if !m.c.GoPrev() {
				m.cancelled = true
				return m, tea.Quit
			}
			return m, m.sync()
		case "shift+tab":
			m.c.GoPrev()
			return m, m.sync()
		case "tab":
			if err := m.c.GoNext(); err != nil {
				m.notice = "Complete this step first"
				return m, nil
			}
			return m, m.sync()
		case "alt+1", "alt+2", "alt+3", "alt+4", "alt+5", "alt+6", "alt+7", "alt+8", "alt+9":
			target := int(key[len(key)-1] - '1')
			if target >= m.c.Len() {
				return m, nil
			}
			if err := m.c.JumpTo(target); err != nil {
				m.notice = "Complete the earlier steps first"
				return m, nil
			}
			return m, m.sync()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case finishMsg:
		if m.c.Complete() {
			m.finished = true
			return m, tea.Quit
		}
		m.notice = "Some steps are not complete"
		return m, nil
	}

	cmd := m.panels[m.c.CurrentIndex()].Update(msg, m.c)
	return m, tea.Batch(cmd, m.sync())
}

// sync initializes the panel of the current step when the step changed.
func (m *Model) sync() tea.Cmd {
	idx := m.c.CurrentIndex()
	if idx == m.active {
		return nil
	}
	m.active = idx
	m.notice = ""
	m.resize()
	return m.panels[idx].Init(m.c)
}

// resize passes the content area to the current panel.
func (m *Model) resize() {
	if m.active < 0 {
		return
	}
	w, h := m.width-10, m.height-12
	if w < 40 {
		w = 40
	}
	if w > 90 {
		w = 90
	}
	if h < 10 {
		h = 10
	}
	m.panels[m.active].SetSize(w, h)
}

// View renders the wizard UI.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	content := m.Render()

	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(content).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// Render draws the modal for the current step.
func (m *Model) Render() string {
	idx := m.c.CurrentIndex()
	step := m.c.CurrentStep()

	var sections []string
	title := fmt.Sprintf("Onboard Log Source - Step %d of %d: %s", idx+1, m.c.Len(), step.Title)
	sections = append(sections, styleModalTitle.Render(title))
	sections = append(sections, m.renderSteps())
	sections = append(sections, "")
	sections = append(sections, m.panels[idx].View())

	if m.notice != "" {
		sections = append(sections, styleNotice.Render(m.notice))
	}

	modalWidth := m.width - 10
	if modalWidth < 60 {
		modalWidth = 60
	}
	if modalWidth > 100 {
		modalWidth = 100
	}

	bar := NewButtonBar(navButtons(idx == 0, idx == m.c.Len()-1, m.c.CanGoNext()))
	bar.SetWidth(modalWidth - 6)
	sections = append(sections, "", bar.Render())

	modal := styleModalContainer.Width(modalWidth).Render(strings.Join(sections, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

// renderSteps draws one marker per step reflecting its status.
func (m *Model) renderSteps() string {
	steps := m.c.Steps()
	parts := make([]string, len(steps))
	for i, s := range steps {
		label := fmt.Sprintf("%d %s", i+1, s.Title)
		switch m.c.StepStatus(i) {
		case wizard.StatusValid:
			label = styleStepValid.Render("✓ " + label)
		case wizard.StatusInvalid:
			label = styleStepInvalid.Render("✗ " + label)
		default:
			label = styleStepPending.Render("• " + label)
		}
		if i == m.c.CurrentIndex() {
			label = styleStepCurrent.Render(label)
		}
		parts[i] = label
	}
	return strings.Join(parts, styleHintSeparator.Render("  ›  "))
}

// Cancelled reports whether the user left the wizard.
func (m *Model) Cancelled() bool {
	return m.cancelled
}

// Finished reports whether the user confirmed a complete wizard.
func (m *Model) Finished() bool {
	return m.finished
}

// Source returns the source described by the shared data.
func (m *Model) Source() Source {
	return SourceFromData(m.c.SharedData())
}

// Options configures Run.
type Options struct {
	// WizardID names the draft; it is slugified for storage.
	WizardID string
	// Store persists drafts. Nil disables drafts.
	Store *session.Store
	// Resume rehydrates the wizard from the stored draft.
	Resume       bool
	StrictBounds bool
	SourcesDir   string
}

// Result holds the outcome of a completed onboarding.
type Result struct {
	Source Source
	Path   string
}

// Run is the entry point for the onboarding wizard. It runs a standalone
// BubbleTea program and writes the source file once the user finishes.
func Run(ctx context.Context, opts Options) (*Result, error) {
	var wopts []wizard.Option
	if opts.StrictBounds {
		wopts = append(wopts, wizard.WithStrictBounds())
	}
	c, err := wizard.New(Steps(), wopts...)
	if err != nil {
		return nil, fmt.Errorf("creating wizard: %w", err)
	}

	var restored wizard.Data
	if opts.Store != nil && opts.Resume {
		draft, err := opts.Store.LoadDraft(ctx, opts.WizardID)
		switch {
		case errors.Is(err, session.ErrNoDraft):
			logger.Info("No draft stored for %s, starting fresh", opts.WizardID)
		case err != nil:
			return nil, fmt.Errorf("loading draft: %w", err)
		default:
			restoreDraft(c, draft)
			restored = draft.Data.Clone()
			logger.Info("Resumed %s at step %d", opts.WizardID, c.CurrentIndex()+1)
		}
	}

	stop := func() {}
	if opts.Store != nil {
		stop = opts.Store.AutoSave(ctx, opts.WizardID, c)
	}
	defer stop()

	m := NewModel(c, restored)
	p := tea.NewProgram(m)

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	fm, ok := finalModel.(*Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}
	if !fm.Finished() {
		return nil, ErrCancelled
	}

	return finish(ctx, opts, fm.Source(), stop)
}

// finish writes the source and drops the draft. stop ends autosaving first
// so the discard is the last draft event.
func finish(ctx context.Context, opts Options, src Source, stop func()) (*Result, error) {
	path, err := WriteSource(opts.SourcesDir, src)
	if err != nil {
		return nil, err
	}
	logger.Info("Log source %s written to %s", src.ID, path)

	stop()
	if opts.Store != nil {
		if err := opts.Store.DiscardDraft(ctx, opts.WizardID); err != nil {
			logger.Warn("Failed to discard draft for %s: %v", opts.WizardID, err)
		}
	}
	return &Result{Source: src, Path: path}, nil
}

// restoreDraft hydrates c from draft before the first render. The review
// step always starts pending so a restored wizard is never complete.
func restoreDraft(c *wizard.Controller, draft *session.Draft) {
	c.Hydrate(draft.Data)
	last := c.Len() - 1
	for i, s := range draft.Statuses {
		if i >= last {
			break
		}
		c.SetStepStatus(i, s)
	}
	if draft.Index >= 0 && draft.Index < c.Len() {
		if err := c.JumpTo(draft.Index); err != nil {
			logger.Warn("Draft step %d not reachable: %v", draft.Index+1, err)
		}
	}
}
