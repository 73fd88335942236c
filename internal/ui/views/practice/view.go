package practice

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	practicedto "drill/internal/modules/practice/dto"
	"drill/internal/ui/components"
	"drill/internal/ui/theme"
)

// Model renders the practice session: the problem, the running timer and,
// once revealed, the solution.
type Model struct {
	viewport viewport.Model
	renderer *glamour.TermRenderer
	session  practicedto.SessionView
	width    int
	height   int
}

func New() Model {
	m := Model{viewport: viewport.New(0, 0)}
	m.renderer = newRenderer(0)
	return m
}

func newRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}

// SetSession replaces the snapshot being shown. Content scrolls back to the
// top when the exercise or phase changes.
func (m *Model) SetSession(view practicedto.SessionView) {
	changed := view.ExerciseID != m.session.ExerciseID || view.Phase != m.session.Phase
	m.session = view
	if changed {
		m.viewport.SetContent(m.renderBody())
		m.viewport.GotoTop()
	}
}

func (m Model) Session() practicedto.SessionView { return m.session }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.viewport.Width = m.width
		m.viewport.Height = max(m.height-3, 1)
		m.renderer = newRenderer(m.width)
		m.viewport.SetContent(m.renderBody())
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.viewport.View(), m.renderFooter())
}

func (m Model) renderHeader() string {
	s := m.session
	if s.Total == 0 {
		return theme.Title.Render("Practice") + theme.Muted.Render("  no session running")
	}
	parts := []string{
		theme.Title.Render(components.Icon("practice") + " Exercise " + s.ExerciseID),
		theme.Muted.Render(fmt.Sprintf("%d/%d", s.Position, s.Total)),
	}
	switch {
	case s.RevealTime != "":
		parts = append(parts, theme.Timer.Render(components.Icon("timer")+" "+s.RevealTime), theme.Muted.Render("solved in"))
	default:
		parts = append(parts, theme.Timer.Render(components.Icon("timer")+" "+s.Elapsed))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	switch m.session.Phase {
	case "showing-problem":
		return theme.Muted.Render("space: reveal solution  h: home")
	case "showing-solution":
		return theme.Muted.Render("space: next exercise  h: home")
	}
	return ""
}

func (m Model) renderBody() string {
	s := m.session
	if s.Problem == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString("## Problem\n\n")
	b.WriteString(fence(s.Problem))
	if s.Solution != "" {
		b.WriteString("\n## Solution\n\n")
		b.WriteString(fence(s.Solution))
	}
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(b.String()); err == nil {
			return rendered
		}
	}
	return b.String()
}

// fence wraps text in a code fence longer than any backtick run inside it.
func fence(text string) string {
	longest, run := 0, 0
	for _, r := range text {
		if r == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	ticks := strings.Repeat("`", max(3, longest+1))
	return ticks + "\n" + strings.TrimRight(text, "\n") + "\n" + ticks + "\n"
}
