package diagram

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	diagramdto "drill/internal/modules/diagram/dto"
	"drill/internal/ui/components"
	"drill/internal/ui/theme"
)

// Model shows the diagram drill: a pattern name to recall, then its
// rendered class diagram.
type Model struct {
	viewport viewport.Model
	spinner  spinner.Model
	drill    diagramdto.DrillView
	width    int
	height   int
}

func New() Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{viewport: viewport.New(0, 0), spinner: sp}
}

// SetDrill replaces the snapshot being shown. It returns a spinner tick
// while a render is pending.
func (m *Model) SetDrill(view diagramdto.DrillView) tea.Cmd {
	changed := view.RenderID != m.drill.RenderID || view.RenderStatus != m.drill.RenderStatus || view.Pattern != m.drill.Pattern
	m.drill = view
	if changed {
		m.viewport.SetContent(m.renderBody())
		m.viewport.GotoTop()
	}
	if view.RenderStatus == "pending" {
		return m.spinner.Tick
	}
	return nil
}

func (m Model) Drill() diagramdto.DrillView { return m.drill }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.width
		m.viewport.Height = max(m.height-3, 1)
		m.viewport.SetContent(m.renderBody())
	case spinner.TickMsg:
		if m.drill.RenderStatus == "pending" {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	d := m.drill
	header := theme.Title.Render(components.Icon("diagrams") + " Diagram drill")
	if d.Total > 0 {
		header += "  " + theme.Muted.Render(fmt.Sprintf("%d/%d", d.Position, d.Total))
	}
	body := m.viewport.View()
	switch {
	case d.Phase == "question":
		body = lipgloss.Place(max(m.width, 1), max(m.height-3, 1), lipgloss.Center, lipgloss.Center,
			theme.Hot.Render(d.Pattern)+"\n\n"+theme.Muted.Render("Recall the class diagram, then press space."))
	case d.RenderStatus == "pending":
		body = m.spinner.View() + " Rendering " + d.Pattern + "…"
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderFooter())
}

func (m Model) renderFooter() string {
	switch m.drill.Phase {
	case "question":
		return theme.Muted.Render("space: reveal  h: home")
	case "revealed":
		hints := []string{"space: next pattern"}
		if m.drill.ArtifactPath != "" {
			hints = append(hints, "o: open file")
		}
		return theme.Muted.Render(strings.Join(append(hints, "h: home"), "  "))
	}
	return ""
}

func (m Model) renderBody() string {
	d := m.drill
	if d.Phase != "revealed" {
		return ""
	}
	title := theme.Hot.Render(d.Pattern)
	switch d.RenderStatus {
	case "failed":
		return title + "\n\n" + theme.Error.Render(components.Icon("error")+" "+d.Diagram)
	case "ready":
		out := title + "\n\n" + d.Diagram
		if d.ArtifactPath != "" {
			out += "\n\n" + theme.Muted.Render(components.Icon("open")+" "+d.ArtifactPath)
		}
		return out
	}
	return title
}
