package upload

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	exercisedto "drill/internal/modules/exercise/dto"
	"drill/internal/ui/components"
	"drill/internal/ui/theme"
)

type Port interface {
	Ingest(ctx context.Context, paths []string) (exercisedto.IngestOutput, error)
}

// IngestedMsg carries the outcome of an ingestion started from this view or
// from the drop-folder watcher.
type IngestedMsg struct {
	Out exercisedto.IngestOutput
	Err error
}

// Model lets the learner type file or folder paths and shows what the last
// ingestion produced.
type Model struct {
	port    Port
	input   textinput.Model
	spinner spinner.Model
	loading bool
	last    *IngestedMsg
	width   int
}

func New(port Port) Model {
	ti := textinput.New()
	ti.Placeholder = "exercises/ or ej1.txt ej1_sol.txt …"
	ti.CharLimit = 4096
	ti.Prompt = "paths> "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{port: port, input: ti, spinner: sp}
}

// Focus readies the input for typing.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

func (m *Model) Blur() {
	m.input.Blur()
}

// Typing reports whether key presses belong to the path input.
func (m Model) Typing() bool {
	return m.input.Focused()
}

// Submit starts ingesting paths. Empty input does nothing.
func (m *Model) Submit(paths []string) tea.Cmd {
	if len(paths) == 0 || m.port == nil {
		return nil
	}
	m.loading = true
	port := m.port
	ingest := func() tea.Msg {
		out, err := port.Ingest(context.Background(), paths)
		return IngestedMsg{Out: out, Err: err}
	}
	return tea.Batch(ingest, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-len(m.input.Prompt)-2, 10)
		return m, nil
	case IngestedMsg:
		m.loading = false
		m.last = &msg
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if !m.input.Focused() {
			return m, nil
		}
		switch msg.String() {
		case "enter":
			paths := strings.Fields(m.input.Value())
			m.input.SetValue("")
			return m, m.Submit(paths)
		case "esc":
			m.input.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(components.Icon("upload")+" Upload exercises") + "\n")
	b.WriteString(theme.Muted.Render("Files must be named ejN.txt (problem) and ejN_sol.txt (solution).") + "\n\n")
	b.WriteString(m.input.View() + "\n\n")
	if m.loading {
		b.WriteString(m.spinner.View() + " Reading files…\n")
		return b.String()
	}
	if m.last == nil {
		b.WriteString(theme.Muted.Render("enter: ingest  esc: stop typing  p: practice"))
		return b.String()
	}
	b.WriteString(m.renderResult(*m.last))
	return b.String()
}

func (m Model) renderResult(r IngestedMsg) string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	if r.Err != nil {
		return theme.Error.Render(wordwrap.String(components.Icon("error")+" "+r.Err.Error(), width))
	}
	var b strings.Builder
	summary := fmt.Sprintf("%s ingested %d exercises", components.Icon("ok"), r.Out.Count)
	if r.Out.Count == 0 {
		b.WriteString(theme.Muted.Render(summary) + "\n")
	} else {
		b.WriteString(theme.Ok.Render(summary) + "\n")
		b.WriteString(wordwrap.String("ids: "+strings.Join(r.Out.IDs, ", "), width) + "\n")
	}
	for _, e := range r.Out.Errors {
		b.WriteString(theme.Error.Render(wordwrap.String(components.Icon("error")+" "+e, width)) + "\n")
	}
	if r.Out.Ready {
		b.WriteString("\n" + theme.Hot.Render("press p to start practising"))
	}
	return b.String()
}
