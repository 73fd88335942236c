package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	diagramdto "drill/internal/modules/diagram/dto"
	exercisedto "drill/internal/modules/exercise/dto"
	apperrors "drill/internal/platform/errors"
	"drill/internal/ui/components"
	"drill/internal/ui/theme"
	diagramview "drill/internal/ui/views/diagram"
	homeview "drill/internal/ui/views/home"
	infoview "drill/internal/ui/views/info"
	practiceview "drill/internal/ui/views/practice"
	uploadview "drill/internal/ui/views/upload"
)

const tickInterval = time.Second

type ExercisePort interface {
	Ingest(ctx context.Context, paths []string) (exercisedto.IngestOutput, error)
	Catalog(ctx context.Context) (exercisedto.CatalogOutput, error)
}

type tickMsg struct{ generation uint64 }

type renderedMsg struct {
	out diagramdto.TransitionOutput
	err error
}

type openedMsg struct{ err error }

// IngestedMsg wraps an ingestion result so it can be sent into a running
// program, e.g. from the drop-folder watcher.
func IngestedMsg(out exercisedto.IngestOutput, err error) tea.Msg {
	return uploadview.IngestedMsg{Out: out, Err: err}
}

var navOrder = []View{ViewHome, ViewUpload, ViewPractice, ViewDiagrams, ViewFinished, ViewHelp, ViewAbout}

// Model is the root Bubble Tea model. It routes keys to the shell and
// renders whichever view the shell has made current.
type Model struct {
	ctx       context.Context
	shell     *Shell
	exercises ExercisePort
	practice  PracticePort
	diagrams  DiagramPort
	logger    *zap.Logger

	uploadView   uploadview.Model
	practiceView practiceview.Model
	diagramView  diagramview.Model

	keys     keyMap
	help     help.Model
	palette  components.Palette
	catalogN int
	status   string
	width    int
	height   int
}

func NewModel(exercises ExercisePort, practice PracticePort, diagrams DiagramPort, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	shell := NewShell(practice, diagrams)
	shell.OnSwitch(func(v View) {
		logger.Debug("view switched", zap.String("view", string(v)))
	})
	h := help.New()
	h.ShowAll = true
	return Model{
		ctx:          context.Background(),
		shell:        shell,
		exercises:    exercises,
		practice:     practice,
		diagrams:     diagrams,
		logger:       logger,
		uploadView:   uploadview.New(exercises),
		practiceView: practiceview.New(),
		diagramView:  diagramview.New(),
		keys:         defaultKeys(),
		help:         h,
		palette:      components.NewPalette(),
		status:       "ready",
	}
}

// Shell exposes the navigator, mainly for tests.
func (m Model) Shell() *Shell { return m.shell }

func (m Model) Init() tea.Cmd {
	return m.refreshCatalogCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, isKey := msg.(tea.KeyMsg); isKey && m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		sz := tea.WindowSizeMsg{Width: m.width, Height: m.contentHeight()}
		m.uploadView, _ = m.uploadView.Update(sz)
		m.practiceView, _ = m.practiceView.Update(sz)
		m.diagramView, _ = m.diagramView.Update(sz)
		return m, nil

	case tickMsg:
		if !m.practice.Tick(m.ctx, msg.generation) {
			return m, nil
		}
		m.practiceView.SetSession(m.practice.View(m.ctx))
		return m, tickCmd(msg.generation)

	case renderedMsg:
		if msg.err != nil {
			m.status = "render: " + msg.err.Error()
			return m, nil
		}
		if !msg.out.Applied {
			return m, nil
		}
		return m, m.diagramView.SetDrill(msg.out.View)

	case openedMsg:
		switch {
		case errors.Is(msg.err, apperrors.ErrNotFound):
			m.status = "this diagram has no file to open"
		case msg.err != nil:
			m.status = "open: " + msg.err.Error()
		default:
			m.status = "opened diagram file"
		}
		return m, nil

	case uploadview.IngestedMsg:
		var cmd tea.Cmd
		m.uploadView, cmd = m.uploadView.Update(msg)
		if msg.Err != nil {
			m.status = "ingest failed: " + msg.Err.Error()
			m.logger.Warn("ingest failed", zap.Error(msg.Err))
		} else {
			m.catalogN = msg.Out.Count
			m.status = components.Icon("ok") + " catalog: " + pluralExercises(msg.Out.Count)
		}
		return m, cmd

	case catalogLoadedMsg:
		m.catalogN = msg.count
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.shell.Current() == ViewUpload && m.uploadView.Typing() && msg.String() != "ctrl+c" {
			var cmd tea.Cmd
			m.uploadView, cmd = m.uploadView.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)
	}

	return m.forward(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Palette):
		return m, m.palette.Open()
	case key.Matches(msg, m.keys.Home):
		return m.navigate(ViewHome)
	case key.Matches(msg, m.keys.Upload):
		return m.navigate(ViewUpload)
	case key.Matches(msg, m.keys.Practice):
		return m.startPractice()
	case key.Matches(msg, m.keys.Diagrams):
		return m.navigate(ViewDiagrams)
	case key.Matches(msg, m.keys.Help):
		return m.navigate(ViewHelp)
	case key.Matches(msg, m.keys.About):
		return m.navigate(ViewAbout)
	case key.Matches(msg, m.keys.Primary):
		step, err := m.shell.Primary(m.ctx)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, m.afterStep(step)
	case key.Matches(msg, m.keys.Open):
		if m.shell.Current() != ViewDiagrams {
			return m, nil
		}
		diagrams := m.diagrams
		return m, func() tea.Msg {
			return openedMsg{err: diagrams.OpenArtifact(context.Background())}
		}
	}
	return m.forward(msg)
}

// forward hands scroll keys and other messages to the current view.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.shell.Current() {
	case ViewUpload:
		m.uploadView, cmd = m.uploadView.Update(msg)
	case ViewPractice:
		m.practiceView, cmd = m.practiceView.Update(msg)
	case ViewDiagrams:
		m.diagramView, cmd = m.diagramView.Update(msg)
	}
	return m, cmd
}

func (m Model) navigate(v View) (tea.Model, tea.Cmd) {
	if err := m.shell.Navigate(m.ctx, v); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.status = components.Icon(string(v)) + " " + string(v)
	var cmds []tea.Cmd
	switch v {
	case ViewUpload:
		cmds = append(cmds, m.uploadView.Focus())
	default:
		m.uploadView.Blur()
	}
	cmds = append(cmds, m.afterStep(Step{}))
	return m, tea.Batch(cmds...)
}

func (m Model) startPractice() (tea.Model, tea.Cmd) {
	step, ok, err := m.shell.StartPractice(m.ctx)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	if !ok {
		m.status = "no exercises loaded: upload a folder first (u)"
		return m, nil
	}
	m.uploadView.Blur()
	m.status = components.Icon("practice") + " practice started"
	return m, m.afterStep(step)
}

// afterStep syncs the session views and schedules follow-up commands.
func (m *Model) afterStep(step Step) tea.Cmd {
	var cmds []tea.Cmd
	m.practiceView.SetSession(m.practice.View(m.ctx))
	cmds = append(cmds, m.diagramView.SetDrill(m.diagrams.View(m.ctx)))
	if step.Tick {
		cmds = append(cmds, tickCmd(step.Generation))
	}
	if step.Render != nil {
		req := *step.Render
		diagrams := m.diagrams
		cmds = append(cmds, func() tea.Msg {
			out, err := diagrams.Render(context.Background(), req)
			return renderedMsg{out: out, err: err}
		})
	}
	return tea.Batch(cmds...)
}

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	switch parts[0] {
	case "home":
		return m.navigate(ViewHome)
	case "upload":
		next, cmd := m.navigate(ViewUpload)
		model := next.(Model)
		if len(parts) > 1 {
			return model, tea.Batch(cmd, model.submitUpload(parts[1:]))
		}
		return model, cmd
	case "practice:start":
		return m.startPractice()
	case "diagrams":
		return m.navigate(ViewDiagrams)
	case "help":
		return m.navigate(ViewHelp)
	case "about":
		return m.navigate(ViewAbout)
	}
	m.status = "unknown command: " + parts[0]
	return m, nil
}

func (m *Model) submitUpload(paths []string) tea.Cmd {
	return m.uploadView.Submit(paths)
}

func (m Model) View() string {
	top := m.renderNavBar()
	bottom := m.renderStatusBar()
	contentH := m.contentHeight()

	var content string
	if m.palette.Visible() {
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	} else {
		content = lipgloss.NewStyle().Height(contentH).Render(m.currentView(contentH))
	}
	return components.Icons.Refresh(lipgloss.JoinVertical(lipgloss.Left, top, content, bottom))
}

func (m Model) currentView(height int) string {
	switch m.shell.Current() {
	case ViewUpload:
		return m.uploadView.View()
	case ViewPractice:
		return m.practiceView.View()
	case ViewDiagrams:
		return m.diagramView.View()
	case ViewFinished:
		total := m.practiceView.Session().Total
		if m.shell.FinishedFlow() == FlowDiagrams {
			total = m.diagramView.Drill().Total
		}
		return infoview.Finished(string(m.shell.FinishedFlow()), total)
	case ViewHelp:
		return infoview.Help(m.help.View(m.keys))
	case ViewAbout:
		return infoview.About(m.width)
	}
	return homeview.Render(m.width, height, m.catalogN)
}

func (m Model) contentHeight() int {
	return max(m.height-2, 1)
}

func (m Model) renderNavBar() string {
	parts := make([]string, 0, len(navOrder))
	for _, v := range navOrder {
		if v == ViewFinished && m.shell.Current() != ViewFinished {
			continue
		}
		label := " " + string(v) + " "
		if v == m.shell.Current() {
			parts = append(parts, theme.Hot.Render(label))
		} else {
			parts = append(parts, theme.Muted.Render(label))
		}
	}
	bar := "drill  " + strings.Join(parts, theme.Muted.Render("│"))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

type catalogLoadedMsg struct{ count int }

func (m Model) refreshCatalogCmd() tea.Cmd {
	exercises := m.exercises
	return func() tea.Msg {
		out, err := exercises.Catalog(context.Background())
		if err != nil {
			return catalogLoadedMsg{}
		}
		return catalogLoadedMsg{count: len(out.Exercises)}
	}
}

func tickCmd(generation uint64) tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{generation: generation}
	})
}

func pluralExercises(n int) string {
	if n == 1 {
		return "1 exercise"
	}
	return fmt.Sprintf("%d exercises", n)
}
