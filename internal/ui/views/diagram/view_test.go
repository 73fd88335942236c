package diagram

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	diagramdto "drill/internal/modules/diagram/dto"
)

func TestQuestionHidesDiagram(t *testing.T) {
	t.Parallel()
	m := New()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	m.SetDrill(diagramdto.DrillView{Phase: "question", Pattern: "Observer", Position: 2, Total: 12})
	out := m.View()
	if !strings.Contains(out, "Observer") || !strings.Contains(out, "2/12") {
		t.Fatalf("question view should name the pattern:\n%s", out)
	}
}

func TestRevealedStates(t *testing.T) {
	t.Parallel()
	m := New()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	if cmd := m.SetDrill(diagramdto.DrillView{Phase: "revealed", Pattern: "State", RenderID: "diagram-0-1", RenderStatus: "pending"}); cmd == nil {
		t.Fatalf("pending render should start the spinner")
	}
	if out := m.View(); !strings.Contains(out, "Rendering State") {
		t.Fatalf("pending render should say so:\n%s", out)
	}

	m.SetDrill(diagramdto.DrillView{Phase: "revealed", Pattern: "State", RenderID: "diagram-0-1", RenderStatus: "failed", Diagram: "error rendering diagram"})
	if out := m.View(); !strings.Contains(out, "error rendering diagram") {
		t.Fatalf("failure marker should be inline:\n%s", out)
	}

	m.SetDrill(diagramdto.DrillView{Phase: "revealed", Pattern: "State", RenderID: "diagram-0-2", RenderStatus: "ready", Diagram: "BOXES", ArtifactPath: "/tmp/x.txt"})
	out := m.View()
	if !strings.Contains(out, "BOXES") || !strings.Contains(out, "o: open file") {
		t.Fatalf("ready render should show diagram and open hint:\n%s", out)
	}
}
