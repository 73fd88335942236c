package practice

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	practicedto "drill/internal/modules/practice/dto"
)

func TestSolutionOnlyRenderedAfterReveal(t *testing.T) {
	t.Parallel()
	m := New()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m.SetSession(practicedto.SessionView{
		Phase: "showing-problem", ExerciseID: "4", Position: 1, Total: 2,
		Problem: "extract method", Elapsed: "00:07", Running: true,
	})
	out := m.View()
	if !strings.Contains(out, "extract method") || strings.Contains(out, "Solution") {
		t.Fatalf("problem phase should hide the solution:\n%s", out)
	}
	if !strings.Contains(out, "00:07") || !strings.Contains(out, "1/2") {
		t.Fatalf("header should show timer and position:\n%s", out)
	}

	m.SetSession(practicedto.SessionView{
		Phase: "showing-solution", ExerciseID: "4", Position: 1, Total: 2,
		Problem: "extract method", Solution: "func helper()", RevealTime: "00:09",
	})
	out = m.View()
	if !strings.Contains(out, "func helper()") || !strings.Contains(out, "00:09") {
		t.Fatalf("solution phase should show solution and reveal time:\n%s", out)
	}
}

func TestFenceOutgrowsInnerBackticks(t *testing.T) {
	t.Parallel()
	got := fence("a ``` b")
	if !strings.HasPrefix(got, "````\n") {
		t.Fatalf("fence must be longer than inner run: %q", got)
	}
}
