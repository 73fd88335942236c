package domain_test

import (
	"testing"
	"time"

	"drill/internal/modules/practice/domain"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func TestSessionWalksEveryExerciseOnce(t *testing.T) {
	t.Parallel()
	s := domain.Session{}
	order := []string{"3", "1", "2"}
	if err := s.Start("sess", order, t0); err != nil {
		t.Fatalf("start: %v", err)
	}
	seen := map[string]int{}
	reveals, advances := 0, 0
	now := t0
	for s.Phase != domain.PhaseFinished {
		id, ok := s.Current()
		if !ok {
			t.Fatalf("no current exercise in phase %s", s.Phase)
		}
		seen[id]++
		now = now.Add(30 * time.Second)
		if !s.Reveal(now) {
			t.Fatalf("reveal should apply in showing-problem")
		}
		reveals++
		if !s.Advance(now) {
			t.Fatalf("advance should apply in showing-solution")
		}
		advances++
	}
	if reveals != 3 || advances != 3 {
		t.Fatalf("expected 3 reveals and 3 advances, got %d/%d", reveals, advances)
	}
	for _, id := range order {
		if seen[id] != 1 {
			t.Fatalf("exercise %s shown %d times", id, seen[id])
		}
	}
	if s.Timer.Running() {
		t.Fatalf("timer must be stopped once finished")
	}
}

func TestTransitionsOutsideTheirPhaseDoNotApply(t *testing.T) {
	t.Parallel()
	s := domain.Session{}
	if s.Reveal(t0) || s.Advance(t0) {
		t.Fatalf("idle session must ignore reveal and advance")
	}
	if err := s.Start("sess", nil, t0); err == nil {
		t.Fatalf("empty order must not start")
	}
	if s.Phase != domain.PhaseIdle || s.Timer.Running() {
		t.Fatalf("failed start must leave session idle")
	}

	_ = s.Start("sess", []string{"1"}, t0)
	if s.Advance(t0) {
		t.Fatalf("advance before reveal must not apply")
	}
	if !s.Reveal(t0.Add(65 * time.Second)) {
		t.Fatalf("reveal should apply")
	}
	if s.Reveal(t0.Add(90 * time.Second)) {
		t.Fatalf("second reveal must not apply")
	}
	if s.RevealedAt != "01:05" {
		t.Fatalf("reveal must capture elapsed once, got %q", s.RevealedAt)
	}
	_ = s.Advance(t0)
	if s.Advance(t0) || s.Reveal(t0) {
		t.Fatalf("finished session must ignore reveal and advance")
	}
}

func TestRestartCancelsPreviousTimer(t *testing.T) {
	t.Parallel()
	s := domain.Session{}
	_ = s.Start("a", []string{"1", "2"}, t0)
	first := s.Timer.Generation()
	_ = s.Start("b", []string{"2"}, t0.Add(time.Minute))
	if s.Timer.Live(first) {
		t.Fatalf("ticks from the previous session must be stale")
	}
	if !s.Timer.Live(s.Timer.Generation()) {
		t.Fatalf("current generation should be live")
	}
	if got := domain.FormatElapsed(s.Timer.Elapsed(t0.Add(2 * time.Minute))); got != "01:00" {
		t.Fatalf("restart must reset elapsed, got %s", got)
	}
}

func TestExitStopsTimerFromAnyPhase(t *testing.T) {
	t.Parallel()
	s := domain.Session{}
	_ = s.Start("a", []string{"1"}, t0)
	gen := s.Timer.Generation()
	if !s.Exit(t0) {
		t.Fatalf("exit from showing-problem should apply")
	}
	if s.Phase != domain.PhaseIdle || s.Timer.Live(gen) {
		t.Fatalf("exit must stop the timer and go idle")
	}
	if s.Exit(t0) {
		t.Fatalf("exit from idle changes nothing")
	}
}

func TestFormatElapsed(t *testing.T) {
	t.Parallel()
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{-time.Second, "00:00"},
		{59*time.Second + 900*time.Millisecond, "00:59"},
		{61 * time.Second, "01:01"},
		{100*time.Minute + 5*time.Second, "100:05"},
	}
	for _, tc := range cases {
		if got := domain.FormatElapsed(tc.d); got != tc.want {
			t.Fatalf("FormatElapsed(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
