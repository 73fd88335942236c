package domain

import "errors"

type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseQuestion Phase = "question"
	PhaseRevealed Phase = "revealed"
	PhaseFinished Phase = "finished"
)

var ErrEmptyCatalog = errors.New("pattern catalog is empty")

// Session drills a fixed order of patterns: the learner sees a name,
// recalls the diagram, then reveals it.
type Session struct {
	Order    []Pattern
	Index    int
	Phase    Phase
	RenderID string
	Status   RenderStatus
	Artifact Artifact
}

func (s *Session) Start(order []Pattern) error {
	if len(order) == 0 {
		return ErrEmptyCatalog
	}
	s.Order = append([]Pattern(nil), order...)
	s.Index = 0
	s.Phase = PhaseQuestion
	s.clearRender()
	return nil
}

// Reveal moves to revealed and returns the render request for the current
// pattern. seq must come from a counter that never repeats.
func (s *Session) Reveal(seq uint64) (RenderRequest, bool) {
	if s.Phase != PhaseQuestion {
		return RenderRequest{}, false
	}
	p := s.Order[s.Index]
	s.Phase = PhaseRevealed
	s.RenderID = RenderID(s.Index, seq)
	s.Status = RenderPending
	s.Artifact = Artifact{}
	return RenderRequest{ID: s.RenderID, Pattern: p.Name, Definition: p.Definition}, true
}

// Complete records a render result. Results for any id but the current one
// are dropped. A failure leaves the session revealed with the failure
// marker in place of the diagram.
func (s *Session) Complete(id string, artifact Artifact, err error) bool {
	if s.Phase != PhaseRevealed || id == "" || id != s.RenderID || s.Status != RenderPending {
		return false
	}
	if err != nil {
		s.Status = RenderFailed
		s.Artifact = Artifact{Text: FailureMarker}
		return true
	}
	s.Status = RenderReady
	s.Artifact = artifact
	return true
}

func (s *Session) Advance() bool {
	if s.Phase != PhaseRevealed {
		return false
	}
	s.Index++
	s.clearRender()
	if s.Index >= len(s.Order) {
		s.Phase = PhaseFinished
		return true
	}
	s.Phase = PhaseQuestion
	return true
}

func (s *Session) Current() (Pattern, bool) {
	if s.Phase != PhaseQuestion && s.Phase != PhaseRevealed {
		return Pattern{}, false
	}
	return s.Order[s.Index], true
}

func (s *Session) clearRender() {
	s.RenderID = ""
	s.Status = RenderNone
	s.Artifact = Artifact{}
}
