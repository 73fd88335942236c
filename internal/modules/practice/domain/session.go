package domain

import (
	"errors"
	"time"
)

type Phase string

const (
	PhaseIdle            Phase = "idle"
	PhaseShowingProblem  Phase = "showing-problem"
	PhaseShowingSolution Phase = "showing-solution"
	PhaseFinished        Phase = "finished"
)

type Exercise struct {
	ID       string
	Problem  string
	Solution string
}

var ErrEmptyOrder = errors.New("practice order is empty")

// Session walks a fixed order of exercise ids. Transition methods report
// whether they applied; a transition that does not apply leaves the session
// unchanged.
type Session struct {
	ID         string
	Order      []string
	Index      int
	Phase      Phase
	RevealedAt string
	Timer      Timer
}

func (s *Session) Start(id string, order []string, now time.Time) error {
	if len(order) == 0 {
		return ErrEmptyOrder
	}
	s.Timer.Stop(now)
	s.ID = id
	s.Order = append([]string(nil), order...)
	s.Index = 0
	s.Phase = PhaseShowingProblem
	s.RevealedAt = ""
	s.Timer.Start(now)
	return nil
}

func (s *Session) Reveal(now time.Time) bool {
	if s.Phase != PhaseShowingProblem {
		return false
	}
	s.Timer.Stop(now)
	s.RevealedAt = FormatElapsed(s.Timer.Elapsed(now))
	s.Phase = PhaseShowingSolution
	return true
}

func (s *Session) Advance(now time.Time) bool {
	if s.Phase != PhaseShowingSolution {
		return false
	}
	s.Index++
	s.RevealedAt = ""
	if s.Index >= len(s.Order) {
		s.Phase = PhaseFinished
		return true
	}
	s.Phase = PhaseShowingProblem
	s.Timer.Start(now)
	return true
}

// Exit returns to idle from any phase. The order is dropped; the catalog it
// came from is not touched.
func (s *Session) Exit(now time.Time) bool {
	s.Timer.Stop(now)
	changed := s.Phase != PhaseIdle
	s.Phase = PhaseIdle
	s.Order = nil
	s.Index = 0
	s.RevealedAt = ""
	return changed
}

// Current returns the id under study, if any.
func (s *Session) Current() (string, bool) {
	if s.Phase != PhaseShowingProblem && s.Phase != PhaseShowingSolution {
		return "", false
	}
	return s.Order[s.Index], true
}
