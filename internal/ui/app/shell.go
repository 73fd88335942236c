package app

import (
	"context"

	diagramdto "drill/internal/modules/diagram/dto"
	practicedto "drill/internal/modules/practice/dto"
)

type View string

const (
	ViewHome     View = "home"
	ViewUpload   View = "upload"
	ViewPractice View = "practice"
	ViewDiagrams View = "diagrams"
	ViewFinished View = "finished"
	ViewHelp     View = "help"
	ViewAbout    View = "about"
)

// Flow names the session kind that reached the finished view.
type Flow string

const (
	FlowNone     Flow = ""
	FlowPractice Flow = "practice"
	FlowDiagrams Flow = "diagrams"
)

type PracticePort interface {
	Start(ctx context.Context) (practicedto.TransitionOutput, error)
	Reveal(ctx context.Context) (practicedto.TransitionOutput, error)
	Advance(ctx context.Context) (practicedto.TransitionOutput, error)
	ExitToHome(ctx context.Context) (practicedto.TransitionOutput, error)
	Tick(ctx context.Context, generation uint64) bool
	View(ctx context.Context) practicedto.SessionView
}

type DiagramPort interface {
	Start(ctx context.Context) (diagramdto.TransitionOutput, error)
	Reveal(ctx context.Context) (diagramdto.RevealOutput, error)
	Render(ctx context.Context, request diagramdto.RenderRequest) (diagramdto.TransitionOutput, error)
	Advance(ctx context.Context) (diagramdto.TransitionOutput, error)
	View(ctx context.Context) diagramdto.DrillView
	OpenArtifact(ctx context.Context) error
}

// Step tells the event loop what follow-up work a shell action needs.
type Step struct {
	// Tick is set when a practice timer (re)started and a tick chain for
	// its generation should be scheduled.
	Tick       bool
	Generation uint64
	// Render is set when a diagram was revealed and must be rendered.
	Render *diagramdto.RenderRequest
}

// Shell is the navigator: exactly one view is current, and entering or
// leaving certain views drives the practice and diagram sessions.
type Shell struct {
	current  View
	finished Flow
	practice PracticePort
	diagrams DiagramPort
	hooks    []func(View)
}

func NewShell(practice PracticePort, diagrams DiagramPort) *Shell {
	return &Shell{current: ViewHome, practice: practice, diagrams: diagrams}
}

// OnSwitch registers a hook that runs after every view switch.
func (s *Shell) OnSwitch(hook func(View)) {
	s.hooks = append(s.hooks, hook)
}

func (s *Shell) Current() View { return s.current }

// FinishedFlow reports which flow led to the finished view.
func (s *Shell) FinishedFlow() Flow { return s.finished }

// Navigate switches to v. Going home stops the practice timer; entering
// diagrams always starts a fresh drill.
func (s *Shell) Navigate(ctx context.Context, v View) error {
	switch v {
	case ViewHome:
		if _, err := s.practice.ExitToHome(ctx); err != nil {
			return err
		}
	case ViewDiagrams:
		if _, err := s.diagrams.Start(ctx); err != nil {
			return err
		}
	}
	s.switchTo(v)
	return nil
}

// StartPractice moves to the practice view only when a session actually
// started. It reports whether it did.
func (s *Shell) StartPractice(ctx context.Context) (Step, bool, error) {
	out, err := s.practice.Start(ctx)
	if err != nil {
		return Step{}, false, err
	}
	if !out.Applied {
		return Step{}, false, nil
	}
	s.switchTo(ViewPractice)
	return Step{Tick: true, Generation: out.View.Generation}, true, nil
}

// Primary performs the reveal-or-advance action of the current view.
func (s *Shell) Primary(ctx context.Context) (Step, error) {
	switch s.current {
	case ViewPractice:
		return s.primaryPractice(ctx)
	case ViewDiagrams:
		return s.primaryDiagrams(ctx)
	}
	return Step{}, nil
}

func (s *Shell) primaryPractice(ctx context.Context) (Step, error) {
	switch s.practice.View(ctx).Phase {
	case "showing-problem":
		_, err := s.practice.Reveal(ctx)
		return Step{}, err
	case "showing-solution":
		out, err := s.practice.Advance(ctx)
		if err != nil {
			return Step{}, err
		}
		if out.View.Phase == "finished" {
			s.finish(FlowPractice)
			return Step{}, nil
		}
		return Step{Tick: out.View.Running, Generation: out.View.Generation}, nil
	}
	return Step{}, nil
}

func (s *Shell) primaryDiagrams(ctx context.Context) (Step, error) {
	switch s.diagrams.View(ctx).Phase {
	case "question":
		out, err := s.diagrams.Reveal(ctx)
		if err != nil || !out.Applied {
			return Step{}, err
		}
		req := out.Request
		return Step{Render: &req}, nil
	case "revealed":
		out, err := s.diagrams.Advance(ctx)
		if err != nil {
			return Step{}, err
		}
		if out.View.Phase == "finished" {
			s.finish(FlowDiagrams)
		}
	}
	return Step{}, nil
}

func (s *Shell) finish(flow Flow) {
	s.finished = flow
	s.switchTo(ViewFinished)
}

func (s *Shell) switchTo(v View) {
	s.current = v
	for _, hook := range s.hooks {
		hook(v)
	}
}
