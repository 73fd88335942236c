package usecase

import (
	"context"

	"drill/internal/modules/practice/domain"
	"drill/internal/modules/practice/dto"
	practicein "drill/internal/modules/practice/port/in"
	"drill/internal/modules/practice/service"
)

type Interactor struct {
	svc *service.PracticeService
}

func NewInteractor(svc *service.PracticeService) practicein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Start(ctx context.Context) (dto.TransitionOutput, error) {
	applied, err := i.svc.Start(ctx)
	if err != nil {
		return dto.TransitionOutput{}, err
	}
	return dto.TransitionOutput{Applied: applied, View: i.View(ctx)}, nil
}

func (i *Interactor) Reveal(ctx context.Context) (dto.TransitionOutput, error) {
	return dto.TransitionOutput{Applied: i.svc.Reveal(ctx), View: i.View(ctx)}, nil
}

func (i *Interactor) Advance(ctx context.Context) (dto.TransitionOutput, error) {
	return dto.TransitionOutput{Applied: i.svc.Advance(ctx), View: i.View(ctx)}, nil
}

func (i *Interactor) ExitToHome(ctx context.Context) (dto.TransitionOutput, error) {
	return dto.TransitionOutput{Applied: i.svc.ExitToHome(ctx), View: i.View(ctx)}, nil
}

func (i *Interactor) Tick(ctx context.Context, generation uint64) bool {
	return i.svc.Tick(ctx, generation)
}

func (i *Interactor) View(ctx context.Context) dto.SessionView {
	session, current, elapsed := i.svc.Snapshot(ctx)
	view := dto.SessionView{
		SessionID:  session.ID,
		Phase:      string(session.Phase),
		Total:      len(session.Order),
		Elapsed:    elapsed,
		RevealTime: session.RevealedAt,
		Running:    session.Timer.Running(),
		Generation: session.Timer.Generation(),
	}
	switch session.Phase {
	case domain.PhaseShowingProblem, domain.PhaseShowingSolution:
		view.ExerciseID = current.ID
		view.Position = session.Index + 1
		view.Problem = current.Problem
		if session.Phase == domain.PhaseShowingSolution {
			view.Solution = current.Solution
		}
	case domain.PhaseFinished:
		view.Position = len(session.Order)
	}
	return view
}
