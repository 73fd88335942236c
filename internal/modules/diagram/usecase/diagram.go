package usecase

import (
	"context"

	"drill/internal/modules/diagram/domain"
	"drill/internal/modules/diagram/dto"
	diagramin "drill/internal/modules/diagram/port/in"
	"drill/internal/modules/diagram/service"
)

type Interactor struct {
	svc *service.DrillService
}

func NewInteractor(svc *service.DrillService) diagramin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Start(ctx context.Context) (dto.TransitionOutput, error) {
	if err := i.svc.Start(ctx); err != nil {
		return dto.TransitionOutput{}, err
	}
	return dto.TransitionOutput{Applied: true, View: i.View(ctx)}, nil
}

func (i *Interactor) Reveal(ctx context.Context) (dto.RevealOutput, error) {
	request, applied := i.svc.Reveal(ctx)
	return dto.RevealOutput{
		Applied: applied,
		Request: dto.RenderRequest{ID: request.ID, Pattern: request.Pattern, Definition: request.Definition},
		View:    i.View(ctx),
	}, nil
}

func (i *Interactor) Render(ctx context.Context, request dto.RenderRequest) (dto.TransitionOutput, error) {
	applied := i.svc.Render(ctx, domain.RenderRequest{ID: request.ID, Pattern: request.Pattern, Definition: request.Definition})
	return dto.TransitionOutput{Applied: applied, View: i.View(ctx)}, nil
}

func (i *Interactor) Advance(ctx context.Context) (dto.TransitionOutput, error) {
	return dto.TransitionOutput{Applied: i.svc.Advance(ctx), View: i.View(ctx)}, nil
}

func (i *Interactor) View(ctx context.Context) dto.DrillView {
	s := i.svc.Snapshot(ctx)
	view := dto.DrillView{
		Phase:        string(s.Phase),
		Total:        len(s.Order),
		RenderID:     s.RenderID,
		RenderStatus: string(s.Status),
		Diagram:      s.Artifact.Text,
		ArtifactPath: s.Artifact.Path,
	}
	if p, ok := s.Current(); ok {
		view.Pattern = p.Name
		view.Position = s.Index + 1
	}
	if s.Phase == domain.PhaseFinished {
		view.Position = len(s.Order)
	}
	return view
}

func (i *Interactor) OpenArtifact(ctx context.Context) error {
	return i.svc.OpenArtifact(ctx)
}

func (i *Interactor) Patterns(ctx context.Context) ([]dto.PatternOutput, error) {
	patterns, err := i.svc.Patterns(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PatternOutput, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, dto.PatternOutput{Name: p.Name, Definition: p.Definition})
	}
	return out, nil
}

func (i *Interactor) Preview(ctx context.Context, name string) (dto.PatternPreview, error) {
	p, artifact, err := i.svc.Preview(ctx, name)
	if err != nil {
		return dto.PatternPreview{}, err
	}
	return dto.PatternPreview{Name: p.Name, Definition: p.Definition, Diagram: artifact.Text}, nil
}
