package in

import (
	"context"

	"drill/internal/modules/diagram/dto"
)

type Usecase interface {
	Start(ctx context.Context) (dto.TransitionOutput, error)
	Reveal(ctx context.Context) (dto.RevealOutput, error)
	Render(ctx context.Context, request dto.RenderRequest) (dto.TransitionOutput, error)
	Advance(ctx context.Context) (dto.TransitionOutput, error)
	View(ctx context.Context) dto.DrillView
	OpenArtifact(ctx context.Context) error
	Patterns(ctx context.Context) ([]dto.PatternOutput, error)
	Preview(ctx context.Context, name string) (dto.PatternPreview, error)
}
