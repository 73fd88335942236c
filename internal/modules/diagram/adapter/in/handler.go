package in

import (
	"context"

	"drill/internal/modules/diagram/dto"
	diagramin "drill/internal/modules/diagram/port/in"
)

// Handler serves both the TUI drill and the patterns CLI commands.
type Handler struct {
	usecase diagramin.Usecase
}

func NewHandler(usecase diagramin.Usecase) Handler {
	return Handler{usecase: usecase}
}

func (h Handler) Start(ctx context.Context) (dto.TransitionOutput, error) {
	return h.usecase.Start(ctx)
}

func (h Handler) Reveal(ctx context.Context) (dto.RevealOutput, error) {
	return h.usecase.Reveal(ctx)
}

func (h Handler) Render(ctx context.Context, request dto.RenderRequest) (dto.TransitionOutput, error) {
	return h.usecase.Render(ctx, request)
}

func (h Handler) Advance(ctx context.Context) (dto.TransitionOutput, error) {
	return h.usecase.Advance(ctx)
}

func (h Handler) View(ctx context.Context) dto.DrillView {
	return h.usecase.View(ctx)
}

func (h Handler) OpenArtifact(ctx context.Context) error {
	return h.usecase.OpenArtifact(ctx)
}

func (h Handler) Patterns(ctx context.Context) ([]dto.PatternOutput, error) {
	return h.usecase.Patterns(ctx)
}

func (h Handler) Preview(ctx context.Context, name string) (dto.PatternPreview, error) {
	return h.usecase.Preview(ctx, name)
}
