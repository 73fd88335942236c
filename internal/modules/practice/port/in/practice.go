package in

import (
	"context"

	"drill/internal/modules/practice/dto"
)

type Usecase interface {
	Start(ctx context.Context) (dto.TransitionOutput, error)
	Reveal(ctx context.Context) (dto.TransitionOutput, error)
	Advance(ctx context.Context) (dto.TransitionOutput, error)
	ExitToHome(ctx context.Context) (dto.TransitionOutput, error)
	Tick(ctx context.Context, generation uint64) bool
	View(ctx context.Context) dto.SessionView
}
