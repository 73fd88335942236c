package in

import (
	"context"

	"drill/internal/modules/practice/dto"
	practicein "drill/internal/modules/practice/port/in"
)

// TUIHandler exposes the practice session to the terminal UI.
type TUIHandler struct {
	usecase practicein.Usecase
}

func NewTUIHandler(usecase practicein.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Start(ctx context.Context) (dto.TransitionOutput, error) {
	return h.usecase.Start(ctx)
}

func (h TUIHandler) Reveal(ctx context.Context) (dto.TransitionOutput, error) {
	return h.usecase.Reveal(ctx)
}

func (h TUIHandler) Advance(ctx context.Context) (dto.TransitionOutput, error) {
	return h.usecase.Advance(ctx)
}

func (h TUIHandler) ExitToHome(ctx context.Context) (dto.TransitionOutput, error) {
	return h.usecase.ExitToHome(ctx)
}

func (h TUIHandler) Tick(ctx context.Context, generation uint64) bool {
	return h.usecase.Tick(ctx, generation)
}

func (h TUIHandler) View(ctx context.Context) dto.SessionView {
	return h.usecase.View(ctx)
}
