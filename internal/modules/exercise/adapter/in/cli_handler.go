package in

import (
	"context"

	"drill/internal/modules/exercise/dto"
	exercisein "drill/internal/modules/exercise/port/in"
)

type CLIHandler struct {
	usecase exercisein.Usecase
}

func NewCLIHandler(usecase exercisein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Ingest(ctx context.Context, paths []string) (dto.IngestOutput, error) {
	return h.usecase.Ingest(ctx, dto.IngestInput{Paths: paths})
}

func (h CLIHandler) Catalog(ctx context.Context) (dto.CatalogOutput, error) {
	return h.usecase.Catalog(ctx)
}

func (h CLIHandler) Get(ctx context.Context, id string) (dto.ExerciseOutput, error) {
	return h.usecase.Get(ctx, id)
}
