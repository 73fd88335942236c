package in

import (
	"context"

	"drill/internal/modules/exercise/dto"
)

type Usecase interface {
	Ingest(ctx context.Context, input dto.IngestInput) (dto.IngestOutput, error)
	Catalog(ctx context.Context) (dto.CatalogOutput, error)
	Get(ctx context.Context, id string) (dto.ExerciseOutput, error)
}
