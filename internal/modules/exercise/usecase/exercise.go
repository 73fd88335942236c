package usecase

import (
	"context"
	"fmt"

	"drill/internal/modules/exercise/domain"
	"drill/internal/modules/exercise/dto"
	exercisein "drill/internal/modules/exercise/port/in"
	"drill/internal/modules/exercise/service"
	apperrors "drill/internal/platform/errors"
)

type Interactor struct {
	svc *service.IngestService
}

func NewInteractor(svc *service.IngestService) exercisein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Ingest(ctx context.Context, input dto.IngestInput) (dto.IngestOutput, error) {
	catalog, errs, err := i.svc.Ingest(ctx, input.Paths)
	if err != nil {
		return dto.IngestOutput{}, err
	}
	return dto.IngestOutput{
		Count:  catalog.Len(),
		IDs:    catalog.IDs(),
		Errors: errs,
		Ready:  catalog.Len() > 0,
	}, nil
}

func (i *Interactor) Catalog(ctx context.Context) (dto.CatalogOutput, error) {
	catalog, err := i.svc.Catalog(ctx)
	if err != nil {
		return dto.CatalogOutput{}, err
	}
	exercises := catalog.Exercises()
	out := dto.CatalogOutput{Exercises: make([]dto.ExerciseOutput, 0, len(exercises))}
	for _, ex := range exercises {
		out.Exercises = append(out.Exercises, toOutput(ex))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, id string) (dto.ExerciseOutput, error) {
	catalog, err := i.svc.Catalog(ctx)
	if err != nil {
		return dto.ExerciseOutput{}, err
	}
	ex, ok := catalog.Get(domain.NormalizeID(id))
	if !ok {
		return dto.ExerciseOutput{}, fmt.Errorf("exercise %s: %w", id, apperrors.ErrNotFound)
	}
	return toOutput(ex), nil
}

func toOutput(ex domain.Exercise) dto.ExerciseOutput {
	return dto.ExerciseOutput{ID: ex.ID, Problem: ex.Problem, Solution: ex.Solution}
}
