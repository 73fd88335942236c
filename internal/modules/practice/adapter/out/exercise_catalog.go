package out

import (
	"context"

	exercisein "drill/internal/modules/exercise/port/in"
	"drill/internal/modules/practice/domain"
	practiceout "drill/internal/modules/practice/port/out"
)

// ExerciseCatalog reads the active catalog through the exercise module.
type ExerciseCatalog struct {
	exercises exercisein.Usecase
}

func NewExerciseCatalog(exercises exercisein.Usecase) practiceout.CatalogSource {
	return &ExerciseCatalog{exercises: exercises}
}

func (c *ExerciseCatalog) Exercises(ctx context.Context) ([]domain.Exercise, error) {
	catalog, err := c.exercises.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Exercise, 0, len(catalog.Exercises))
	for _, ex := range catalog.Exercises {
		out = append(out, domain.Exercise{ID: ex.ID, Problem: ex.Problem, Solution: ex.Solution})
	}
	return out, nil
}
