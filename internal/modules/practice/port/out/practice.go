package out

import (
	"context"

	"drill/internal/modules/practice/domain"
)

// CatalogSource yields the exercises a session is drawn from.
type CatalogSource interface {
	Exercises(ctx context.Context) ([]domain.Exercise, error)
}
