package domain

import (
	"fmt"
	"slices"
	"strings"

	apperrors "drill/internal/platform/errors"
)

type Kind string

const (
	KindProblem  Kind = "problem"
	KindSolution Kind = "solution"
)

type Exercise struct {
	ID       string
	Problem  string
	Solution string
}

// Validate reports whether e can enter a catalog.
func (e Exercise) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("%w: exercise id is required", apperrors.ErrInvalidInput)
	}
	if e.Problem == "" {
		return fmt.Errorf("%w: exercise %s has no problem", apperrors.ErrInvalidInput, e.ID)
	}
	if e.Solution == "" {
		return fmt.Errorf("%w: exercise %s has no solution", apperrors.ErrInvalidInput, e.ID)
	}
	return nil
}

// Catalog is the immutable set of complete exercises produced by one
// ingestion.
type Catalog struct {
	items map[string]Exercise
}

func NewCatalog(exercises ...Exercise) Catalog {
	items := make(map[string]Exercise, len(exercises))
	for _, ex := range exercises {
		items[ex.ID] = ex
	}
	return Catalog{items: items}
}

func (c Catalog) Len() int {
	return len(c.items)
}

func (c Catalog) Get(id string) (Exercise, bool) {
	ex, ok := c.items[id]
	return ex, ok
}

// IDs returns the exercise ids in ascending numeric order.
func (c Catalog) IDs() []string {
	ids := make([]string, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, CompareIDs)
	return ids
}

func (c Catalog) Exercises() []Exercise {
	ids := c.IDs()
	out := make([]Exercise, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.items[id])
	}
	return out
}
