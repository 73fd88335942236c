package domain_test

import (
	"errors"
	"slices"
	"testing"

	"drill/internal/modules/exercise/domain"
	apperrors "drill/internal/platform/errors"
)

func ref(id string, kind domain.Kind) domain.FileRef {
	return domain.FileRef{ID: id, Kind: kind}
}

func TestBuildCommitsOnlyCompletePairs(t *testing.T) {
	t.Parallel()
	p := domain.NewPairing()
	p.Fill(ref("1", domain.KindProblem), "A")
	p.Fill(ref("1", domain.KindSolution), "B")
	p.Fill(ref("2", domain.KindProblem), "only problem")
	p.Fill(ref("10", domain.KindSolution), "only solution")
	p.Reserve(ref("3", domain.KindProblem))

	catalog, errs := p.Build()
	if catalog.Len() != 1 {
		t.Fatalf("expected one complete exercise, got %d", catalog.Len())
	}
	ex, ok := catalog.Get("1")
	if !ok || ex.Problem != "A" || ex.Solution != "B" {
		t.Fatalf("unexpected exercise 1: %+v", ex)
	}
	want := []string{
		"missing solution for exercise 2",
		"missing problem for exercise 3",
		"missing solution for exercise 3",
		"missing problem for exercise 10",
	}
	if !slices.Equal(errs, want) {
		t.Fatalf("unexpected errors:\n got %q\nwant %q", errs, want)
	}
}

func TestEmptyContentCountsAsMissing(t *testing.T) {
	t.Parallel()
	p := domain.NewPairing()
	p.Fill(ref("4", domain.KindProblem), "")
	p.Fill(ref("4", domain.KindSolution), "B")
	catalog, errs := p.Build()
	if catalog.Len() != 0 {
		t.Fatalf("empty side must not be committed")
	}
	if !slices.Equal(errs, []string{"missing problem for exercise 4"}) {
		t.Fatalf("unexpected errors: %q", errs)
	}
}

func TestLaterFillWins(t *testing.T) {
	t.Parallel()
	p := domain.NewPairing()
	p.Fill(ref("1", domain.KindProblem), "first")
	p.Fill(ref("1", domain.KindProblem), "second")
	p.Fill(ref("1", domain.KindSolution), "sol")
	catalog, _ := p.Build()
	ex, _ := catalog.Get("1")
	if ex.Problem != "second" {
		t.Fatalf("expected last write to win, got %q", ex.Problem)
	}
}

func TestCatalogIDsAreNumericallySorted(t *testing.T) {
	t.Parallel()
	catalog := domain.NewCatalog(
		domain.Exercise{ID: "10", Problem: "p", Solution: "s"},
		domain.Exercise{ID: "2", Problem: "p", Solution: "s"},
		domain.Exercise{ID: "1", Problem: "p", Solution: "s"},
	)
	if ids := catalog.IDs(); !slices.Equal(ids, []string{"1", "2", "10"}) {
		t.Fatalf("unexpected order: %v", ids)
	}
	if got := catalog.Exercises(); len(got) != 3 || got[2].ID != "10" {
		t.Fatalf("unexpected exercises: %+v", got)
	}
}

func TestExerciseValidate(t *testing.T) {
	t.Parallel()
	base := domain.Exercise{ID: "1", Problem: "p", Solution: "s"}
	if err := base.Validate(); err != nil {
		t.Fatalf("exercise should be valid: %v", err)
	}
	for name, mutate := range map[string]func(e *domain.Exercise){
		"id":       func(e *domain.Exercise) { e.ID = " " },
		"problem":  func(e *domain.Exercise) { e.Problem = "" },
		"solution": func(e *domain.Exercise) { e.Solution = "" },
	} {
		ex := base
		mutate(&ex)
		if err := ex.Validate(); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("missing %s should be invalid input, got %v", name, err)
		}
	}
}

func TestBuildDropsEmptySides(t *testing.T) {
	t.Parallel()
	p := domain.NewPairing()
	p.Fill(ref("4", domain.KindProblem), "")
	p.Fill(ref("4", domain.KindSolution), "answer")

	catalog, errs := p.Build()
	if catalog.Len() != 0 {
		t.Fatalf("an empty problem must keep the exercise out of the catalog")
	}
	if !slices.Equal(errs, []string{domain.MissingProblem("4")}) {
		t.Fatalf("unexpected errors: %q", errs)
	}
}
