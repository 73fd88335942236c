package shuffle_test

import (
	"slices"
	"testing"

	"drill/internal/platform/shuffle"
)

func TestPermIsPermutation(t *testing.T) {
	t.Parallel()
	s := shuffle.New(42)
	for n := 0; n < 20; n++ {
		perm := s.Perm(n)
		if len(perm) != n {
			t.Fatalf("expected %d entries, got %d", n, len(perm))
		}
		sorted := slices.Clone(perm)
		slices.Sort(sorted)
		for i, v := range sorted {
			if v != i {
				t.Fatalf("perm(%d) is not a permutation: %v", n, perm)
			}
		}
	}
}

func TestSameSeedSameSequence(t *testing.T) {
	t.Parallel()
	a := shuffle.New(7)
	b := shuffle.New(7)
	for i := 0; i < 5; i++ {
		if pa, pb := a.Perm(12), b.Perm(12); !slices.Equal(pa, pb) {
			t.Fatalf("round %d: seeded shufflers diverged: %v vs %v", i, pa, pb)
		}
	}
}

func TestApplyKeepsEveryItem(t *testing.T) {
	t.Parallel()
	items := []string{"a", "b", "c", "d", "e"}
	out := shuffle.Apply(shuffle.New(3), items)
	if len(out) != len(items) {
		t.Fatalf("expected %d items, got %d", len(items), len(out))
	}
	got := slices.Clone(out)
	slices.Sort(got)
	if !slices.Equal(got, items) {
		t.Fatalf("apply lost or duplicated items: %v", out)
	}
	if !slices.Equal(items, []string{"a", "b", "c", "d", "e"}) {
		t.Fatalf("apply must not mutate its input: %v", items)
	}
}

func TestIdentityKeepsOrder(t *testing.T) {
	t.Parallel()
	out := shuffle.Apply(shuffle.Identity{}, []int{3, 1, 2})
	if !slices.Equal(out, []int{3, 1, 2}) {
		t.Fatalf("identity reordered items: %v", out)
	}
}
