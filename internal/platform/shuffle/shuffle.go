// Package shuffle provides the permutation source used to order practice
// and drill sessions.
package shuffle

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Shuffler produces permutations of [0, n).
type Shuffler interface {
	Perm(n int) []int
}

// FisherYates is a seeded Fisher-Yates shuffler. The same seed always yields
// the same sequence of permutations.
type FisherYates struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a FisherYates seeded with seed. A zero seed picks a
// time-derived seed.
func New(seed uint64) *FisherYates {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &FisherYates{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (f *FisherYates) Perm(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := n - 1; i > 0; i-- {
		j := f.rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Apply returns a copy of items reordered by a permutation from s.
func Apply[T any](s Shuffler, items []T) []T {
	perm := s.Perm(len(items))
	out := make([]T, len(items))
	for i, idx := range perm {
		out[i] = items[idx]
	}
	return out
}

// Identity never reorders. Useful where order must stay stable.
type Identity struct{}

func (Identity) Perm(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
