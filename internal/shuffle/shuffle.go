// Package shuffle randomizes presentation order.
package shuffle

import (
	"math/rand/v2"
	"sync"
)

// Shuffler produces uniformly random permutations with an unbiased
// Fisher–Yates shuffle. A Shuffler is safe for concurrent use.
type Shuffler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Shuffler seeded with seed. A zero seed draws a random one.
func New(seed int64) *Shuffler {
	s := uint64(seed)
	if seed == 0 {
		s = rand.Uint64()
	}
	return &Shuffler{rng: rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))}
}

// Perm returns a random permutation of [0, n).
func (s *Shuffler) Perm(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	Shuffle(s, perm)
	return perm
}

// Shuffle permutes items in place. Zero or one element is a no-op.
func Shuffle[T any](s *Shuffler, items []T) {
	if len(items) < 2 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(items) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
