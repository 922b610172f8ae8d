package synth

import (
	"math/rand/v2"
	"sync"
)

// Rand is the random source used by all synthetic generators.
// Float64 returns a value in [0, 1).
type Rand interface {
	Float64() float64
}

// lockedRand makes a *rand.Rand safe for the scheduler and command goroutines.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// NewRand returns a deterministic source for the given seed.
func NewRand(seed uint64) Rand {
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// DefaultRand returns an entropy-seeded source.
func DefaultRand() Rand {
	return &lockedRand{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// Uniform returns a value in [lo, hi).
func Uniform(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Intn returns a value in [0, n) for n > 0.
func Intn(r Rand, n int) int {
	i := int(r.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
