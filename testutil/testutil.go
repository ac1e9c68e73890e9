package testutil

import (
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// RNG is a seeded, thread-safe random number generator. Tests use a fixed
// seed so data (and therefore embeddings) are reproducible.
type RNG struct {
	mu   sync.Mutex
	rand *rand.Rand
	seed int64
}

// NewRNG creates an RNG with the given seed.
func NewRNG(seed int64) *RNG {
	return &RNG{rand: rand.New(rand.NewSource(seed)), seed: seed}
}

// Reset rewinds the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewSource(r.seed))
}

// Float64 returns a pseudo-random number in [0.0, 1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// NormFloat64 returns a standard-normal pseudo-random number.
func (r *RNG) NormFloat64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.NormFloat64()
}

// Intn returns a non-negative pseudo-random number in [0, n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// RandomMatrix returns an n x p matrix with standard-normal entries.
func RandomMatrix(rng *RNG, n, p int) *mat.Dense {
	out := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			out.Set(i, j, rng.NormFloat64())
		}
	}
	return out
}

// GaussianClusters returns n rows drawn from k spherical Gaussian clusters
// in p dimensions plus the cluster label of each row. Cluster centers sit on
// scaled coordinate axes so clusters are well separated.
func GaussianClusters(rng *RNG, n, p, k int, spread float64) (*mat.Dense, []int) {
	out := mat.NewDense(n, p, nil)
	labels := make([]int, n)
	for i := 0; i < n; i++ {
		c := i % k
		labels[i] = c
		for j := 0; j < p; j++ {
			center := 0.0
			if j == c%p {
				center = 10
			}
			out.Set(i, j, center+spread*rng.NormFloat64())
		}
	}
	return out, labels
}

// RandomSPD returns a random symmetric positive-definite n x n matrix
// (A'A + I).
func RandomSPD(rng *RNG, n int) *mat.SymDense {
	a := RandomMatrix(rng, n, n)
	var ata mat.Dense
	ata.Mul(a.T(), a)
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := 0.5 * (ata.At(i, j) + ata.At(j, i))
			if i == j {
				v++
			}
			out.SetSym(i, j, v)
		}
	}
	return out
}
