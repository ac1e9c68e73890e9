package graph

import (
	"fmt"
	"math"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
	"gonum.org/v1/gonum/mat"
)

// Rule is one variant of the closed set of weighting rules. Implementations
// live in this package only; the unexported methods seal the set.
type Rule interface {
	validate(n int) error
	// weights fills the n x n weight matrix from the distance matrix.
	// The result may be asymmetric; Build symmetrizes it.
	weights(dist *mat.Dense) *mat.Dense
}

// HeatKernel weighs every pair with exp(-d^2 / (2t^2)).
type HeatKernel struct {
	// Bandwidth is the kernel bandwidth t. Must be positive.
	Bandwidth float64
}

func (r HeatKernel) validate(int) error {
	if r.Bandwidth <= 0 {
		return fmt.Errorf("%w: heat kernel bandwidth must be positive, got %g", ErrInvalidInput, r.Bandwidth)
	}
	return nil
}

func (r HeatKernel) weights(dist *mat.Dense) *mat.Dense {
	n, _ := dist.Dims()
	w := mat.NewDense(n, n, nil)
	denom := 2 * r.Bandwidth * r.Bandwidth
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			d := dist.At(i, j)
			w.Set(i, j, math.Exp(-d*d/denom))
		}
	}
	return w
}

// KNN keeps only each row's K nearest neighbors. With Bandwidth > 0 kept
// edges carry heat-kernel weights, otherwise they are binary. The raw graph
// is directed; Build symmetrizes it.
type KNN struct {
	K int
	// Bandwidth of the heat kernel applied to kept edges; 0 means binary
	// weights.
	Bandwidth float64
}

func (r KNN) validate(n int) error {
	if r.K < 1 || r.K >= n {
		return fmt.Errorf("%w: k must be in [1, %d), got %d", ErrInvalidInput, n, r.K)
	}
	if r.Bandwidth < 0 {
		return fmt.Errorf("%w: bandwidth must be non-negative, got %g", ErrInvalidInput, r.Bandwidth)
	}
	return nil
}

func (r KNN) weights(dist *mat.Dense) *mat.Dense {
	n, _ := dist.Dims()
	w := mat.NewDense(n, n, nil)

	order := make([]int, 0, n-1)
	for i := 0; i < n; i++ {
		order = order[:0]
		for j := 0; j < n; j++ {
			if j != i {
				order = append(order, j)
			}
		}
		i := i
		sort.SliceStable(order, func(a, b int) bool {
			return dist.At(i, order[a]) < dist.At(i, order[b])
		})

		neighbors := roaring.New()
		for _, j := range order[:r.K] {
			neighbors.Add(uint32(j))
		}
		it := neighbors.Iterator()
		for it.HasNext() {
			j := int(it.Next())
			if r.Bandwidth > 0 {
				d := dist.At(i, j)
				w.Set(i, j, math.Exp(-d*d/(2*r.Bandwidth*r.Bandwidth)))
			} else {
				w.Set(i, j, 1)
			}
		}
	}
	return w
}

// LabelGated weighs pairs with a heat kernel gated by label agreement:
// intra-class pairs are scaled by IntraWeight, inter-class pairs by
// InterWeight. Supervised reductions use it to pull classes together
// (IntraWeight > InterWeight) or push them apart.
type LabelGated struct {
	// Labels is the length-n class label vector. Every class needs at
	// least 2 members.
	Labels []int
	// Bandwidth of the underlying heat kernel. Must be positive.
	Bandwidth float64
	// IntraWeight scales same-class pair weights. Must be non-negative.
	IntraWeight float64
	// InterWeight scales cross-class pair weights. Must be non-negative.
	InterWeight float64
}

func (r LabelGated) validate(n int) error {
	if len(r.Labels) != n {
		return fmt.Errorf("%w: %d labels for %d rows", ErrInvalidInput, len(r.Labels), n)
	}
	if r.Bandwidth <= 0 {
		return fmt.Errorf("%w: heat kernel bandwidth must be positive, got %g", ErrInvalidInput, r.Bandwidth)
	}
	if r.IntraWeight < 0 || r.InterWeight < 0 {
		return fmt.Errorf("%w: class weights must be non-negative", ErrInvalidInput)
	}
	return NewClassIndex(r.Labels).Validate()
}

func (r LabelGated) weights(dist *mat.Dense) *mat.Dense {
	n, _ := dist.Dims()
	ix := NewClassIndex(r.Labels)
	w := mat.NewDense(n, n, nil)
	denom := 2 * r.Bandwidth * r.Bandwidth
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			d := dist.At(i, j)
			base := math.Exp(-d * d / denom)
			if ix.SameClass(i, j) {
				w.Set(i, j, r.IntraWeight*base)
			} else {
				w.Set(i, j, r.InterWeight*base)
			}
		}
	}
	return w
}
