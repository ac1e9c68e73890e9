package graph

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// PairwiseDistances computes the n x n Euclidean distance matrix of the rows
// of x. Rows are fanned out across workers; the result is deterministic.
func PairwiseDistances(x *mat.Dense) *mat.Dense {
	d := PairwiseSquaredDistances(x)
	n, _ := d.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d.Set(i, j, math.Sqrt(d.At(i, j)))
		}
	}
	return d
}

// PairwiseSquaredDistances computes the n x n squared Euclidean distance
// matrix of the rows of x.
func PairwiseSquaredDistances(x *mat.Dense) *mat.Dense {
	n, p := x.Dims()
	out := mat.NewDense(n, n, nil)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			ri := x.RawRowView(i)
			for j := i + 1; j < n; j++ {
				rj := x.RawRowView(j)
				sum := 0.0
				for k := 0; k < p; k++ {
					diff := ri[k] - rj[k]
					sum += diff * diff
				}
				out.Set(i, j, sum)
				out.Set(j, i, sum)
			}
			return nil
		})
	}
	// Workers never fail; the group is used for the fan-out/join only.
	_ = g.Wait()
	return out
}
