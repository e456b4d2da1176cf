// Package distance measures how far apart two empirical distributions are.
package distance

import "math"
import "sort"
import "github.com/pkg/errors"
import "gonum.org/v1/gonum/floats"
import "gonum.org/v1/gonum/mat"
import "github.com/neurlang/gantrainer/parallel"

// Wasserstein1D returns the first Wasserstein (earth mover's) distance
// between the empirical distributions of the samples u and v. It is NaN when
// either sample is empty. Inputs are not modified.
func Wasserstein1D(u, v []float64) float64 {
	if len(u) == 0 || len(v) == 0 {
		return math.NaN()
	}
	us := sorted(u)
	vs := sorted(v)
	if len(us) == len(vs) {
		// equal weights: the optimal plan matches order statistics
		return floats.Distance(us, vs, 1) / float64(len(us))
	}

	// integrate |U(x) - V(x)| over the merged support
	all := append(append(make([]float64, 0, len(us)+len(vs)), us...), vs...)
	sort.Float64s(all)
	var sum float64
	for i := 0; i+1 < len(all); i++ {
		width := all[i+1] - all[i]
		if width == 0 {
			continue
		}
		cu := float64(upper(us, all[i])) / float64(len(us))
		cv := float64(upper(vs, all[i])) / float64(len(vs))
		sum += math.Abs(cu-cv) * width
	}
	return sum
}

func sorted(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	sort.Float64s(out)
	return out
}

// upper counts the elements of the sorted slice s which are <= x.
func upper(s []float64, x float64) int {
	return sort.Search(len(s), func(i int) bool { return s[i] > x })
}

// Pairwise returns the Wasserstein1D distance between row i of x and row i
// of y for every i, treating the values of each row as one sample. The rows
// are processed by up to threads goroutines.
func Pairwise(x, y *mat.Dense, threads int) ([]float64, error) {
	rx, _ := x.Dims()
	ry, _ := y.Dims()
	if rx != ry {
		return nil, errors.Errorf("distance: row count mismatch %d != %d", rx, ry)
	}
	out := make([]float64, rx)
	parallel.ForEach(rx, threads, func(i int) {
		out[i] = Wasserstein1D(x.RawRowView(i), y.RawRowView(i))
	})
	return out, nil
}
