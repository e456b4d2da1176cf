// Package datasets implements the samplers feeding the trainers
package datasets

import "math/rand/v2"

import "gonum.org/v1/gonum/mat"
import "gonum.org/v1/gonum/stat/distuv"

// Sampler draws n samples, one per row. n is always positive.
type Sampler func(n int) *mat.Dense

// BinaryLatent samples latent vectors of dim independent fair bits (0 or 1).
func BinaryLatent(dim int, rng *rand.Rand) Sampler {
	return func(n int) *mat.Dense {
		out := mat.NewDense(n, dim, nil)
		out.Apply(func(_, _ int, _ float64) float64 {
			return float64(rng.IntN(2))
		}, out)
		return out
	}
}

// GaussianLatent samples latent vectors of dim independent standard normals.
func GaussianLatent(dim int, rng *rand.Rand) Sampler {
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}
	return func(n int) *mat.Dense {
		out := mat.NewDense(n, dim, nil)
		out.Apply(func(_, _ int, _ float64) float64 {
			return normal.Rand()
		}, out)
		return out
	}
}

// Stack returns the rows of top followed by the rows of bottom. Either may be
// nil, not both.
func Stack(top, bottom *mat.Dense) *mat.Dense {
	if top == nil {
		return mat.DenseCopyOf(bottom)
	}
	if bottom == nil {
		return mat.DenseCopyOf(top)
	}
	var out mat.Dense
	out.Stack(top, bottom)
	return &out
}

// Labels returns a column of zeros followed by a column of ones.
func Labels(zeros, ones int) *mat.Dense {
	out := mat.NewDense(zeros+ones, 1, nil)
	for i := zeros; i < zeros+ones; i++ {
		out.Set(i, 0, 1)
	}
	return out
}
