// Package dropout implements inverted dropout
package dropout

import "math/rand/v2"

import "github.com/pkg/errors"
import "gonum.org/v1/gonum/mat"

import "github.com/neurlang/gantrainer/learning"

// Dropout zeroes each element with probability p in training mode and scales
// the survivors by 1/(1-p). In inference mode it is the identity.
type Dropout struct {
	p    float64
	rng  *rand.Rand
	mask *mat.Dense
}

// MustNew creates a dropout layer with drop probability p
func MustNew(p float64, rng *rand.Rand) *Dropout {
	o, err := New(p, rng)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New creates a dropout layer with drop probability p
func New(p float64, rng *rand.Rand) (*Dropout, error) {
	if p < 0 || p >= 1 {
		return nil, errors.Errorf("dropout: probability must be in [0, 1), got %g", p)
	}
	if rng == nil {
		return nil, errors.New("dropout: nil random source")
	}
	return &Dropout{p: p, rng: rng}, nil
}

// Forward drops elements in training mode. The mask is kept for Backward;
// an inference-mode Forward clears it so Backward passes gradients through.
func (d *Dropout) Forward(x *mat.Dense, training bool) *mat.Dense {
	if !training || d.p == 0 {
		d.mask = nil
		return d.Predict(x)
	}
	r, c := x.Dims()
	keep := 1 / (1 - d.p)
	d.mask = mat.NewDense(r, c, nil)
	d.mask.Apply(func(_, _ int, _ float64) float64 {
		if d.rng.Float64() < d.p {
			return 0
		}
		return keep
	}, d.mask)

	var y mat.Dense
	y.MulElem(x, d.mask)
	return &y
}

// Predict returns a copy of x.
func (d *Dropout) Predict(x *mat.Dense) *mat.Dense {
	return mat.DenseCopyOf(x)
}

// Backward applies the mask of the last Forward to grad.
func (d *Dropout) Backward(grad *mat.Dense) *mat.Dense {
	if d.mask == nil {
		return mat.DenseCopyOf(grad)
	}
	var dx mat.Dense
	dx.MulElem(grad, d.mask)
	return &dx
}

// Params returns nil, dropout has no parameters.
func (d *Dropout) Params() []*learning.Param {
	return nil
}
