// Package full implements a fully connected layer
package full

import "math"
import "math/rand/v2"

import "github.com/pkg/errors"
import "gonum.org/v1/gonum/mat"
import "gonum.org/v1/gonum/stat/distuv"

import "github.com/neurlang/gantrainer/learning"

// FullLayer computes x*W + b.
type FullLayer struct {
	in, out int
	weights *learning.Param
	bias    *learning.Param

	x *mat.Dense
}

// MustNew creates a new full layer with in inputs and out outputs
func MustNew(in, out int, rng *rand.Rand) *FullLayer {
	o, err := New(in, out, rng)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New creates a new full layer with in inputs and out outputs. Weights and
// bias are drawn uniformly from +-1/sqrt(in).
func New(in, out int, rng *rand.Rand) (o *FullLayer, err error) {
	if in <= 0 || out <= 0 {
		return nil, errors.Errorf("full: invalid shape %dx%d", in, out)
	}
	if rng == nil {
		return nil, errors.New("full: nil random source")
	}
	o = new(FullLayer)
	o.in = in
	o.out = out
	o.weights = learning.NewParam(in, out)
	o.bias = learning.NewParam(1, out)

	bound := 1 / math.Sqrt(float64(in))
	u := distuv.Uniform{Min: -bound, Max: bound, Src: rng}
	for _, p := range []*learning.Param{o.weights, o.bias} {
		value, _ := p.Data()
		for i := range value {
			value[i] = u.Rand()
		}
	}
	return
}

// Shape returns the number of inputs and outputs.
func (f *FullLayer) Shape() (in, out int) {
	return f.in, f.out
}

// Weights returns the weight matrix parameter.
func (f *FullLayer) Weights() *learning.Param {
	return f.weights
}

// Bias returns the bias row parameter.
func (f *FullLayer) Bias() *learning.Param {
	return f.bias
}

// Forward computes x*W + b and remembers x.
func (f *FullLayer) Forward(x *mat.Dense, training bool) *mat.Dense {
	f.x = x
	return f.Predict(x)
}

// Predict computes x*W + b.
func (f *FullLayer) Predict(x *mat.Dense) *mat.Dense {
	rows, _ := x.Dims()
	var y mat.Dense
	y.Mul(x, f.weights.Value)
	bias := f.bias.Value.RawRowView(0)
	for i := 0; i < rows; i++ {
		row := y.RawRowView(i)
		for j := range row {
			row[j] += bias[j]
		}
	}
	return &y
}

// Backward accumulates dW += x'g and db += sum of g rows, and returns gW'.
func (f *FullLayer) Backward(grad *mat.Dense) *mat.Dense {
	if f.x == nil {
		panic("full: Backward before Forward")
	}
	var dw mat.Dense
	dw.Mul(f.x.T(), grad)
	f.weights.Grad.Add(f.weights.Grad, &dw)

	rows, _ := grad.Dims()
	db := f.bias.Grad.RawRowView(0)
	for i := 0; i < rows; i++ {
		for j, g := range grad.RawRowView(i) {
			db[j] += g
		}
	}

	var dx mat.Dense
	dx.Mul(grad, f.weights.Value.T())
	return &dx
}

// Params returns the weights and the bias.
func (f *FullLayer) Params() []*learning.Param {
	return []*learning.Param{f.weights, f.bias}
}
