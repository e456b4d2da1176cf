// Package learning implements the optimizers which update model parameters
// from their accumulated gradients.
package learning

import "gonum.org/v1/gonum/mat"

// Param is a trainable tensor together with its accumulated gradient.
type Param struct {
	Value *mat.Dense
	Grad  *mat.Dense
}

// NewParam allocates a zero parameter of r rows and c columns.
func NewParam(r, c int) *Param {
	return &Param{
		Value: mat.NewDense(r, c, nil),
		Grad:  mat.NewDense(r, c, nil),
	}
}

// ZeroGrad clears the accumulated gradient.
func (p *Param) ZeroGrad() {
	p.Grad.Zero()
}

// Data returns the backing slices of value and gradient. Parameters are
// always allocated contiguously, so element i of one matches element i of
// the other.
func (p *Param) Data() (value, grad []float64) {
	return p.Value.RawMatrix().Data, p.Grad.RawMatrix().Data
}

// Optimizer updates a fixed set of parameters, bound at construction.
type Optimizer interface {

	// ZeroGrad clears the gradients of every bound parameter.
	ZeroGrad()

	// Step applies one update from the accumulated gradients.
	Step()
}

// ZeroGrads clears the gradient of every parameter.
func ZeroGrads(params []*Param) {
	for _, p := range params {
		p.ZeroGrad()
	}
}

// Clamp limits every element of every parameter to [lo, hi].
func Clamp(params []*Param, lo, hi float64) {
	for _, p := range params {
		value, _ := p.Data()
		for i, v := range value {
			if v < lo {
				value[i] = lo
			} else if v > hi {
				value[i] = hi
			}
		}
	}
}

// moments allocates one zeroed slice per parameter, shaped like its data.
func moments(params []*Param) [][]float64 {
	out := make([][]float64, len(params))
	for i, p := range params {
		value, _ := p.Data()
		out[i] = make([]float64, len(value))
	}
	return out
}
