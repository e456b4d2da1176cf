// Package activation implements element-wise nonlinearities as layers
package activation

import "math"

import "gonum.org/v1/gonum/mat"

import "github.com/neurlang/gantrainer/learning"

// function is an activation and its derivative expressed through the input x
// and the output y.
type function struct {
	f  func(x float64) float64
	df func(x, y float64) float64
}

// Activation applies a function to every element.
type Activation struct {
	fn   function
	x, y *mat.Dense
}

// Sigmoid returns the logistic activation 1/(1+e^-x).
func Sigmoid() *Activation {
	return &Activation{fn: function{
		f:  func(x float64) float64 { return 1 / (1 + math.Exp(-x)) },
		df: func(_, y float64) float64 { return y * (1 - y) },
	}}
}

// ReLU returns the rectified linear activation max(0, x).
func ReLU() *Activation {
	return LeakyReLU(0)
}

// LeakyReLU returns max(slope*x, x).
func LeakyReLU(slope float64) *Activation {
	return &Activation{fn: function{
		f: func(x float64) float64 {
			if x > 0 {
				return x
			}
			return slope * x
		},
		df: func(x, _ float64) float64 {
			if x > 0 {
				return 1
			}
			return slope
		},
	}}
}

// Tanh returns the hyperbolic tangent activation.
func Tanh() *Activation {
	return &Activation{fn: function{
		f:  math.Tanh,
		df: func(_, y float64) float64 { return 1 - y*y },
	}}
}

// Forward applies the activation and remembers input and output.
func (a *Activation) Forward(x *mat.Dense, training bool) *mat.Dense {
	a.x = x
	a.y = a.Predict(x)
	return a.y
}

// Predict applies the activation.
func (a *Activation) Predict(x *mat.Dense) *mat.Dense {
	var y mat.Dense
	y.Apply(func(_, _ int, v float64) float64 { return a.fn.f(v) }, x)
	return &y
}

// Backward multiplies grad by the derivative at the last Forward.
func (a *Activation) Backward(grad *mat.Dense) *mat.Dense {
	if a.x == nil {
		panic("activation: Backward before Forward")
	}
	var dx mat.Dense
	dx.Apply(func(i, j int, g float64) float64 {
		return g * a.fn.df(a.x.At(i, j), a.y.At(i, j))
	}, grad)
	return &dx
}

// Params returns nil, activations have no parameters.
func (a *Activation) Params() []*learning.Param {
	return nil
}
