// Package layer defines the differentiable layer interface models are built from
package layer

import "gonum.org/v1/gonum/mat"

import "github.com/neurlang/gantrainer/learning"

// Layer is one stage of a model. Inputs hold one sample per row.
type Layer interface {

	// Forward computes the output for x and remembers what Backward needs.
	// Training selects the training-mode computation path (e.g. dropout).
	Forward(x *mat.Dense, training bool) *mat.Dense

	// Predict computes the inference-mode output without remembering anything.
	Predict(x *mat.Dense) *mat.Dense

	// Backward takes the gradient of the loss with respect to the output of
	// the last Forward, accumulates parameter gradients and returns the
	// gradient with respect to that Forward's input.
	Backward(grad *mat.Dense) *mat.Dense

	// Params lists the trainable parameters, nil if there are none.
	Params() []*learning.Param
}
