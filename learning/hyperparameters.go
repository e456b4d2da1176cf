package learning

import "github.com/pkg/errors"

// HyperParameters configure an optimizer.
type HyperParameters struct {
	LearningRate float64 // step size

	Momentum float64 // SGD momentum, 0 disables it

	Beta1 float64 // Adam first moment decay
	Beta2 float64 // Adam second moment decay

	Alpha float64 // RMSprop smoothing constant

	Epsilon float64 // added to denominators

	WeightDecay float64 // L2 penalty added to the gradient
}

// Defaults fills the zero fields with the usual values.
func (h HyperParameters) Defaults() HyperParameters {
	if h.Beta1 == 0 {
		h.Beta1 = 0.9
	}
	if h.Beta2 == 0 {
		h.Beta2 = 0.999
	}
	if h.Alpha == 0 {
		h.Alpha = 0.99
	}
	if h.Epsilon == 0 {
		h.Epsilon = 1e-8
	}
	return h
}

// Validate checks the learning rate and decay constants.
func (h HyperParameters) Validate() error {
	if h.LearningRate <= 0 {
		return errors.Errorf("learning: learning rate must be positive, got %g", h.LearningRate)
	}
	if h.Momentum < 0 || h.Momentum >= 1 {
		return errors.Errorf("learning: momentum must be in [0, 1), got %g", h.Momentum)
	}
	for _, b := range []float64{h.Beta1, h.Beta2, h.Alpha} {
		if b < 0 || b >= 1 {
			return errors.Errorf("learning: decay constant must be in [0, 1), got %g", b)
		}
	}
	return nil
}
