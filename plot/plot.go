// Package plot hands recorded training series to plotting backends.
package plot

// Labels names a plotted series and its axes.
type Labels struct {
	Title string
	X     string
	Y     string
}

// Sink draws one series, one value per step.
type Sink interface {
	Plot(series []float64, l Labels) error
}

// Func is a Sink backed by a function.
type Func func(series []float64, l Labels) error

// Plot calls f.
func (f Func) Plot(series []float64, l Labels) error {
	return f(series, l)
}

// Discard is a Sink drawing nothing.
var Discard Sink = Func(func([]float64, Labels) error { return nil })
