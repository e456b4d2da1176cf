// Package feedforward implements a feedforward network type
package feedforward

import "gonum.org/v1/gonum/mat"

import "github.com/neurlang/gantrainer/layer"
import "github.com/neurlang/gantrainer/learning"

// FeedforwardNetwork is a chain of layers, each feeding the next. The zero
// value is an empty network in inference mode; use New to start in
// training mode.
type FeedforwardNetwork struct {
	layers   []layer.Layer
	training bool
}

// New creates a network in training mode from layers.
func New(layers ...layer.Layer) *FeedforwardNetwork {
	f := &FeedforwardNetwork{training: true}
	for _, l := range layers {
		f.NewLayer(l)
	}
	return f
}

// NewLayer adds a layer to the end of network.
func (f *FeedforwardNetwork) NewLayer(l layer.Layer) {
	f.layers = append(f.layers, l)
}

// LenLayers returns the number of layers.
func (f *FeedforwardNetwork) LenLayers() int {
	return len(f.layers)
}

// GetLayer gets the n-th layer. Returns nil on failure.
func (f *FeedforwardNetwork) GetLayer(n int) layer.Layer {
	if n < 0 || n >= len(f.layers) {
		return nil
	}
	return f.layers[n]
}

// Len returns the number of trainable scalars in the network.
func (f *FeedforwardNetwork) Len() (o int) {
	for _, p := range f.Params() {
		r, c := p.Value.Dims()
		o += r * c
	}
	return
}

// SetTraining switches between training and inference mode.
func (f *FeedforwardNetwork) SetTraining(training bool) {
	f.training = training
}

// Training reports whether the network is in training mode.
func (f *FeedforwardNetwork) Training() bool {
	return f.training
}

// Forward runs every layer in the current mode, remembering activations
// for Backward.
func (f *FeedforwardNetwork) Forward(x *mat.Dense) *mat.Dense {
	for _, l := range f.layers {
		x = l.Forward(x, f.training)
	}
	return x
}

// Predict runs the inference path of every layer without remembering
// anything, so a pending Backward is unaffected.
func (f *FeedforwardNetwork) Predict(x *mat.Dense) *mat.Dense {
	for _, l := range f.layers {
		x = l.Predict(x)
	}
	return x
}

// Backward propagates grad from the output of the last Forward to its input,
// accumulating parameter gradients on the way.
func (f *FeedforwardNetwork) Backward(grad *mat.Dense) *mat.Dense {
	for i := len(f.layers) - 1; i >= 0; i-- {
		grad = f.layers[i].Backward(grad)
	}
	return grad
}

// Params lists the parameters of every layer, first layer first.
func (f *FeedforwardNetwork) Params() (o []*learning.Param) {
	for _, l := range f.layers {
		o = append(o, l.Params()...)
	}
	return
}
