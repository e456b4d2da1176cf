package activation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestReLU(t *testing.T) {
	a := ReLU()
	x := mat.NewDense(1, 3, []float64{-1, 0, 2})
	y := a.Forward(x, true)
	assert.Equal(t, []float64{0, 0, 2}, y.RawRowView(0))

	dx := a.Backward(mat.NewDense(1, 3, []float64{5, 5, 5}))
	assert.Equal(t, []float64{0, 0, 5}, dx.RawRowView(0))
	assert.Nil(t, a.Params())
}

func TestLeakyReLU(t *testing.T) {
	a := LeakyReLU(0.1)
	y := a.Forward(mat.NewDense(1, 2, []float64{-2, 3}), true)
	assert.InDeltaSlice(t, []float64{-0.2, 3}, y.RawRowView(0), 1e-12)
	dx := a.Backward(mat.NewDense(1, 2, []float64{1, 1}))
	assert.InDeltaSlice(t, []float64{0.1, 1}, dx.RawRowView(0), 1e-12)
}

func TestSigmoid(t *testing.T) {
	a := Sigmoid()
	y := a.Forward(mat.NewDense(1, 1, []float64{0}), true)
	assert.InDelta(t, 0.5, y.At(0, 0), 1e-12)
	dx := a.Backward(mat.NewDense(1, 1, []float64{1}))
	assert.InDelta(t, 0.25, dx.At(0, 0), 1e-12)
}

func TestBackwardBeforeForward(t *testing.T) {
	assert.Panics(t, func() { Tanh().Backward(mat.NewDense(1, 1, nil)) })
}
