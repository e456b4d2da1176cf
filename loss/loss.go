// Package loss implements the loss functions the trainers minimize.
package loss

import "math"
import "gonum.org/v1/gonum/mat"

// Func computes a scalar loss of a prediction against labels, together with
// the gradient of that loss with respect to the prediction.
type Func func(pred, label *mat.Dense) (float64, *mat.Dense)

// eps keeps the logarithms of BCE finite.
const eps = 1e-12

// BCE is the binary cross entropy of probabilities pred against 0/1 labels,
// averaged over every element.
func BCE(pred, label *mat.Dense) (float64, *mat.Dense) {
	r, c := pred.Dims()
	n := float64(r * c)
	var sum float64
	grad := mat.NewDense(r, c, nil)
	grad.Apply(func(i, j int, _ float64) float64 {
		p := math.Min(math.Max(pred.At(i, j), eps), 1-eps)
		y := label.At(i, j)
		sum -= y*math.Log(p) + (1-y)*math.Log(1-p)
		return (p - y) / (p * (1 - p)) / n
	}, grad)
	return sum / n, grad
}

// MSE is the mean squared error.
func MSE(pred, label *mat.Dense) (float64, *mat.Dense) {
	r, c := pred.Dims()
	n := float64(r * c)
	var sum float64
	grad := mat.NewDense(r, c, nil)
	grad.Apply(func(i, j int, _ float64) float64 {
		d := pred.At(i, j) - label.At(i, j)
		sum += d * d
		return 2 * d / n
	}, grad)
	return sum / n, grad
}

// Critic is the Wasserstein critic loss -(mean(real) - mean(fake)), where
// rows labelled 1 are real and the rest fake. A side without rows adds 0.
func Critic(pred, label *mat.Dense) (float64, *mat.Dense) {
	r, c := pred.Dims()
	var nReal, nFake float64
	for i := 0; i < r; i++ {
		if label.At(i, 0) > 0.5 {
			nReal += float64(c)
		} else {
			nFake += float64(c)
		}
	}
	var realMean, fakeMean float64
	grad := mat.NewDense(r, c, nil)
	grad.Apply(func(i, j int, _ float64) float64 {
		if label.At(i, 0) > 0.5 {
			realMean += pred.At(i, j) / nReal
			return -1 / nReal
		}
		fakeMean += pred.At(i, j) / nFake
		return 1 / nFake
	}, grad)
	return -(realMean - fakeMean), grad
}

// CriticGenerator is the Wasserstein generator loss -mean(pred); labels are
// ignored.
func CriticGenerator(pred, _ *mat.Dense) (float64, *mat.Dense) {
	r, c := pred.Dims()
	n := float64(r * c)
	grad := mat.NewDense(r, c, nil)
	grad.Apply(func(_, _ int, _ float64) float64 { return -1 / n }, grad)
	return -mat.Sum(pred) / n, grad
}
