package trainer

import "gonum.org/v1/gonum/mat"
import "github.com/neurlang/gantrainer/role"

// Eval runs the model of r in inference mode on x and returns its raw
// output. Parameters, gradients and pending backpropagation state are left
// untouched, and the previous mode is restored before returning.
func (t *Trainer) Eval(r role.Role, x *mat.Dense) *mat.Dense {
	m := t.models[r]
	mode := m.Training()
	m.SetTraining(false)
	defer m.SetTraining(mode)
	return m.Predict(x)
}

// EvalGenerator is Eval(role.Generator, x).
func (t *Trainer) EvalGenerator(x *mat.Dense) *mat.Dense {
	return t.Eval(role.Generator, x)
}

// EvalDiscriminator is Eval(role.Discriminator, x).
func (t *Trainer) EvalDiscriminator(x *mat.Dense) *mat.Dense {
	return t.Eval(role.Discriminator, x)
}

// Rates is the confusion matrix of thresholded discriminator scores against
// 0 (fake) / 1 (real) labels.
type Rates struct {
	TP, FP, TN, FN int
}

// Confusion counts score > threshold as predicted real and any nonzero label
// as actually real. Scores and labels are compared element by element.
func Confusion(pred, label *mat.Dense, threshold float64) (c Rates) {
	p := mat.DenseCopyOf(pred).RawMatrix().Data
	y := mat.DenseCopyOf(label).RawMatrix().Data
	n := len(p)
	if len(y) < n {
		n = len(y)
	}
	for i := 0; i < n; i++ {
		positive := p[i] > threshold
		switch {
		case y[i] == 0 && positive:
			c.FP++
		case y[i] == 0:
			c.TN++
		case positive:
			c.TP++
		default:
			c.FN++
		}
	}
	return
}

func ratio(num, den int) (float64, bool) {
	if den == 0 {
		return 0, false
	}
	return float64(num) / float64(den), true
}

// FPR is FP/(FP+TN), reported only for a nonzero denominator.
func (c Rates) FPR() (float64, bool) {
	return ratio(c.FP, c.FP+c.TN)
}

// Precision is TP/(TP+FP), reported only for a nonzero denominator.
func (c Rates) Precision() (float64, bool) {
	return ratio(c.TP, c.TP+c.FP)
}

// Recall is TP/(TP+FN), reported only for a nonzero denominator.
func (c Rates) Recall() (float64, bool) {
	return ratio(c.TP, c.TP+c.FN)
}

// Accuracy is (TP+TN) over all samples.
func (c Rates) Accuracy() (float64, bool) {
	return ratio(c.TP+c.TN, c.TP+c.FP+c.TN+c.FN)
}
