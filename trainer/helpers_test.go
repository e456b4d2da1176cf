package trainer

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/neurlang/gantrainer/datasets"
	"github.com/neurlang/gantrainer/datasets/evennumbers"
	"github.com/neurlang/gantrainer/layer/activation"
	"github.com/neurlang/gantrainer/layer/dropout"
	"github.com/neurlang/gantrainer/layer/full"
	"github.com/neurlang/gantrainer/learning"
	"github.com/neurlang/gantrainer/loss"
	"github.com/neurlang/gantrainer/net/feedforward"
	"github.com/neurlang/gantrainer/role"
	"github.com/neurlang/gantrainer/totrain"
)

// models builds the generator and discriminator of the even numbers test
func models(seed uint64) (g, d *feedforward.FeedforwardNetwork) {
	rng := rand.New(rand.NewPCG(seed, 99))
	g = feedforward.New(
		full.MustNew(evennumbers.Bits, evennumbers.Bits, rng),
		activation.Sigmoid(),
	)
	d = feedforward.New(
		full.MustNew(evennumbers.Bits, 4, rng),
		activation.ReLU(),
		dropout.MustNew(0.1, rng),
		full.MustNew(4, 1, rng),
	)
	return
}

func samplers(seed uint64) (latent, data datasets.Sampler) {
	rng := rand.New(rand.NewPCG(seed, 7))
	return datasets.BinaryLatent(evennumbers.Bits, rng), evennumbers.Sampler(rng)
}

func standard(t *testing.T, policy totrain.Policy) *Trainer {
	t.Helper()
	g, d := models(1)
	latent, data := samplers(2)
	tr, err := NewStandard(StandardConfig{
		Generator:     g,
		Discriminator: d,
		Latent:        latent,
		Dataset:       data,
		GLoss:         loss.MSE,
		DLoss:         loss.MSE,
		GOpt:          learning.MustNewAdam(g.Params(), learning.HyperParameters{LearningRate: 0.001}),
		DOpt:          learning.MustNewAdam(d.Params(), learning.HyperParameters{LearningRate: 0.001}),
		Policy:        policy,
	})
	require.NoError(t, err)
	return tr
}

func wasserstein(t *testing.T, policy totrain.Policy) *Trainer {
	t.Helper()
	g, d := models(3)
	latent, data := samplers(4)
	tr, err := NewWasserstein(WassersteinConfig{
		Generator:     g,
		Discriminator: d,
		Latent:        latent,
		Dataset:       data,
		GLR:           0.0001,
		DLR:           0.0002,
		Policy:        policy,
		Threshold:     Threshold(0.5),
		EvalBatch:     32,
	})
	require.NoError(t, err)
	return tr
}

// snapshot copies every parameter value of m
func snapshot(m Model) []*mat.Dense {
	var out []*mat.Dense
	for _, p := range m.Params() {
		out = append(out, mat.DenseCopyOf(p.Value))
	}
	return out
}

func same(a, b []*mat.Dense) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !mat.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// spy records the mode a model was in at every Forward.
type spy struct {
	Model
	modes []bool
}

func (s *spy) Forward(x *mat.Dense) *mat.Dense {
	s.modes = append(s.modes, s.Training())
	return s.Model.Forward(x)
}

// constant scores every row with the same value.
type constant struct {
	score    float64
	training bool
	cols     int
}

func (c *constant) Forward(x *mat.Dense) *mat.Dense {
	_, c.cols = x.Dims()
	return c.Predict(x)
}

func (c *constant) Predict(x *mat.Dense) *mat.Dense {
	r, _ := x.Dims()
	out := mat.NewDense(r, 1, nil)
	out.Apply(func(_, _ int, _ float64) float64 { return c.score }, out)
	return out
}

func (c *constant) Backward(grad *mat.Dense) *mat.Dense {
	r, _ := grad.Dims()
	return mat.NewDense(r, c.cols, nil)
}

func (c *constant) Params() []*learning.Param { return nil }
func (c *constant) SetTraining(training bool) { c.training = training }
func (c *constant) Training() bool            { return c.training }

// nop is an optimizer doing nothing.
type nop struct{}

func (nop) ZeroGrad() {}
func (nop) Step()     {}

func pairOf[T any](v T) role.Pair[T] {
	return role.NewPair(v, v)
}
