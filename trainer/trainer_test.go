package trainer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/neurlang/gantrainer/datasets"
	"github.com/neurlang/gantrainer/datasets/evennumbers"
	"github.com/neurlang/gantrainer/learning"
	"github.com/neurlang/gantrainer/ledger"
	"github.com/neurlang/gantrainer/loss"
	"github.com/neurlang/gantrainer/role"
	"github.com/neurlang/gantrainer/totrain"
)

func TestNewMissingRole(t *testing.T) {
	g, d := models(1)
	valid := func() Config {
		latent, data := samplers(1)
		return Config{
			Models:     role.NewPair[Model](g, d),
			Losses:     pairOf[loss.Func](loss.MSE),
			Optimizers: pairOf[learning.Optimizer](nop{}),
			Strategy:   &Standard{Samplers{Latent: latent, Dataset: data}},
		}
	}
	_, err := New(valid())
	require.NoError(t, err)

	for name, broken := range map[string]func(*Config){
		"generator model":         func(c *Config) { c.Models[role.Generator] = nil },
		"discriminator model":     func(c *Config) { c.Models[role.Discriminator] = nil },
		"generator loss":          func(c *Config) { c.Losses[role.Generator] = nil },
		"discriminator loss":      func(c *Config) { c.Losses[role.Discriminator] = nil },
		"generator optimizer":     func(c *Config) { c.Optimizers[role.Generator] = nil },
		"discriminator optimizer": func(c *Config) { c.Optimizers[role.Discriminator] = nil },
		"latent sampler":          func(c *Config) { c.Strategy = &Standard{Samplers{Dataset: evennumbers.Sampler(nil)}} },
		"input function": func(c *Config) {
			c.Strategy = Inputs{role.Generator: func(int) (Batch, error) { return Batch{}, nil }}
		},
	} {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			broken(&cfg)
			tr, err := New(cfg)
			assert.ErrorIs(t, err, ErrMissingRole)
			assert.Nil(t, tr)
		})
	}
}

func TestNewDefaults(t *testing.T) {
	tr := standard(t, nil)
	assert.Equal(t, DefaultThreshold, tr.Threshold())
	assert.IsType(t, totrain.Ratio{}, tr.policy)
	for _, name := range []string{ledger.FPR, ledger.Precision, ledger.Recall, ledger.Accuracy} {
		series, ok := tr.Stats().Series(name)
		assert.True(t, ok, name)
		assert.Empty(t, series, name)
	}
}

func TestBatchSize(t *testing.T) {
	tr := standard(t, nil)
	_, err := tr.Step(0)
	assert.ErrorIs(t, err, ErrBatchSize)
	assert.ErrorIs(t, tr.Train(3, -1), ErrBatchSize)
	assert.Zero(t, tr.Stats().Len(ledger.LossSeries(role.Generator)))
}

func TestLossCountsMatchEpochs(t *testing.T) {
	for _, n := range []int{0, 1, 2, 7, 20} {
		tr := standard(t, nil)
		require.NoError(t, tr.Train(n, 4))

		g, d := tr.LossByEpoch(role.Generator), tr.LossByEpoch(role.Discriminator)
		assert.Equal(t, n, len(g)+len(d), "epochs %d", n)
		assert.Equal(t, len(g), tr.Stats().EpochsTrained(role.Generator))
		assert.Equal(t, len(d), tr.Stats().EpochsTrained(role.Discriminator))
		assert.Equal(t, n, tr.Stats().Len(ledger.Accuracy))
	}
}

func TestTwoFiveSchedule(t *testing.T) {
	tr := standard(t, nil)
	var roles []role.Role
	for i := 0; i < 7; i++ {
		st, err := tr.Step(2)
		require.NoError(t, err)
		assert.Equal(t, i, st.Index)
		roles = append(roles, st.Role)
	}
	D, G := role.Discriminator, role.Generator
	assert.Equal(t, []role.Role{D, G, D, D, G, D, D}, roles)
}

func TestPolicySeesCompletedSteps(t *testing.T) {
	var seen []int
	policy := totrain.Func(func(s ledger.View) role.Role {
		seen = append(seen, s.EpochsTrained(role.Generator)+s.EpochsTrained(role.Discriminator))
		return role.Discriminator
	})
	tr := standard(t, policy)
	require.NoError(t, tr.Train(4, 2))
	assert.Equal(t, []int{0, 1, 2, 3}, seen)
}

func TestStatsIsReadOnly(t *testing.T) {
	var views []ledger.View
	policy := totrain.Func(func(s ledger.View) role.Role {
		views = append(views, s)
		return role.Discriminator
	})
	tr := standard(t, policy)
	require.NoError(t, tr.Train(2, 2))

	_, ok := tr.Stats().(*ledger.Ledger)
	assert.False(t, ok)
	for _, v := range views {
		_, ok := v.(*ledger.Ledger)
		assert.False(t, ok)
	}
	assert.Equal(t, 2, tr.Stats().EpochsTrained(role.Discriminator))
}

func TestDiscriminatorBatch(t *testing.T) {
	ones := func(n int) *mat.Dense {
		m := mat.NewDense(n, evennumbers.Bits, nil)
		m.Apply(func(_, _ int, _ float64) float64 { return 1 }, m)
		return m
	}
	fives := func(n int) *mat.Dense {
		m := mat.NewDense(n, evennumbers.Bits, nil)
		m.Apply(func(_, _ int, _ float64) float64 { return 5 }, m)
		return m
	}
	s := Samplers{Latent: ones, Dataset: fives}
	tr := standard(t, nil)

	for _, tc := range []struct{ n, fake, real int }{
		{16, 8, 8},
		{5, 3, 2},
		{1, 1, 0},
	} {
		b := s.DiscriminatorBatch(tr, tc.n)
		rows, _ := b.Input.Dims()
		require.Equal(t, tc.n, rows)
		assert.Nil(t, b.Upstream)

		want := tr.Eval(role.Generator, ones(tc.fake))
		for i := 0; i < tc.n; i++ {
			if i < tc.fake {
				assert.Equal(t, 0.0, b.Labels.At(i, 0), "row %d of %d", i, tc.n)
				assert.Equal(t, want.RawRowView(i), b.Input.RawRowView(i))
			} else {
				assert.Equal(t, 1.0, b.Labels.At(i, 0), "row %d of %d", i, tc.n)
				assert.Equal(t, fives(1).RawRowView(0), b.Input.RawRowView(i))
			}
		}
	}
}

func TestGeneratorBatch(t *testing.T) {
	tr := standard(t, nil)
	s := tr.Strategy().(*Standard)
	b := s.GeneratorBatch(tr, 6)
	rows, cols := b.Input.Dims()
	assert.Equal(t, 6, rows)
	assert.Equal(t, evennumbers.Bits, cols)
	assert.Same(t, tr.Model(role.Generator), b.Upstream)
	for i := 0; i < rows; i++ {
		assert.Equal(t, 1.0, b.Labels.At(i, 0))
	}
}

func TestOnlyTrainedRoleChanges(t *testing.T) {
	for _, r := range role.All {
		t.Run(r.Name(), func(t *testing.T) {
			tr := standard(t, totrain.Only(r))
			before := role.NewPair(snapshot(tr.Model(role.Generator)), snapshot(tr.Model(role.Discriminator)))
			require.NoError(t, tr.Train(3, 8))

			assert.False(t, same(before[r], snapshot(tr.Model(r))), "%s did not learn", r.Name())
			assert.True(t, same(before[r.Other()], snapshot(tr.Model(r.Other()))), "%s changed", r.Other().Name())
			assert.Equal(t, 3, tr.Stats().EpochsTrained(r))
			assert.Zero(t, tr.Stats().EpochsTrained(r.Other()))
		})
	}
}

func TestDiscriminatorInferenceDuringGeneratorStep(t *testing.T) {
	g, d := models(5)
	latent, data := samplers(5)
	critic := &spy{Model: d}
	tr, err := NewStandard(StandardConfig{
		Generator:     g,
		Discriminator: critic,
		Latent:        latent,
		Dataset:       data,
		GLoss:         loss.BCE,
		DLoss:         loss.BCE,
		GOpt:          nop{},
		DOpt:          nop{},
		Policy:        totrain.Alternate(),
	})
	require.NoError(t, err)

	require.NoError(t, tr.Train(2, 4))
	assert.Equal(t, []bool{true, false}, critic.modes)
	assert.True(t, critic.Training())

	critic.SetTraining(false)
	require.NoError(t, tr.Train(1, 4))
	assert.False(t, critic.Training())
}

func TestEvalLeavesModelUntouched(t *testing.T) {
	tr := standard(t, nil)
	latent, _ := samplers(9)
	for _, r := range role.All {
		m := tr.Model(r)
		before := snapshot(m)
		x := latent(4)

		out := tr.Eval(r, x)
		again := tr.Eval(r, x)
		assert.True(t, mat.Equal(out, again), "%s inference is not deterministic", r.Name())
		assert.True(t, same(before, snapshot(m)))
		assert.True(t, m.Training())

		m.SetTraining(false)
		tr.Eval(r, x)
		assert.False(t, m.Training())
		m.SetTraining(true)
	}
	assert.Zero(t, tr.stats.Steps())
}

func TestRatesOmittedOnZeroDenominator(t *testing.T) {
	zeros := func(n int) (Batch, error) {
		return Batch{
			Input:  mat.NewDense(n, 3, nil),
			Labels: datasets.Labels(n, 0),
		}, nil
	}
	tr, err := New(Config{
		Models:     role.NewPair[Model](&constant{score: 0.1}, &constant{score: 0.1}),
		Losses:     pairOf[loss.Func](loss.MSE),
		Optimizers: pairOf[learning.Optimizer](nop{}),
		Strategy:   Inputs{zeros, zeros},
		Policy:     totrain.Only(role.Discriminator),
	})
	require.NoError(t, err)
	require.NoError(t, tr.Train(3, 4))

	fpr, _ := tr.Stats().Series(ledger.FPR)
	assert.Equal(t, []float64{0, 0, 0}, fpr)
	assert.Zero(t, tr.Stats().Len(ledger.Precision))
	assert.Zero(t, tr.Stats().Len(ledger.Recall))
}

func TestExplicitZeroThreshold(t *testing.T) {
	fakes := func(n int) (Batch, error) {
		return Batch{
			Input:  mat.NewDense(n, 3, nil),
			Labels: datasets.Labels(n, 0),
		}, nil
	}
	build := func(threshold *float64) *Trainer {
		tr, err := New(Config{
			Models:     role.NewPair[Model](&constant{score: 0.3}, &constant{score: 0.3}),
			Losses:     pairOf[loss.Func](loss.MSE),
			Optimizers: pairOf[learning.Optimizer](nop{}),
			Strategy:   Inputs{fakes, fakes},
			Policy:     totrain.Only(role.Discriminator),
			Threshold:  threshold,
		})
		require.NoError(t, err)
		require.NoError(t, tr.Train(1, 4))
		return tr
	}

	tr := build(Threshold(0))
	assert.Equal(t, 0.0, tr.Threshold())
	fpr, _ := tr.Stats().Series(ledger.FPR)
	assert.Equal(t, []float64{1}, fpr)
	precision, _ := tr.Stats().Series(ledger.Precision)
	assert.Equal(t, []float64{0}, precision)

	tr = build(nil)
	assert.Equal(t, DefaultThreshold, tr.Threshold())
	fpr, _ = tr.Stats().Series(ledger.FPR)
	assert.Equal(t, []float64{0}, fpr)
}

func TestConfusion(t *testing.T) {
	pred := mat.NewDense(6, 1, []float64{0.9, 0.2, 0.7, 0.1, 0.5, 0.6})
	label := mat.NewDense(6, 1, []float64{1, 1, 0, 0, 1, 1})
	c := Confusion(pred, label, 0.5)
	assert.Equal(t, Rates{TP: 2, FP: 1, TN: 1, FN: 2}, c)

	v, ok := c.Precision()
	assert.True(t, ok)
	assert.InDelta(t, 2.0/3, v, 1e-12)
	v, ok = c.Recall()
	assert.True(t, ok)
	assert.InDelta(t, 0.5, v, 1e-12)
	v, ok = c.FPR()
	assert.True(t, ok)
	assert.InDelta(t, 0.5, v, 1e-12)
	v, ok = c.Accuracy()
	assert.True(t, ok)
	assert.InDelta(t, 0.5, v, 1e-12)

	_, ok = Rates{}.Accuracy()
	assert.False(t, ok)
}

func TestBatchValidation(t *testing.T) {
	bad := func(n int) (Batch, error) {
		return Batch{Input: mat.NewDense(n, 3, nil), Labels: datasets.Labels(1, 0)}, nil
	}
	tr, err := New(Config{
		Models:     role.NewPair[Model](&constant{}, &constant{}),
		Losses:     pairOf[loss.Func](loss.MSE),
		Optimizers: pairOf[learning.Optimizer](nop{}),
		Strategy:   Inputs{bad, bad},
	})
	require.NoError(t, err)
	_, err = tr.Step(4)
	assert.Error(t, err)
	assert.Zero(t, tr.stats.Steps())
}
