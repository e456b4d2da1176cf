package trainer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/gantrainer/ledger"
	"github.com/neurlang/gantrainer/role"
	"github.com/neurlang/gantrainer/totrain"
)

func TestWassersteinEndToEnd(t *testing.T) {
	tr := wasserstein(t, nil)
	require.NoError(t, tr.Train(7, 16))

	dists, ok := tr.Stats().Series(ledger.WassersteinDistances)
	require.True(t, ok)
	require.Len(t, dists, 7)
	for i, d := range dists {
		assert.False(t, math.IsNaN(d) || math.IsInf(d, 0), "distance %d is %v", i, d)
		assert.GreaterOrEqual(t, d, 0.0)
	}
	assert.Equal(t, 7, len(tr.LossByEpoch(role.Generator))+len(tr.LossByEpoch(role.Discriminator)))
}

func TestWassersteinClampsCritic(t *testing.T) {
	tr := wasserstein(t, nil)
	clip := tr.Strategy().(*Wasserstein).Clip
	require.Equal(t, DefaultClip, clip)

	for i := 0; i < 14; i++ {
		st, err := tr.Step(8)
		require.NoError(t, err)
		if st.Role != role.Discriminator {
			continue
		}
		for _, p := range tr.Model(role.Discriminator).Params() {
			value, _ := p.Data()
			for _, v := range value {
				require.LessOrEqual(t, v, clip, "step %d", i)
				require.GreaterOrEqual(t, v, -clip, "step %d", i)
			}
		}
	}
}

func TestWassersteinGeneratorStepSkipsClamp(t *testing.T) {
	tr := wasserstein(t, totrain.Only(role.Generator))
	before := snapshot(tr.Model(role.Discriminator))
	require.NoError(t, tr.Train(2, 8))
	assert.True(t, same(before, snapshot(tr.Model(role.Discriminator))))
	assert.Equal(t, 2, tr.Stats().Len(ledger.WassersteinDistances))
}

func TestWassersteinValidate(t *testing.T) {
	latent, data := samplers(1)
	w := &Wasserstein{Samplers: Samplers{Latent: latent, Dataset: data}, Clip: DefaultClip, EvalBatch: 4}
	assert.NoError(t, w.Validate())

	w.EvalBatch = 0
	assert.ErrorIs(t, w.Validate(), ErrBatchSize)

	w.EvalBatch, w.Clip = 4, -1
	assert.Error(t, w.Validate())

	w.Clip, w.Latent = DefaultClip, nil
	assert.ErrorIs(t, w.Validate(), ErrMissingRole)
}

func TestNewWassersteinMissingModel(t *testing.T) {
	_, d := models(1)
	latent, data := samplers(1)
	tr, err := NewWasserstein(WassersteinConfig{Discriminator: d, Latent: latent, Dataset: data, GLR: 1e-4, DLR: 1e-4})
	assert.ErrorIs(t, err, ErrMissingRole)
	assert.Nil(t, tr)
}

func TestToWasserstein(t *testing.T) {
	tr := standard(t, nil)
	require.NoError(t, tr.Train(3, 4))
	losses := tr.LossByEpoch(role.Discriminator)

	require.NoError(t, tr.ToWasserstein(0.0001, 0.0002, 3))
	w, ok := tr.Strategy().(*Wasserstein)
	require.True(t, ok)
	assert.Equal(t, 3, w.Threads)
	assert.Equal(t, losses, tr.LossByEpoch(role.Discriminator))

	require.NoError(t, tr.Train(3, 4))
	assert.Equal(t, 3, tr.Stats().Len(ledger.WassersteinDistances))
	assert.Equal(t, 6, tr.stats.Steps())

	err := tr.ToWasserstein(0.0001, 0.0002, 3)
	assert.ErrorIs(t, err, ErrStrategy)
}

func TestToWassersteinDefaultThreads(t *testing.T) {
	tr := standard(t, nil)
	require.NoError(t, tr.ToWasserstein(0.0001, 0.0002, 0))
	assert.Equal(t, 1, tr.Strategy().(*Wasserstein).Threads)
}
