package trainer

import "github.com/montanaflynn/stats"
import "github.com/pkg/errors"
import "go.uber.org/zap"
import "github.com/neurlang/gantrainer/datasets"
import "github.com/neurlang/gantrainer/distance"
import "github.com/neurlang/gantrainer/learning"
import "github.com/neurlang/gantrainer/ledger"
import "github.com/neurlang/gantrainer/loss"
import "github.com/neurlang/gantrainer/role"
import "github.com/neurlang/gantrainer/totrain"

const (
	// DefaultClip bounds every critic parameter to [-DefaultClip, DefaultClip].
	DefaultClip = 0.01

	// DefaultEvalBatch is the size of the fresh batches the distance
	// history is measured on.
	DefaultEvalBatch = 256
)

// WassersteinConfig assembles a Wasserstein GAN trainer.
type WassersteinConfig struct {
	Generator     Model
	Discriminator Model

	Latent  datasets.Sampler
	Dataset datasets.Sampler

	// GLoss and DLoss default to loss.CriticGenerator and loss.Critic.
	GLoss loss.Func
	DLoss loss.Func

	// GLR and DLR are the RMSprop learning rates.
	GLR float64
	DLR float64

	Policy    totrain.Policy
	Threshold *float64

	// Clip defaults to DefaultClip.
	Clip float64

	// EvalBatch defaults to DefaultEvalBatch.
	EvalBatch int

	// Threads bounds the goroutines of the distance computation, 1 if zero.
	Threads int

	Logger *zap.Logger
}

// Wasserstein is the WGAN strategy. After every critic step it clamps every
// critic parameter into [-Clip, Clip]. After every step, whichever role
// trained, it measures the mean pairwise Wasserstein distance between
// EvalBatch fresh generated rows and EvalBatch fresh dataset rows and
// appends it to the wass_dists series. The measurement never feeds a
// gradient.
type Wasserstein struct {
	Samplers
	Clip      float64
	EvalBatch int
	Threads   int
}

// Validate checks the samplers and the constants.
func (w *Wasserstein) Validate() error {
	if err := w.Samplers.Validate(); err != nil {
		return err
	}
	if w.Clip <= 0 {
		return errors.Errorf("trainer: clip must be positive, got %g", w.Clip)
	}
	if w.EvalBatch < 1 {
		return errors.Wrapf(ErrBatchSize, "evaluation batch %d", w.EvalBatch)
	}
	return nil
}

// PostStep clamps the critic after its own steps and records the distance.
func (w *Wasserstein) PostStep(t *Trainer, st *Step) error {
	if st.Role == role.Discriminator {
		learning.Clamp(t.Model(role.Discriminator).Params(), -w.Clip, w.Clip)
	}
	d, err := w.Distance(t)
	if err != nil {
		return err
	}
	t.stats.Append(ledger.WassersteinDistances, d)
	return nil
}

// Distance measures the mean pairwise Wasserstein distance between fresh
// generated and fresh real rows.
func (w *Wasserstein) Distance(t *Trainer) (float64, error) {
	generated := t.Eval(role.Generator, w.Latent(w.EvalBatch))
	real := w.Dataset(w.EvalBatch)
	dists, err := distance.Pairwise(generated, real, w.Threads)
	if err != nil {
		return 0, err
	}
	mean, err := stats.Mean(dists)
	if err != nil {
		return 0, errors.Wrap(err, "trainer: mean distance")
	}
	return mean, nil
}

func (cfg *WassersteinConfig) defaults() {
	if cfg.GLoss == nil {
		cfg.GLoss = loss.CriticGenerator
	}
	if cfg.DLoss == nil {
		cfg.DLoss = loss.Critic
	}
	if cfg.Clip == 0 {
		cfg.Clip = DefaultClip
	}
	if cfg.EvalBatch == 0 {
		cfg.EvalBatch = DefaultEvalBatch
	}
	if cfg.Threads <= 0 {
		cfg.Threads = 1
	}
}

// rmsprop builds one RMSprop optimizer per role from the learning rates.
func rmsprop(models role.Pair[Model], rates role.Pair[float64]) (opts role.Pair[learning.Optimizer], err error) {
	for _, r := range role.All {
		if models[r] == nil {
			return opts, missing(r, "model")
		}
		o, err := learning.NewRMSprop(models[r].Params(), learning.HyperParameters{LearningRate: rates[r]})
		if err != nil {
			return opts, errors.Wrapf(err, "trainer: %s optimizer", r.Name())
		}
		opts[r] = o
	}
	return opts, nil
}

// NewWasserstein creates a Wasserstein GAN trainer. The optimizers are
// RMSprop instances built from GLR and DLR.
func NewWasserstein(cfg WassersteinConfig) (*Trainer, error) {
	cfg.defaults()
	models := role.NewPair(cfg.Generator, cfg.Discriminator)
	opts, err := rmsprop(models, role.NewPair(cfg.GLR, cfg.DLR))
	if err != nil {
		return nil, err
	}
	return New(Config{
		Models:     models,
		Losses:     role.NewPair(cfg.GLoss, cfg.DLoss),
		Optimizers: opts,
		Strategy: &Wasserstein{
			Samplers:  Samplers{Latent: cfg.Latent, Dataset: cfg.Dataset},
			Clip:      cfg.Clip,
			EvalBatch: cfg.EvalBatch,
			Threads:   cfg.Threads,
		},
		Policy:    cfg.Policy,
		Threshold: cfg.Threshold,
		Logger:    cfg.Logger,
		Declare:   []string{ledger.WassersteinDistances},
	})
}

// ToWasserstein converts a trainer built by NewStandard into a Wasserstein
// GAN trainer in place: fresh RMSprop optimizers from the learning rates,
// critic losses and the Wasserstein strategy over the same samplers. threads
// bounds the goroutines of the distance computation, 1 if not positive.
// Models and already recorded statistics are kept.
func (t *Trainer) ToWasserstein(gLR, dLR float64, threads int) error {
	std, ok := t.strategy.(*Standard)
	if !ok {
		return errors.Wrapf(ErrStrategy, "cannot convert %T to wasserstein", t.strategy)
	}
	if threads <= 0 {
		threads = 1
	}
	opts, err := rmsprop(t.models, role.NewPair(gLR, dLR))
	if err != nil {
		return err
	}
	t.optimizers = opts
	t.losses = role.NewPair[loss.Func](loss.CriticGenerator, loss.Critic)
	t.strategy = &Wasserstein{
		Samplers:  std.Samplers,
		Clip:      DefaultClip,
		EvalBatch: DefaultEvalBatch,
		Threads:   threads,
	}
	t.stats.Declare(ledger.WassersteinDistances)
	t.log.Info("converted to wasserstein", zap.Float64("g_lr", gLR), zap.Float64("d_lr", dLR), zap.Int("threads", threads))
	return nil
}
