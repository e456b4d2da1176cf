package trainer

import "github.com/pkg/errors"
import "go.uber.org/zap"
import "gonum.org/v1/gonum/mat"
import "github.com/neurlang/gantrainer/learning"
import "github.com/neurlang/gantrainer/ledger"
import "github.com/neurlang/gantrainer/loss"
import "github.com/neurlang/gantrainer/role"
import "github.com/neurlang/gantrainer/totrain"

// DefaultThreshold is the discriminator score above which a sample counts as
// predicted real.
const DefaultThreshold = 0.5

var (
	// ErrMissingRole is returned when a role lacks a model, loss, optimizer
	// or input function at construction.
	ErrMissingRole = errors.New("trainer: missing role")

	// ErrBatchSize is returned for a batch size below 1.
	ErrBatchSize = errors.New("trainer: invalid batch size")

	// ErrStrategy is returned when the trainer's strategy does not support
	// the requested operation.
	ErrStrategy = errors.New("trainer: unsupported strategy")
)

// Model is a differentiable network with a training/inference mode switch.
// The mode only selects computation paths such as dropout; it never changes
// parameter values.
type Model interface {

	// Forward computes the output in the current mode and remembers what
	// Backward needs.
	Forward(x *mat.Dense) *mat.Dense

	// Predict computes the output without remembering anything for Backward.
	Predict(x *mat.Dense) *mat.Dense

	// Backward propagates the output gradient of the last Forward,
	// accumulates parameter gradients and returns the input gradient.
	Backward(grad *mat.Dense) *mat.Dense

	// Params lists the trainable parameters.
	Params() []*learning.Param

	SetTraining(training bool)
	Training() bool
}

// Config assembles a Trainer.
type Config struct {
	Models     role.Pair[Model]
	Losses     role.Pair[loss.Func]
	Optimizers role.Pair[learning.Optimizer]

	// Strategy builds batches and runs the variant specific post-step hook.
	Strategy Strategy

	// Policy picks the role of every step, totrain.TwoFiveRule if nil.
	Policy totrain.Policy

	// Threshold splits discriminator scores into predicted fake and real,
	// DefaultThreshold if nil.
	Threshold *float64

	// Logger receives per-step debug records, a no-op logger if nil.
	Logger *zap.Logger

	// Declare lists extra ledger series known from the start.
	Declare []string
}

// Trainer alternates updates between a generator and a discriminator.
type Trainer struct {
	models     role.Pair[Model]
	losses     role.Pair[loss.Func]
	optimizers role.Pair[learning.Optimizer]

	strategy  Strategy
	policy    totrain.Policy
	threshold float64

	stats *ledger.Ledger
	log   *zap.Logger
}

// New validates cfg and creates a Trainer. Every role needs a model, a loss
// function and an optimizer; a missing one is an error wrapping
// ErrMissingRole and no trainer is returned.
func New(cfg Config) (*Trainer, error) {
	for _, r := range role.All {
		if cfg.Models[r] == nil {
			return nil, missing(r, "model")
		}
		if cfg.Losses[r] == nil {
			return nil, missing(r, "loss function")
		}
		if cfg.Optimizers[r] == nil {
			return nil, missing(r, "optimizer")
		}
	}
	if cfg.Strategy == nil {
		return nil, errors.New("trainer: nil strategy")
	}
	if v, ok := cfg.Strategy.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}

	t := &Trainer{
		models:     cfg.Models,
		losses:     cfg.Losses,
		optimizers: cfg.Optimizers,
		strategy:   cfg.Strategy,
		policy:     cfg.Policy,
		threshold:  DefaultThreshold,
		stats:      ledger.New(append([]string{ledger.FPR, ledger.Precision, ledger.Recall}, cfg.Declare...)...),
		log:        cfg.Logger,
	}
	if t.policy == nil {
		t.policy = totrain.TwoFiveRule()
	}
	if cfg.Threshold != nil {
		t.threshold = *cfg.Threshold
	}
	if t.log == nil {
		t.log = zap.NewNop()
	}
	return t, nil
}

// Threshold returns a pointer to v, for the Threshold fields of the configs.
func Threshold(v float64) *float64 {
	return &v
}

func missing(r role.Role, what string) error {
	return errors.Wrapf(ErrMissingRole, "%s has no %s", r.Name(), what)
}

// Model returns the model of r.
func (t *Trainer) Model(r role.Role) Model {
	return t.models[r]
}

// Optimizer returns the optimizer of r.
func (t *Trainer) Optimizer(r role.Role) learning.Optimizer {
	return t.optimizers[r]
}

// Loss returns the loss function of r.
func (t *Trainer) Loss(r role.Role) loss.Func {
	return t.losses[r]
}

// Strategy returns the current strategy.
func (t *Trainer) Strategy() Strategy {
	return t.strategy
}

// Threshold returns the discriminator decision threshold.
func (t *Trainer) Threshold() float64 {
	return t.threshold
}

// Stats exposes the statistics ledger read-only.
func (t *Trainer) Stats() ledger.View {
	return t.stats.View()
}

// LossByEpoch returns a copy of the recorded losses of r, one per step in
// which r trained.
func (t *Trainer) LossByEpoch(r role.Role) []float64 {
	return t.stats.Losses(r)
}
