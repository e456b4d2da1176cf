package trainer

import "go.uber.org/zap"
import "github.com/neurlang/gantrainer/datasets"
import "github.com/neurlang/gantrainer/learning"
import "github.com/neurlang/gantrainer/ledger"
import "github.com/neurlang/gantrainer/loss"
import "github.com/neurlang/gantrainer/role"
import "github.com/neurlang/gantrainer/totrain"

// StandardConfig assembles a classic minimax GAN trainer.
type StandardConfig struct {
	Generator     Model
	Discriminator Model

	Latent  datasets.Sampler
	Dataset datasets.Sampler

	GLoss loss.Func
	DLoss loss.Func

	GOpt learning.Optimizer
	DOpt learning.Optimizer

	Policy    totrain.Policy
	Threshold *float64
	Logger    *zap.Logger
}

// Standard is the classic GAN strategy: label supervised batches and an
// accuracy record of the discriminator after every step.
type Standard struct {
	Samplers
}

// PostStep appends the discriminator accuracy of the step.
func (s *Standard) PostStep(t *Trainer, st *Step) error {
	if acc, ok := st.Rates.Accuracy(); ok {
		t.stats.Append(ledger.Accuracy, acc)
	}
	return nil
}

// NewStandard creates a trainer for the classic minimax GAN.
func NewStandard(cfg StandardConfig) (*Trainer, error) {
	return New(Config{
		Models:     role.NewPair(cfg.Generator, cfg.Discriminator),
		Losses:     role.NewPair(cfg.GLoss, cfg.DLoss),
		Optimizers: role.NewPair(cfg.GOpt, cfg.DOpt),
		Strategy:   &Standard{Samplers{Latent: cfg.Latent, Dataset: cfg.Dataset}},
		Policy:     cfg.Policy,
		Threshold:  cfg.Threshold,
		Logger:     cfg.Logger,
		Declare:    []string{ledger.Accuracy},
	})
}
