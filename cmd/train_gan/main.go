package main

import "os"
import "github.com/neurlang/gantrainer/config"
import "github.com/neurlang/gantrainer/datasets"
import "github.com/neurlang/gantrainer/datasets/evennumbers"
import "github.com/neurlang/gantrainer/driver"
import "github.com/neurlang/gantrainer/layer/activation"
import "github.com/neurlang/gantrainer/layer/full"
import "github.com/neurlang/gantrainer/learning"
import "github.com/neurlang/gantrainer/ledger"
import "github.com/neurlang/gantrainer/loss"
import "github.com/neurlang/gantrainer/net/feedforward"
import "github.com/neurlang/gantrainer/plot"
import "github.com/neurlang/gantrainer/role"
import "github.com/neurlang/gantrainer/totrain"
import "github.com/neurlang/gantrainer/trainer"

const learningRate = 0.001

func scenario() driver.Scenario {
	return driver.Scenario{
		Name:     "train_gan",
		Short:    "Train a GAN generating even numbers",
		Defaults: config.Config{Epochs: 7000},
		Build:    build,
		Charts: []driver.Chart{
			{Series: ledger.LossSeries(role.Discriminator), Labels: plot.Labels{Title: "Discriminator loss", X: "epoch", Y: "loss"}},
			{Series: ledger.LossSeries(role.Generator), Labels: plot.Labels{Title: "Generator loss", X: "epoch", Y: "loss"}},
			{Series: ledger.Accuracy, Labels: plot.Labels{Title: "Discriminator accuracy", X: "batch", Y: "accuracy"}},
		},
	}
}

func build(s driver.Setup) (driver.Session, error) {
	rng := s.Rand
	g := feedforward.New(
		full.MustNew(evennumbers.Bits, evennumbers.Bits, rng),
		activation.Sigmoid(),
	)
	d := feedforward.New(
		full.MustNew(evennumbers.Bits, 1, rng),
		activation.Sigmoid(),
	)
	h := learning.HyperParameters{LearningRate: learningRate}
	gOpt, err := learning.NewAdam(g.Params(), h)
	if err != nil {
		return driver.Session{}, err
	}
	dOpt, err := learning.NewAdam(d.Params(), h)
	if err != nil {
		return driver.Session{}, err
	}

	latent := datasets.BinaryLatent(evennumbers.Bits, rng)
	t, err := trainer.NewStandard(trainer.StandardConfig{
		Generator:     g,
		Discriminator: d,
		Latent:        latent,
		Dataset:       evennumbers.Sampler(rng),
		GLoss:         loss.BCE,
		DLoss:         loss.BCE,
		GOpt:          gOpt,
		DOpt:          dOpt,
		Policy:        totrain.TwoFiveRule(),
		Threshold:     trainer.Threshold(s.Config.Threshold),
		Logger:        s.Log,
	})
	return driver.Session{Trainer: t, Latent: latent}, err
}

func main() {
	if err := driver.Command(scenario()).Execute(); err != nil {
		os.Exit(1)
	}
}
