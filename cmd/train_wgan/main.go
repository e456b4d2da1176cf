package main

import "os"
import "github.com/neurlang/gantrainer/config"
import "github.com/neurlang/gantrainer/datasets"
import "github.com/neurlang/gantrainer/datasets/evennumbers"
import "github.com/neurlang/gantrainer/driver"
import "github.com/neurlang/gantrainer/layer/activation"
import "github.com/neurlang/gantrainer/layer/full"
import "github.com/neurlang/gantrainer/ledger"
import "github.com/neurlang/gantrainer/net/feedforward"
import "github.com/neurlang/gantrainer/plot"
import "github.com/neurlang/gantrainer/role"
import "github.com/neurlang/gantrainer/totrain"
import "github.com/neurlang/gantrainer/trainer"

const (
	generatorRate     = 0.0001
	discriminatorRate = 0.0002
	hidden            = 4
)

func scenario() driver.Scenario {
	return driver.Scenario{
		Name:     "train_wgan",
		Short:    "Train a Wasserstein GAN generating even numbers",
		Defaults: config.Config{Epochs: 7},
		Build:    build,
		Charts: []driver.Chart{
			{Series: ledger.WassersteinDistances, Labels: plot.Labels{Title: "Wasserstein GAN Training Over Time", X: "Batches", Y: "Wasserstein Distance Mean"}},
			{Series: ledger.LossSeries(role.Discriminator), Labels: plot.Labels{Title: "Critic loss", X: "epoch", Y: "loss"}},
			{Series: ledger.LossSeries(role.Generator), Labels: plot.Labels{Title: "Generator loss", X: "epoch", Y: "loss"}},
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
		full.MustNew(evennumbers.Bits, hidden, rng),
		activation.ReLU(),
		full.MustNew(hidden, 1, rng),
	)

	latent := datasets.BinaryLatent(evennumbers.Bits, rng)
	t, err := trainer.NewWasserstein(trainer.WassersteinConfig{
		Generator:     g,
		Discriminator: d,
		Latent:        latent,
		Dataset:       evennumbers.Sampler(rng),
		GLR:           generatorRate,
		DLR:           discriminatorRate,
		Policy:        totrain.TwoFiveRule(),
		Threshold:     trainer.Threshold(s.Config.Threshold),
		Threads:       s.Device.Threads,
		Logger:        s.Log,
	})
	return driver.Session{Trainer: t, Latent: latent}, err
}

func main() {
	if err := driver.Command(scenario()).Execute(); err != nil {
		os.Exit(1)
	}
}
