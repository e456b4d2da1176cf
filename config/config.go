// Package config loads the settings shared by the training drivers from
// GAN_ prefixed environment variables and an optional .env file.
package config

import "os"
import "github.com/caarlos0/env/v11"
import "github.com/joho/godotenv"
import "github.com/pkg/errors"

const (
	// Prefix is prepended to every variable name.
	Prefix = "GAN_"

	// EnvFile is loaded into the environment when it exists.
	EnvFile = ".env"
)

// Config is a training run setup. Command line flags override it.
type Config struct {
	// Device is cpu or cuda; empty means ask.
	Device string `env:"DEVICE"`

	Epochs    int     `env:"EPOCHS"`
	Batch     int     `env:"BATCH"     envDefault:"16"`
	Threshold float64 `env:"THRESHOLD" envDefault:"0.5"`

	// Plot is the xlsx workbook written after training, none if empty.
	Plot string `env:"PLOT"`

	// DB is the sqlite database the run is exported to, none if empty.
	DB string `env:"DB"`

	// Seed of the random sources, drawn at random if zero.
	Seed uint64 `env:"SEED"`

	Verbose bool `env:"VERBOSE"`
}

// Load reads EnvFile if present and parses the process environment over
// defaults.
func Load(defaults Config) (Config, error) {
	if _, err := os.Stat(EnvFile); err == nil {
		if err := godotenv.Load(EnvFile); err != nil {
			return defaults, errors.Wrapf(err, "config: load %s", EnvFile)
		}
	}
	return Parse(defaults, nil)
}

// Parse parses environ, or the process environment if nil, over defaults
// and validates the result.
func Parse(defaults Config, environ map[string]string) (Config, error) {
	cfg := defaults
	opts := env.Options{Prefix: Prefix, Environment: environ}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return defaults, errors.Wrap(err, "config: parse environment")
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings no run can use.
func (c Config) Validate() error {
	if c.Epochs < 0 {
		return errors.Errorf("config: negative epochs %d", c.Epochs)
	}
	if c.Batch < 1 {
		return errors.Errorf("config: batch size %d below 1", c.Batch)
	}
	return nil
}
