// Package driver runs one training scenario from the command line: it
// resolves the configuration and the device, trains, prints a generated
// sample and exports the statistics.
package driver

import "context"
import "fmt"
import "io"
import "math/rand/v2"
import "github.com/pkg/errors"
import "github.com/spf13/cobra"
import "go.uber.org/zap"
import "gonum.org/v1/gonum/mat"
import "github.com/neurlang/gantrainer/config"
import "github.com/neurlang/gantrainer/datasets"
import "github.com/neurlang/gantrainer/datasets/evennumbers"
import "github.com/neurlang/gantrainer/device"
import "github.com/neurlang/gantrainer/plot"
import "github.com/neurlang/gantrainer/store"
import "github.com/neurlang/gantrainer/trainer"

// SampleSize is how many generated rows are printed after training.
const SampleSize = 16

// Setup is what a scenario builds its trainer from.
type Setup struct {
	Config config.Config
	Device device.Device
	Rand   *rand.Rand
	Log    *zap.Logger
}

// Session is a built scenario.
type Session struct {
	Trainer *trainer.Trainer
	Latent  datasets.Sampler
}

// Chart is a ledger series plotted after training.
type Chart struct {
	Series string
	Labels plot.Labels
}

// Scenario describes one driver.
type Scenario struct {
	Name     string
	Short    string
	Defaults config.Config
	Build    func(Setup) (Session, error)
	Charts   []Chart
}

// Command builds the root command of s. Flags default to the environment.
func Command(s Scenario) *cobra.Command {
	cfg, loadErr := config.Load(s.Defaults)
	cmd := &cobra.Command{
		Use:          s.Name,
		Short:        s.Short,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if loadErr != nil {
				return loadErr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			log, err := Logger(cfg.Verbose)
			if err != nil {
				return err
			}
			defer log.Sync()
			return Execute(cmd.Context(), s, cfg, device.Interactive, log, cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfg.Device, "device", cfg.Device, "device to run on (cpu or cuda), asked when empty")
	f.IntVar(&cfg.Epochs, "epochs", cfg.Epochs, "training steps")
	f.IntVar(&cfg.Batch, "batch", cfg.Batch, "samples per step")
	f.Float64Var(&cfg.Threshold, "threshold", cfg.Threshold, "discriminator score above which a sample counts as real")
	f.StringVar(&cfg.Plot, "plot", cfg.Plot, "xlsx workbook to chart the statistics into")
	f.StringVar(&cfg.DB, "db", cfg.DB, "sqlite database to export the run to")
	f.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 for a random one")
	f.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "log every step")
	return cmd
}

// Logger builds a production logger, or a development one when verbose.
func Logger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Execute runs s with cfg and writes the generated sample to out.
func Execute(ctx context.Context, s Scenario, cfg config.Config, choose device.Chooser, log *zap.Logger, out io.Writer) error {
	dev, err := device.Prompt(cfg.Device, choose)
	if err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Uint64()
	}
	log = log.With(zap.String("scenario", s.Name))
	log.Info("starting",
		zap.Stringer("device", dev),
		zap.Int("threads", dev.Threads),
		zap.Int("epochs", cfg.Epochs),
		zap.Int("batch", cfg.Batch),
		zap.Uint64("seed", cfg.Seed))

	session, err := s.Build(Setup{
		Config: cfg,
		Device: dev,
		Rand:   rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		Log:    log,
	})
	if err != nil {
		return errors.Wrapf(err, "%s: build", s.Name)
	}
	t := session.Trainer
	if err := t.Train(cfg.Epochs, cfg.Batch); err != nil {
		return err
	}

	generated := t.EvalGenerator(session.Latent(SampleSize))
	Report(out, generated)
	fmt.Fprintf(out, "even: %.2f\n", evennumbers.EvenRate(generated))
	for _, c := range s.Charts {
		if sum, err := t.Stats().Summary(c.Series); err == nil {
			log.Info("summary", zap.String("series", c.Series),
				zap.Float64("mean", sum.Mean), zap.Float64("last", sum.Last))
		}
	}

	if cfg.Plot != "" {
		if err := Plot(t, plot.NewXLSX(cfg.Plot), s.Charts); err != nil {
			return err
		}
		log.Info("plotted", zap.String("path", cfg.Plot))
	}
	if cfg.DB != "" {
		id, err := Export(ctx, cfg, s.Name, dev.Name, t)
		if err != nil {
			return err
		}
		log.Info("exported", zap.String("path", cfg.DB), zap.String("run", id))
	}
	return nil
}

// Report prints every generated row as rounded bits followed by the number
// they encode.
func Report(out io.Writer, generated *mat.Dense) {
	rows, _ := generated.Dims()
	for i := 0; i < rows; i++ {
		row := generated.RawRowView(i)
		for _, v := range row {
			if v > 0.5 {
				fmt.Fprint(out, "1")
			} else {
				fmt.Fprint(out, "0")
			}
		}
		fmt.Fprintf(out, " %3d\n", evennumbers.Value(row))
	}
}

// Plot charts every series into sink and closes it when it can be closed.
func Plot(t *trainer.Trainer, sink plot.Sink, charts []Chart) error {
	for _, c := range charts {
		if err := t.Plot(sink, c.Series, c.Labels); err != nil {
			return err
		}
	}
	if c, ok := sink.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Export saves the run and its statistics to the database cfg.DB.
func Export(ctx context.Context, cfg config.Config, variant, dev string, t *trainer.Trainer) (string, error) {
	db, err := store.Open(cfg.DB)
	if err != nil {
		return "", err
	}
	defer db.Close()
	run, err := db.SaveRun(ctx, store.Run{
		Variant:   variant,
		Device:    dev,
		Epochs:    cfg.Epochs,
		Batch:     cfg.Batch,
		Threshold: t.Threshold(),
		Stats:     t.Stats(),
	})
	return run.ID, err
}
