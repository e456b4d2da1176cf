package trainer

import "github.com/pkg/errors"
import "go.uber.org/zap"
import "gonum.org/v1/gonum/mat"
import "github.com/neurlang/gantrainer/ledger"
import "github.com/neurlang/gantrainer/role"

// Step describes one completed training step.
type Step struct {
	Index      int
	Role       role.Role
	Batch      Batch
	Prediction *mat.Dense
	Loss       float64
	Rates      Rates
}

// Train runs nEpochs steps of batchSize samples each and returns the first
// error. Statistics of completed steps stay recorded.
func (t *Trainer) Train(nEpochs, batchSize int) error {
	for epoch := 0; epoch < nEpochs; epoch++ {
		if _, err := t.Step(batchSize); err != nil {
			return errors.Wrapf(err, "trainer: epoch %d", epoch)
		}
	}
	t.log.Info("training finished",
		zap.Int("epochs", nEpochs),
		zap.Int("trained_g", t.stats.EpochsTrained(role.Generator)),
		zap.Int("trained_d", t.stats.EpochsTrained(role.Discriminator)))
	return nil
}

// Step trains exactly one of the two models on one batch:
//
//   - the policy picks the role,
//   - the strategy builds the batch,
//   - the discriminator scores it (in inference mode when the generator is
//     trained),
//   - the loss of the role is recorded along with the discriminator rates,
//   - the gradient flows back through the discriminator and into the
//     upstream model of the batch, and only the trained role's optimizer
//     steps,
//   - the strategy's post-step hook runs.
func (t *Trainer) Step(batchSize int) (*Step, error) {
	if batchSize < 1 {
		return nil, errors.Wrapf(ErrBatchSize, "%d", batchSize)
	}
	index := t.stats.Steps()

	r := t.policy.Next(t.stats.View())
	if !r.Valid() {
		return nil, errors.Errorf("trainer: policy chose invalid %v", r)
	}

	batch, err := t.strategy.BuildBatch(t, r, batchSize)
	if err != nil {
		return nil, errors.Wrapf(err, "trainer: build %s batch", r.Name())
	}
	if err := batch.validate(); err != nil {
		return nil, err
	}

	d := t.models[role.Discriminator]
	mode := d.Training()
	if r == role.Generator {
		d.SetTraining(false)
	}
	pred := d.Forward(batch.Input)
	d.SetTraining(mode)

	value, grad := t.losses[r](pred, batch.Labels)
	t.stats.RecordLoss(r, value)

	rates := Confusion(pred, batch.Labels, t.threshold)
	t.record(rates)

	opt := t.optimizers[r]
	opt.ZeroGrad()
	dx := d.Backward(grad)
	if batch.Upstream != nil {
		batch.Upstream.Backward(dx)
	}
	opt.Step()

	step := &Step{
		Index:      index,
		Role:       r,
		Batch:      batch,
		Prediction: pred,
		Loss:       value,
		Rates:      rates,
	}
	if err := t.strategy.PostStep(t, step); err != nil {
		return step, errors.Wrapf(err, "trainer: post step %d", index)
	}

	t.log.Debug("step",
		zap.Int("step", index),
		zap.Stringer("role", r),
		zap.Float64("loss", value))
	return step, nil
}

// record appends each rate whose denominator is nonzero.
func (t *Trainer) record(c Rates) {
	if v, ok := c.FPR(); ok {
		t.stats.Append(ledger.FPR, v)
	}
	if v, ok := c.Precision(); ok {
		t.stats.Append(ledger.Precision, v)
	}
	if v, ok := c.Recall(); ok {
		t.stats.Append(ledger.Recall, v)
	}
}
