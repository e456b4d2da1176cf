package trainer

import "github.com/pkg/errors"
import "gonum.org/v1/gonum/mat"
import "github.com/neurlang/gantrainer/datasets"
import "github.com/neurlang/gantrainer/role"

// Batch is the discriminator input of one step with one label per row.
type Batch struct {
	Input  *mat.Dense
	Labels *mat.Dense

	// Upstream is the model whose live output Input is, if any. The input
	// gradient of the discriminator is propagated into it.
	Upstream Model
}

func (b Batch) validate() error {
	if b.Input == nil || b.Labels == nil {
		return errors.New("trainer: batch without input or labels")
	}
	ri, _ := b.Input.Dims()
	rl, _ := b.Labels.Dims()
	if ri != rl {
		return errors.Errorf("trainer: batch has %d rows but %d labels", ri, rl)
	}
	return nil
}

// Strategy is the part of the training procedure specific to a GAN variant.
type Strategy interface {

	// BuildBatch constructs the batch used to train r this step.
	BuildBatch(t *Trainer, r role.Role, batchSize int) (Batch, error)

	// PostStep runs after the optimizer step of s.Role.
	PostStep(t *Trainer, s *Step) error
}

// InputFunc builds a batch of the requested size.
type InputFunc func(batchSize int) (Batch, error)

// Inputs is a Strategy made of one input function per role and no
// post-step hook.
type Inputs role.Pair[InputFunc]

// BuildBatch calls the input function of r.
func (in Inputs) BuildBatch(_ *Trainer, r role.Role, batchSize int) (Batch, error) {
	return in[r](batchSize)
}

// PostStep does nothing.
func (in Inputs) PostStep(*Trainer, *Step) error {
	return nil
}

// Validate reports a missing input function.
func (in Inputs) Validate() error {
	for _, r := range role.All {
		if in[r] == nil {
			return missing(r, "input function")
		}
	}
	return nil
}

// Samplers builds the batches of the adversarial game from a latent space
// sampler and a real data sampler.
type Samplers struct {
	Latent  datasets.Sampler
	Dataset datasets.Sampler
}

// Validate reports a missing sampler.
func (s Samplers) Validate() error {
	if s.Latent == nil {
		return missing(role.Generator, "latent space sampler")
	}
	if s.Dataset == nil {
		return missing(role.Discriminator, "dataset sampler")
	}
	return nil
}

// BuildBatch returns DiscriminatorBatch or GeneratorBatch depending on r.
func (s Samplers) BuildBatch(t *Trainer, r role.Role, batchSize int) (Batch, error) {
	if r == role.Generator {
		return s.GeneratorBatch(t, batchSize), nil
	}
	return s.DiscriminatorBatch(t, batchSize), nil
}

// Split returns how many fake and real rows a discriminator batch of n rows
// has. The fake half gets the extra row when n is odd.
func Split(n int) (fake, real int) {
	return (n + 1) / 2, n / 2
}

// DiscriminatorBatch draws the fake half from the generator in inference
// mode, labelled 0, followed by the real half from the dataset, labelled 1.
func (s Samplers) DiscriminatorBatch(t *Trainer, n int) Batch {
	fake, real := Split(n)
	generated := t.Eval(role.Generator, s.Latent(fake))
	var data *mat.Dense
	if real > 0 {
		data = s.Dataset(real)
	}
	return Batch{
		Input:  datasets.Stack(generated, data),
		Labels: datasets.Labels(fake, real),
	}
}

// GeneratorBatch pushes n latent samples through the generator, keeping the
// activations for backpropagation, and labels every output 1 (real): the
// generator is trained to make the discriminator call its output real.
func (s Samplers) GeneratorBatch(t *Trainer, n int) Batch {
	g := t.Model(role.Generator)
	return Batch{
		Input:    g.Forward(s.Latent(n)),
		Labels:   datasets.Labels(0, n),
		Upstream: g,
	}
}
