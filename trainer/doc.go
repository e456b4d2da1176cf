// Package trainer provides high-level training orchestration for adversarial
// networks. A Trainer owns a generator and a discriminator together with
// their optimizers and loss functions, asks a scheduling policy which of the
// two to update on every step, and records losses and discriminator rates in
// an append-only ledger. The update rule specific to a GAN variant lives in
// a Strategy: Standard implements the classic minimax game, Wasserstein the
// weight-clipped critic with a distance history.
//
// Training is strictly sequential: each step finishes, statistics included,
// before the next scheduling decision is made.
package trainer
