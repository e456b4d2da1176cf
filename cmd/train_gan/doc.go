// Package main trains a classic GAN to generate even numbers below 128,
// written as 7 binary digits. The generator is a single sigmoid layer and
// the discriminator a single sigmoid unit, both trained with Adam on binary
// cross entropy under the two-five rule.
package main
