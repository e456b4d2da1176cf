// Package main trains a Wasserstein GAN on the even numbers below 128 and
// charts the mean Wasserstein distance between generated and real numbers
// after every batch.
package main
