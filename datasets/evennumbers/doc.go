// Package evennumbers is the toy dataset of even integers below 128 written
// as 7 binary digits, most significant first. A generator has learned it when
// its outputs round to rows whose last digit is 0.
package evennumbers
