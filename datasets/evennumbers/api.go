package evennumbers

import "math/rand/v2"

import "gonum.org/v1/gonum/mat"

import "github.com/neurlang/gantrainer/datasets"

// Bits is the width of one sample.
const Bits = 7

// Max is the exclusive upper bound of the sampled integers.
const Max = 1 << Bits

// Row writes the binary digits of v into a Bits wide row.
func Row(v int) []float64 {
	row := make([]float64, Bits)
	for i := Bits - 1; i >= 0; i-- {
		row[i] = float64(v & 1)
		v >>= 1
	}
	return row
}

// Value reads a row back as an integer, rounding each digit at 0.5.
func Value(row []float64) (v int) {
	for _, d := range row {
		v <<= 1
		if d > 0.5 {
			v |= 1
		}
	}
	return
}

// IsEven reports whether the row rounds to an even number.
func IsEven(row []float64) bool {
	return Value(row)&1 == 0
}

// Sampler draws uniformly from the even numbers in [0, Max).
func Sampler(rng *rand.Rand) datasets.Sampler {
	return func(n int) *mat.Dense {
		out := mat.NewDense(n, Bits, nil)
		for i := 0; i < n; i++ {
			out.SetRow(i, Row(2*rng.IntN(Max/2)))
		}
		return out
	}
}

// EvenRate returns the share of rows of m which round to even numbers.
func EvenRate(m *mat.Dense) float64 {
	r, _ := m.Dims()
	var even int
	for i := 0; i < r; i++ {
		if IsEven(m.RawRowView(i)) {
			even++
		}
	}
	return float64(even) / float64(r)
}
