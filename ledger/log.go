// Package ledger records training statistics as append-only series.
package ledger

// Log is an append-only sequence of scalars. The zero value is an empty log.
type Log struct {
	values []float64
}

// Append adds v to the end of the log.
func (l *Log) Append(v float64) {
	l.values = append(l.values, v)
}

// Len returns the number of recorded values.
func (l *Log) Len() int {
	return len(l.values)
}

// At returns the i-th recorded value.
func (l *Log) At(i int) float64 {
	return l.values[i]
}

// Last returns the most recent value, if any.
func (l *Log) Last() (float64, bool) {
	if len(l.values) == 0 {
		return 0, false
	}
	return l.values[len(l.values)-1], true
}

// All returns a copy of every recorded value in order.
func (l *Log) All() []float64 {
	out := make([]float64, len(l.values))
	copy(out, l.values)
	return out
}
