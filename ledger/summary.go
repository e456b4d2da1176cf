package ledger

import "github.com/montanaflynn/stats"
import "github.com/pkg/errors"

// Summary describes one series.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Last   float64
}

// Summary describes the named series. An unknown or empty series is an error.
func (l *Ledger) Summary(name string) (Summary, error) {
	lg := l.log(name)
	if lg == nil {
		return Summary{}, errors.Errorf("ledger: unknown series %q", name)
	}
	return Summarize(lg.values)
}

// Summarize computes count, mean, population standard deviation, extremes
// and the last value of data.
func Summarize(data []float64) (s Summary, err error) {
	if len(data) == 0 {
		return s, errors.Wrap(stats.ErrEmptyInput, "ledger: summarize")
	}
	s.Count = len(data)
	s.Last = data[len(data)-1]
	if s.Mean, err = stats.Mean(data); err != nil {
		return s, errors.Wrap(err, "ledger: mean")
	}
	if s.StdDev, err = stats.StandardDeviation(data); err != nil {
		return s, errors.Wrap(err, "ledger: standard deviation")
	}
	if s.Min, err = stats.Min(data); err != nil {
		return s, errors.Wrap(err, "ledger: min")
	}
	if s.Max, err = stats.Max(data); err != nil {
		return s, errors.Wrap(err, "ledger: max")
	}
	return s, nil
}
