package trainer

import "github.com/pkg/errors"
import "github.com/neurlang/gantrainer/plot"

// Plot hands the named ledger series to sink. Labels without a title are
// titled after the series.
func (t *Trainer) Plot(sink plot.Sink, series string, labels plot.Labels) error {
	data, ok := t.stats.Series(series)
	if !ok {
		return errors.Errorf("trainer: no series %q", series)
	}
	if labels.Title == "" {
		labels.Title = series
	}
	return errors.Wrapf(sink.Plot(data, labels), "trainer: plot %s", series)
}
