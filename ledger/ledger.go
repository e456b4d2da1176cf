package ledger

import "sort"
import "strings"
import "github.com/neurlang/gantrainer/role"

// Metric names used by the trainers.
const (
	Losses               = "losses"
	EpochsTrained        = "epochs_trained"
	FPR                  = "d_fpr"
	Precision            = "d_precision"
	Recall               = "d_recall"
	Accuracy             = "d_accuracy"
	WassersteinDistances = "wass_dists"
)

// LossSeries returns the series name of the loss log of r, e.g. "losses.G".
func LossSeries(r role.Role) string {
	return Losses + "." + r.String()
}

// View is read-only access to a ledger. Scheduling policies and callers
// outside the trainer only ever see a View.
type View interface {

	// EpochsTrained returns how many steps trained r so far.
	EpochsTrained(r role.Role) int

	// Losses returns a copy of the loss log of r.
	Losses(r role.Role) []float64

	// Len returns the length of the named series, 0 if unknown.
	Len(name string) int

	// Series returns a copy of the named series.
	Series(name string) ([]float64, bool)

	// Names lists every known series.
	Names() []string

	// Summary describes the named series.
	Summary(name string) (Summary, error)
}

// Ledger holds per-role losses and epoch counters plus per-step metrics.
type Ledger struct {
	losses  role.Pair[Log]
	epochs  role.Pair[int]
	metrics map[string]*Log
}

// New creates a ledger with the given metric series declared up front,
// so they are listed (and plottable) even while still empty.
func New(declare ...string) *Ledger {
	l := &Ledger{metrics: make(map[string]*Log)}
	l.Declare(declare...)
	return l
}

// Declare makes the named metric series known without appending to them.
func (l *Ledger) Declare(names ...string) {
	if l.metrics == nil {
		l.metrics = make(map[string]*Log)
	}
	for _, name := range names {
		if _, ok := l.metrics[name]; !ok {
			l.metrics[name] = new(Log)
		}
	}
}

// RecordLoss appends the loss of a step that trained r and counts the step.
func (l *Ledger) RecordLoss(r role.Role, loss float64) {
	l.losses[r].Append(loss)
	l.epochs[r]++
}

// Append adds v to the named per-step metric.
func (l *Ledger) Append(name string, v float64) {
	l.Declare(name)
	l.metrics[name].Append(v)
}

// EpochsTrained returns how many steps trained r so far.
func (l *Ledger) EpochsTrained(r role.Role) int {
	return l.epochs[r]
}

// Losses returns a copy of the loss log of r.
func (l *Ledger) Losses(r role.Role) []float64 {
	return l.losses[r].All()
}

// Steps returns the number of recorded steps over both roles.
func (l *Ledger) Steps() (n int) {
	for _, r := range role.All {
		n += l.epochs[r]
	}
	return
}

func (l *Ledger) log(name string) *Log {
	if strings.HasPrefix(name, Losses+".") {
		if r, ok := role.Parse(strings.TrimPrefix(name, Losses+".")); ok {
			return &l.losses[r]
		}
		return nil
	}
	return l.metrics[name]
}

// Len returns the length of the named series, 0 if unknown.
func (l *Ledger) Len(name string) int {
	if lg := l.log(name); lg != nil {
		return lg.Len()
	}
	return 0
}

// Series returns a copy of the named series.
func (l *Ledger) Series(name string) ([]float64, bool) {
	lg := l.log(name)
	if lg == nil {
		return nil, false
	}
	return lg.All(), true
}

// Names lists the loss series followed by the metric series in lexical order.
func (l *Ledger) Names() []string {
	var names []string
	for name := range l.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return append([]string{LossSeries(role.Generator), LossSeries(role.Discriminator)}, names...)
}

// View returns read-only access to l. The result cannot be asserted back to
// a *Ledger.
func (l *Ledger) View() View {
	return readOnly{l}
}

type readOnly struct {
	l *Ledger
}

func (v readOnly) EpochsTrained(r role.Role) int        { return v.l.EpochsTrained(r) }
func (v readOnly) Losses(r role.Role) []float64         { return v.l.Losses(r) }
func (v readOnly) Len(name string) int                  { return v.l.Len(name) }
func (v readOnly) Series(name string) ([]float64, bool) { return v.l.Series(name) }
func (v readOnly) Names() []string                      { return v.l.Names() }
func (v readOnly) Summary(name string) (Summary, error) { return v.l.Summary(name) }

