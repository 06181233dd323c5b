package cadence

import (
	"errors"
	"time"

	"github.com/cuemby/swanling/pkg/types"
)

// ErrEndWithoutStart is returned by EndLoop when called without a matching
// StartLoop. A correct scheduler never triggers this; spec.md §7 treats it
// as a fatal assertion failure in the caller.
var ErrEndWithoutStart = errors.New("cadence: EndLoop called without a preceding StartLoop")

// Tracker accumulates one virtual user's loop durations and derives its
// cadence on demand. Zero value is ready to use with CadenceDisabled
// semantics (Cadence never returns ok=true) unless a Policy is set.
type Tracker struct {
	Policy types.CadencePolicy

	loopCount int64
	sum       int64
	min       int64
	max       int64

	lastStart time.Time
	running   bool

	now func() time.Time // overridable for tests
}

// New creates a Tracker using the given cadence policy.
func New(policy types.CadencePolicy) *Tracker {
	return &Tracker{Policy: policy, now: time.Now}
}

// StartLoop records the monotonic start time of the current iteration.
func (t *Tracker) StartLoop() {
	if t.now == nil {
		t.now = time.Now
	}
	t.lastStart = t.now()
	t.running = true
}

// EndLoop computes the elapsed milliseconds since the matching StartLoop,
// folds it into the running sum/min/max/count, and returns the duration.
func (t *Tracker) EndLoop() (durationMs int64, err error) {
	if !t.running {
		return 0, ErrEndWithoutStart
	}
	t.running = false

	durationMs = t.now().Sub(t.lastStart).Milliseconds()
	if durationMs < 0 {
		durationMs = 0
	}

	if t.loopCount == 0 {
		t.min, t.max = durationMs, durationMs
	} else {
		if durationMs < t.min {
			t.min = durationMs
		}
		if durationMs > t.max {
			t.max = durationMs
		}
	}
	t.sum += durationMs
	t.loopCount++

	return durationMs, nil
}

// LoopCount returns the number of completed loops.
func (t *Tracker) LoopCount() int64 {
	return t.loopCount
}

// Cadence returns the derived cadence in milliseconds under the tracker's
// configured policy, and false if undefined (no loop has completed yet, or
// the policy is CadenceDisabled).
func (t *Tracker) Cadence() (ms int64, ok bool) {
	if t.loopCount == 0 || !t.Policy.Enabled() {
		return 0, false
	}

	switch t.Policy {
	case types.CadenceMinimum:
		return t.min, true
	case types.CadenceMaximum:
		return t.max, true
	case types.CadenceAverage:
		fallthrough
	default:
		// round to nearest integer ms, per spec.md §4.1
		return roundDiv(t.sum, t.loopCount), true
	}
}

// roundDiv computes round(a/b) for positive integers using integer math.
func roundDiv(a, b int64) int64 {
	if b == 0 {
		return 0
	}
	return (a + b/2) / b
}
