package cadence

import (
	"testing"
	"time"

	"github.com/cuemby/swanling/pkg/types"
)

// fakeClock returns a fixed sequence of timestamps, one per call, then
// repeats the last value for any extra calls.
func fakeClock(steps ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		if i >= len(steps) {
			return steps[len(steps)-1]
		}
		v := steps[i]
		i++
		return v
	}
}

func TestCadenceUndefinedBeforeFirstLoop(t *testing.T) {
	tr := New(types.CadenceAverage)
	if _, ok := tr.Cadence(); ok {
		t.Error("Cadence() should be undefined before any loop completes")
	}
}

func TestEndLoopWithoutStart(t *testing.T) {
	tr := New(types.CadenceAverage)
	if _, err := tr.EndLoop(); err != ErrEndWithoutStart {
		t.Errorf("EndLoop() error = %v, want ErrEndWithoutStart", err)
	}
}

func TestAveragePolicy(t *testing.T) {
	base := time.Unix(0, 0)
	tr := New(types.CadenceAverage)
	tr.now = fakeClock(
		base, base.Add(100*time.Millisecond),
		base.Add(200*time.Millisecond), base.Add(500*time.Millisecond),
	)

	tr.StartLoop()
	d1, _ := tr.EndLoop()
	tr.StartLoop()
	d2, _ := tr.EndLoop()

	if d1 != 100 || d2 != 300 {
		t.Fatalf("durations = %d, %d; want 100, 300", d1, d2)
	}

	cadence, ok := tr.Cadence()
	if !ok || cadence != 200 {
		t.Errorf("Cadence() = %d, %v; want 200, true", cadence, ok)
	}
}

func TestMinimumAndMaximumPolicy(t *testing.T) {
	base := time.Unix(0, 0)
	for _, tc := range []struct {
		policy types.CadencePolicy
		want   int64
	}{
		{types.CadenceMinimum, 50},
		{types.CadenceMaximum, 300},
	} {
		tr := New(tc.policy)
		tr.now = fakeClock(
			base, base.Add(300*time.Millisecond),
			base.Add(300*time.Millisecond), base.Add(350*time.Millisecond),
		)
		tr.StartLoop()
		tr.EndLoop()
		tr.StartLoop()
		tr.EndLoop()

		cadence, ok := tr.Cadence()
		if !ok || cadence != tc.want {
			t.Errorf("policy %s: Cadence() = %d, %v; want %d, true", tc.policy, cadence, ok, tc.want)
		}
	}
}

func TestDisabledPolicyNeverDefined(t *testing.T) {
	base := time.Unix(0, 0)
	tr := New(types.CadenceDisabled)
	tr.now = fakeClock(base, base.Add(time.Second))
	tr.StartLoop()
	tr.EndLoop()

	if _, ok := tr.Cadence(); ok {
		t.Error("disabled policy must never report a defined cadence")
	}
}
