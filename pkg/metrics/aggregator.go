package metrics

import (
	"sort"
	"sync"

	"github.com/cuemby/swanling/pkg/histogram"
	"github.com/cuemby/swanling/pkg/types"
)

// AggregatedName is the synthetic request name the merged, all-requests row
// is reported under in a Snapshot.
const AggregatedName = "Aggregated"

// NameStats holds every metric tracked for one request name: a pair of
// histograms (raw request time, and time after back-fill adjustment) plus
// simple outcome counters.
type NameStats struct {
	Name              string
	Requests          uint64
	Failures          uint64
	RawHistogram      *histogram.Histogram
	AdjustedHistogram *histogram.Histogram
}

func newNameStats(name string) *NameStats {
	return &NameStats{
		Name:              name,
		RawHistogram:      histogram.New(),
		AdjustedHistogram: histogram.New(),
	}
}

// entry pairs one request name's stats with its own mutex, so updates to
// "/login" never contend with updates to "/checkout". AggregatorState's own
// mutex only ever guards the name->entry map itself, not the histograms.
type entry struct {
	mu    sync.Mutex
	stats *NameStats
}

// AggregatorState is the single shared metrics sink every virtual user
// goroutine reports into. It holds one entry per distinct request name;
// locking is sharded by name so that concurrent users hitting different
// endpoints never block each other (spec.md §5).
type AggregatorState struct {
	mu     sync.RWMutex
	byName map[string]*entry
	order  []string
	seen   map[string]bool
}

// NewAggregatorState returns an empty aggregator ready to receive samples.
func NewAggregatorState() *AggregatorState {
	return &AggregatorState{
		byName: make(map[string]*entry),
		seen:   make(map[string]bool),
	}
}

func (a *AggregatorState) entryFor(name string) *entry {
	a.mu.RLock()
	e, ok := a.byName[name]
	a.mu.RUnlock()
	if ok {
		return e
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if e, ok = a.byName[name]; ok {
		return e
	}
	e = &entry{stats: newNameStats(name)}
	a.byName[name] = e
	if !a.seen[name] {
		a.seen[name] = true
		a.order = append(a.order, name)
	}
	return e
}

// Record folds one sample into its request name's stats. Raw samples
// (target == RecordRawAndAdjusted) update both histograms and the request
// counters; synthetic back-filled samples (target == RecordAdjustedOnly)
// update only the adjusted histogram, since they represent latency the
// aggregator corrects for rather than a request that was actually issued.
func (a *AggregatorState) Record(sample types.RequestSample, target types.RecordTarget) {
	e := a.entryFor(sample.Name)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.stats.AdjustedHistogram.Insert(sample.ResponseTime)

	if target == types.RecordRawAndAdjusted {
		e.stats.RawHistogram.Insert(sample.ResponseTime)
		e.stats.Requests++
		if !sample.Success {
			e.stats.Failures++
		}
	}
}

// Snapshot returns a copy of every name's stats, sorted by name, with
// a final "Aggregated" row merging all of them — the "PER REQUEST METRICS"
// table plus its summary footer row (spec.md §4.4/§4.6) are built directly
// from this.
func (a *AggregatorState) Snapshot() []NameStats {
	a.mu.RLock()
	names := make([]string, len(a.order))
	copy(names, a.order)
	a.mu.RUnlock()

	sort.Strings(names)

	out := make([]NameStats, 0, len(names)+1)
	aggregated := newNameStats(AggregatedName)

	for _, name := range names {
		a.mu.RLock()
		e := a.byName[name]
		a.mu.RUnlock()

		e.mu.Lock()
		copied := NameStats{
			Name:              e.stats.Name,
			Requests:          e.stats.Requests,
			Failures:          e.stats.Failures,
			RawHistogram:      e.stats.RawHistogram.Clone(),
			AdjustedHistogram: e.stats.AdjustedHistogram.Clone(),
		}
		e.mu.Unlock()

		aggregated.Requests += copied.Requests
		aggregated.Failures += copied.Failures
		aggregated.RawHistogram.Merge(copied.RawHistogram)
		aggregated.AdjustedHistogram.Merge(copied.AdjustedHistogram)

		out = append(out, copied)
	}

	out = append(out, *aggregated)
	return out
}
