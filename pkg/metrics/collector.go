package metrics

import (
	"time"
)

// PromExporter periodically samples an AggregatorState and republishes its
// counts onto the package's Prometheus metrics, so a running load test can
// be scraped live instead of only reported at the end (spec.md §10 domain
// stack: prometheus/client_golang).
type PromExporter struct {
	state    *AggregatorState
	interval time.Duration
	stopCh   chan struct{}

	lastRequests map[string]uint64
	lastFailures map[string]uint64
}

// NewPromExporter creates an exporter sampling state every interval.
func NewPromExporter(state *AggregatorState, interval time.Duration) *PromExporter {
	return &PromExporter{
		state:        state,
		interval:     interval,
		stopCh:       make(chan struct{}),
		lastRequests: make(map[string]uint64),
		lastFailures: make(map[string]uint64),
	}
}

// Start begins the sampling loop in its own goroutine.
func (e *PromExporter) Start() {
	ticker := time.NewTicker(e.interval)
	go func() {
		e.sample()
		for {
			select {
			case <-ticker.C:
				e.sample()
			case <-e.stopCh:
				ticker.Stop()
				return
			}
		}
	}()
}

// Stop ends the sampling loop.
func (e *PromExporter) Stop() {
	close(e.stopCh)
}

// sample snapshots the aggregator and republishes counters and histograms.
// Counters only ever move forward, so sample tracks each name's previous
// request/failure totals and adds the delta since the last tick —
// Prometheus counters must never be reset to a lower value between scrapes.
func (e *PromExporter) sample() {
	for _, stats := range e.state.Snapshot() {
		if stats.Name == AggregatedName {
			continue
		}

		failureDelta := stats.Failures - e.lastFailures[stats.Name]
		requestDelta := stats.Requests - e.lastRequests[stats.Name]
		successDelta := requestDelta - failureDelta

		if successDelta > 0 {
			RequestsTotal.WithLabelValues(stats.Name, "success").Add(float64(successDelta))
		}
		if failureDelta > 0 {
			RequestsTotal.WithLabelValues(stats.Name, "failure").Add(float64(failureDelta))
		}

		e.lastRequests[stats.Name] = stats.Requests
		e.lastFailures[stats.Name] = stats.Failures

		if stats.AdjustedHistogram.Count() > 0 {
			RequestDuration.WithLabelValues(stats.Name).Observe(stats.AdjustedHistogram.Average() / 1000)
		}
	}
}
