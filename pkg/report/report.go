package report

import (
	"time"

	"github.com/cuemby/swanling/pkg/histogram"
	"github.com/cuemby/swanling/pkg/metrics"
)

// percentileLabels mirrors histogram.Percentiles' order exactly, for the
// fixed column set spec.md §6 requires.
var percentileLabels = []string{"50%", "75%", "98%", "99%", "99.9%", "99.99%"}

// RawRow is one line of the raw "PER REQUEST METRICS" table.
type RawRow struct {
	Name   string
	AvgMs  float64
	MinMs  int64
	MaxMs  int64
	Median int64
}

// AdjustedRow is one line of the adjusted table. StdDevMs is the RMS
// deviation of adjusted samples from the raw mean (spec.md §4.4), not the
// adjusted distribution's own standard deviation.
type AdjustedRow struct {
	Name     string
	AvgMs    float64
	StdDevMs float64
	MaxMs    int64
	Median   int64
}

// PercentileRow is one line of the percentile table, values keyed by
// percentileLabels.
type PercentileRow struct {
	Name   string
	Values map[string]int64
}

// Summary is the run-level footer goose prints after its per-name tables
// (SPEC_FULL.md §11): total elapsed time and aggregate throughput.
type Summary struct {
	Elapsed        time.Duration
	TotalRequests  uint64
	TotalFailures  uint64
	RequestsPerSec float64
	FailuresPerSec float64
}

// Report is the fully-built, render-ready output of one run.
type Report struct {
	Raw                 []RawRow
	Adjusted            []AdjustedRow // empty if co-mitigation never produced a synthetic sample
	RawPercentiles      []PercentileRow
	AdjustedPercentiles []PercentileRow // empty alongside Adjusted
	Summary             Summary
}

// Build turns an aggregator snapshot into a Report. elapsed is the run's
// wall-clock duration, used only for the summary footer.
func Build(snapshot []metrics.NameStats, elapsed time.Duration) Report {
	var r Report
	var totalRequests, totalFailures uint64
	anyAdjusted := false

	for _, stats := range snapshot {
		totalRequests += stats.Requests
		totalFailures += stats.Failures

		r.Raw = append(r.Raw, rawRowFrom(stats))

		if stats.AdjustedHistogram.Count() > stats.RawHistogram.Count() {
			anyAdjusted = true
		}
		r.RawPercentiles = append(r.RawPercentiles, percentileRowFrom(stats.Name, stats.RawHistogram))
	}

	if anyAdjusted {
		for _, stats := range snapshot {
			r.Adjusted = append(r.Adjusted, adjustedRowFrom(stats))
			r.AdjustedPercentiles = append(r.AdjustedPercentiles, percentileRowFrom(stats.Name, stats.AdjustedHistogram))
		}
	}

	r.Summary = Summary{
		Elapsed:       elapsed,
		TotalRequests: totalRequests,
		TotalFailures: totalFailures,
	}
	if secs := elapsed.Seconds(); secs > 0 {
		r.Summary.RequestsPerSec = float64(totalRequests) / secs
		r.Summary.FailuresPerSec = float64(totalFailures) / secs
	}
	return r
}

func rawRowFrom(stats metrics.NameStats) RawRow {
	h := stats.RawHistogram
	return RawRow{
		Name:   stats.Name,
		AvgMs:  h.Average(),
		MinMs:  h.Min(),
		MaxMs:  h.Max(),
		Median: h.Percentile(0.5),
	}
}

func adjustedRowFrom(stats metrics.NameStats) AdjustedRow {
	h := stats.AdjustedHistogram
	rawMean := stats.RawHistogram.Average()
	return AdjustedRow{
		Name:     stats.Name,
		AvgMs:    h.Average(),
		StdDevMs: h.RMSFromMean(rawMean),
		MaxMs:    h.Max(),
		Median:   h.Percentile(0.5),
	}
}

func percentileRowFrom(name string, h *histogram.Histogram) PercentileRow {
	values := make(map[string]int64, len(histogram.Percentiles))
	for i, p := range histogram.Percentiles {
		values[percentileLabels[i]] = h.Percentile(p)
	}
	return PercentileRow{Name: name, Values: values}
}
