package report

import (
	"encoding/json"
	"time"
)

// jsonReport is the structured form written to --report-file and
// persisted by pkg/runstore; its own and the summary's field names are
// lower_snake_case to match the request-log schema's convention (spec.md
// §6). Raw and adjusted rows carry no json tags, so their fields encode
// under the Go field names (Name, AvgMs, ...).
type jsonReport struct {
	Raw                 []RawRow            `json:"raw"`
	Adjusted            []AdjustedRow       `json:"adjusted,omitempty"`
	RawPercentiles      []jsonPercentileRow `json:"raw_percentiles"`
	AdjustedPercentiles []jsonPercentileRow `json:"adjusted_percentiles,omitempty"`
	Summary             jsonSummary         `json:"summary"`
}

type jsonPercentileRow struct {
	Name   string           `json:"name"`
	Values map[string]int64 `json:"values"`
}

type jsonSummary struct {
	ElapsedMs      int64   `json:"elapsed_ms"`
	TotalRequests  uint64  `json:"total_requests"`
	TotalFailures  uint64  `json:"total_failures"`
	RequestsPerSec float64 `json:"requests_per_sec"`
	FailuresPerSec float64 `json:"failures_per_sec"`
}

// MarshalJSON implements json.Marshaler so json.Marshal(report) and
// runstore's Store.Save both get the structured form without callers having
// to know about the internal jsonReport shape.
func (r Report) MarshalJSON() ([]byte, error) {
	out := jsonReport{
		Raw:      r.Raw,
		Adjusted: r.Adjusted,
		Summary: jsonSummary{
			ElapsedMs:      r.Summary.Elapsed.Milliseconds(),
			TotalRequests:  r.Summary.TotalRequests,
			TotalFailures:  r.Summary.TotalFailures,
			RequestsPerSec: r.Summary.RequestsPerSec,
			FailuresPerSec: r.Summary.FailuresPerSec,
		},
	}
	for _, p := range r.RawPercentiles {
		out.RawPercentiles = append(out.RawPercentiles, jsonPercentileRow{Name: p.Name, Values: p.Values})
	}
	for _, p := range r.AdjustedPercentiles {
		out.AdjustedPercentiles = append(out.AdjustedPercentiles, jsonPercentileRow{Name: p.Name, Values: p.Values})
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler, the inverse of MarshalJSON —
// used by pkg/runstore to reload a persisted run's report.
func (r *Report) UnmarshalJSON(data []byte) error {
	var in jsonReport
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	r.Raw = in.Raw
	r.Adjusted = in.Adjusted
	r.Summary = Summary{
		Elapsed:        time.Duration(in.Summary.ElapsedMs) * time.Millisecond,
		TotalRequests:  in.Summary.TotalRequests,
		TotalFailures:  in.Summary.TotalFailures,
		RequestsPerSec: in.Summary.RequestsPerSec,
		FailuresPerSec: in.Summary.FailuresPerSec,
	}
	r.RawPercentiles = nil
	for _, p := range in.RawPercentiles {
		r.RawPercentiles = append(r.RawPercentiles, PercentileRow{Name: p.Name, Values: p.Values})
	}
	r.AdjustedPercentiles = nil
	for _, p := range in.AdjustedPercentiles {
		r.AdjustedPercentiles = append(r.AdjustedPercentiles, PercentileRow{Name: p.Name, Values: p.Values})
	}
	return nil
}
