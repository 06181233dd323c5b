package backfill

import "github.com/cuemby/swanling/pkg/types"

// Generate produces the synthetic RequestSamples for a real sample whose
// response time exceeded cadence. real.CoordinatedOmissionElapsed must be
// 0 (it is a real, actually-issued request); real is returned unmodified
// as the "raw" return value so callers can route the same struct to both
// histograms without re-deriving it.
//
// Per spec.md §4.3: for k = 1, 2, 3, ... while T-k*C > C, emit a synthetic
// with response_time = T-k*C, stopping before the next step would produce
// a value <= C.
func Generate(real types.RequestSample, cadenceMs int64) (raw types.RequestSample, synthetic []types.RequestSample) {
	raw = real
	raw.CoordinatedOmissionElapsed = 0

	if cadenceMs <= 0 {
		return raw, nil
	}

	t := real.ResponseTime
	n := Count(t, cadenceMs)
	if n == 0 {
		return raw, nil
	}

	synthetic = make([]types.RequestSample, 0, n)
	for k := int64(1); k <= n; k++ {
		shift := k * cadenceMs
		s := real
		s.ResponseTime = t - shift
		s.CoordinatedOmissionElapsed = shift
		s.Elapsed = real.Elapsed - shift
		if s.Elapsed < 0 {
			s.Elapsed = 0
		}
		synthetic = append(synthetic, s)
	}
	return raw, synthetic
}

// Count returns the number of synthetic samples Generate would produce for
// response time t and cadence c, without building them — used by the
// aggregator invariant tests (spec.md §8 invariant 4) and by callers that
// only need the count.
//
// This is deliberately not the closed-form floor((t-c)/c) from invariant 4:
// that formula over-counts by one whenever t-c is an exact multiple of c
// (e.g. t=2c), because the defining condition is the strict "t-k*c > c",
// not "t-k*c >= c". spec.md §8's boundary behavior for t=2c ("zero
// synthetics, since t-c = c, not > c") only holds under the strict
// inequality, so Count walks it directly rather than risk the off-by-one.
func Count(responseTimeMs, cadenceMs int64) int64 {
	if cadenceMs <= 0 {
		return 0
	}
	var n int64
	for k := int64(1); responseTimeMs-k*cadenceMs > cadenceMs; k++ {
		n++
	}
	return n
}
