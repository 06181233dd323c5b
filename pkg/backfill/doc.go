/*
Package backfill synthesizes the statistically expected latency samples a
virtual user would have issued during a stall, correcting for Coordinated
Omission bias (spec.md §4.3).

Generate is a pure function of (dispatch elapsed, response time, cadence):
given the same three integers it always produces the same synthetic
sequence, which is what spec.md §8's determinism property requires. It
holds no state and performs no I/O, so it is trivially safe to call from
many virtual user goroutines concurrently — each call only touches its own
arguments and return value.

Resolution of spec.md §9's open question: the real sample is the k=0 term
and is never duplicated into the synthetic sequence; synthetics start at
T-C (k=1) and step down by C per spec.md §8 Scenario B, which pins down
the only reading consistent with that worked example.
*/
package backfill
