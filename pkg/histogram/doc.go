/*
Package histogram implements the bounded-resolution latency histogram the
metrics aggregator keeps one pair of (raw, adjusted) per request name.

Values are tracked in whole milliseconds across a fixed set of
geometrically spaced bucket boundaries rather than as a list of raw
samples: a test that runs for hours at high concurrency must not grow
memory with the number of requests. The boundary growth factor is chosen
so that every bucket's relative width stays within 5%, comfortably inside
what a load-test latency report needs, while covering at least 60 seconds
of latency with a 1ms floor (see growthFactor and DefaultMaxTrackedMs).

Percentiles use the standard nearest-rank method over bucket counts: for
percentile p out of N total samples, report the upper bound of the bucket
that contains the rank ceil(p*N) sample. This is the same trade-off
HdrHistogram-style libraries make — exact min/max/avg are tracked
separately without relying on bucket precision.
*/
package histogram
