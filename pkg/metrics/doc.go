/*
Package metrics is the shared sink every virtual user goroutine reports
into, and the Prometheus exposition built on top of it.

AggregatorState holds one entry per request name, each with a raw and an
adjusted histogram plus request/failure counters. Locking is sharded by
name (an RWMutex over the name->entry map, one mutex per entry) so that
concurrent users hitting different endpoints never block each other.
Snapshot returns a deep-enough copy of every entry for reporting, plus a
final "Aggregated" row merging all of them.

PromExporter periodically samples an AggregatorState and republishes its
counts as Prometheus counters and histograms, so a run can be scraped live
rather than only reported at the end. Counters track their own previous
totals per name so republishing only ever adds the delta since the last
tick, never resets a counter backwards.

Timer and the health checker (HealthChecker, GetHealth, GetReadiness) are
small standalone helpers unrelated to the aggregator: Timer wraps a start
time for observing a duration into a Prometheus histogram, and the health
checker tracks readiness of long-lived components (the aggregator, the
request issuer) for the /health and /ready endpoints.
*/
package metrics
