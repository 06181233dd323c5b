/*
Package types defines the core data structures shared across swanling's
Coordinated Omission mitigation core: the cadence policy an operator
selects, the request sample that flows from a real or synthesized request
into the metrics aggregator, and the task sequence a virtual user repeats
in a loop.

# Core Types

CadencePolicy:
  - disabled: no cadence tracking, no back-fill, raw == adjusted always.
  - average / minimum / maximum: which running statistic over completed
    loop durations becomes a user's cadence.

RequestSample:
  - The unit the aggregator consumes. Field names and JSON tags are
    bit-exact to the request-log schema so a log line can be decoded
    straight into this struct.
  - CoordinatedOmissionElapsed distinguishes real samples (0) from
    back-filled synthetic ones (nonzero).

RequestOutcome:
  - What an Issuer (the external HTTP-transport collaborator) hands back
    for one dispatched request. The scheduler combines an Outcome with
    its own bookkeeping (elapsed, user id, current cadence) to build a
    RequestSample.

Task / TaskSequence:
  - The ordered, weighted list of named steps a virtual user type runs
    once per loop. The request mechanics of a task are not this
    package's concern; see pkg/issuer.

# Design Patterns

Enums are typed strings (CadencePolicy, not an int) so misconfiguration
fails readably rather than silently defaulting. RecordTarget is a small
int enum instead, since it is an internal aggregator routing decision
rather than user-facing configuration.

# Thread Safety

Every type here is a plain value or a slice of plain values with no
internal synchronization — callers that share a *RequestSample (they
generally don't; each is produced once and handed off by value) are
responsible for their own locking. This package performs no I/O and
imports nothing outside the standard library, so it can be imported by
every other swanling package without cycles.
*/
package types
