/*
Package scenario holds the registry of task sequences a run can assign to
its virtual users, and the weighted-random selection used to pick among
them.

A Registry is built once at startup from the run's configuration: each
virtual-user type is a types.TaskSequence carrying a registration weight,
and each Task inside a sequence carries its own weight, which SelectTask
uses to pick among a sequence's tasks (the scheduler's loop runs every
task in order and does not call it). Selection at both levels uses the same cumulative-weight
walk, the standard technique for weighted random choice among a small
fixed set of integer-weighted items.

This package does not know how a Task's request actually gets issued —
that is pkg/issuer's job. It only ever hands back a types.Task or
types.TaskSequence value for the scheduler to drive.
*/
package scenario
