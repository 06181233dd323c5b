/*
Package cadence tracks one virtual user's loop timing and derives that
user's "cadence" — the characteristic duration of one loop — under
whichever policy the operator configured (average, minimum, or maximum).

A Tracker is not safe for concurrent use: each virtual user owns exactly
one Tracker, driven only from that user's own goroutine, matching the
scheduling model in spec.md §5 where virtual users never share mutable
state with each other.
*/
package cadence
