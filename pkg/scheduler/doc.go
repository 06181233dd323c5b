/*
Package scheduler runs the user loop: one goroutine per virtual user,
ramped up at a configurable rate, each selecting one task sequence at
start-up and then repeatedly issuing every task in it, in order, feeding
the results through cadence tracking, slow-loop detection, and back-fill
before publishing to the sample bus.

The Start/Stop/run shape mirrors teacher's own scheduler.go ticker loop
(NewScheduler, Start spawns one goroutine, Stop closes a stopCh); the
per-entity goroutine-plus-context.CancelFunc bookkeeping is adapted from
pkg/worker/health_monitor.go's pattern of tracking one cancel function per
monitored entity so Stop can cancel them all together.

# Per-user loop

 1. tracker.StartLoop
 2. issuer.Issue for each task of the sequence — the only network calls a
    user makes; each sample is published onto the samplebus.Bus
 3. tracker.EndLoop, then detector.Check of the loop duration against the
    tracked cadence
 4. only during the loop after one that Check flagged slow: for each
    request, detector.CheckRequest decides the INFO line, and
    backfill.Generate adds synthetic samples, published adjusted-only

The loop observes the shared stop signal at the top of every iteration
and right after each request completes — never mid-request; an in-flight
request always finishes before the user exits.

# Ramp-up

Users are started at cfg.HatchRate per second rather than all at once
(goose's --hatch-rate). Stop cancels every user's context together and
blocks until all user goroutines have returned.
*/
package scheduler
