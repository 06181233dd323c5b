/*
Package log provides structured logging for swanling using zerolog.

The log package wraps the zerolog library to provide JSON-structured
logging with component-specific loggers, configurable log levels, and
helper functions for common logging patterns. All logs include timestamps
and support filtering by severity level.

# Architecture

	┌──────────────────── LOGGING SYSTEM ──────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │            Global Logger                    │          │
	│  │  - Zerolog instance                         │          │
	│  │  - Initialized via log.Init()               │          │
	│  │  - Thread-safe for concurrent use           │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │           Configuration                     │          │
	│  │  - Level: debug/info/warn/error             │          │
	│  │  - Format: JSON or console (human)          │          │
	│  │  - Output: stdout, file, or custom writer   │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │         Context Loggers                     │          │
	│  │  - WithComponent("scheduler")               │          │
	│  │  - WithUser(7)                              │          │
	│  │  - WithRequestName("/checkout")              │          │
	│  └────────────────────────────────────────────┘           │
	└────────────────────────────────────────────────────────┘

# Usage

	log.Init(log.Config{Level: log.InfoLevel, JSONOutput: true, Output: os.Stdout})

	log.Info("run starting")

	userLog := log.WithUser(3)
	userLog.Warn().
		Int64("loop_duration_ms", 842).
		Int64("cadence_ms", 210).
		Msg("loop took abnormally long")

# Verbose Routing

When the run is started with --verbose, Init additionally tees INFO and
above to stderr via a zerolog.MultiLevelWriter, so a foreground run shows
per-request detail on the terminal while the structured log keeps going to
its configured file or stdout target. Without --verbose, nothing is
written to stderr.

SlowRequestWriter/SlowRequest sit outside the zerolog Logger entirely:
the "took abnormally long" line has a fixed text format independent of
JSON/console mode, so it is written directly rather than through a
zerolog event.

# Design Patterns

Global Logger Pattern:
  - Single package-level Logger instance, initialized once at startup,
    accessible from any package without being threaded through call sites.

Context Logger Pattern:
  - WithComponent/WithUser/WithRequestName return child loggers carrying
    one extra field, so call sites never repeat it themselves.

# See Also

  - Zerolog documentation: https://github.com/rs/zerolog
*/
package log
