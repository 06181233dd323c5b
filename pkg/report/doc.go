/*
Package report builds the end-of-run report from a metrics snapshot: the
"PER REQUEST METRICS" tables (raw, then adjusted when any back-fill
occurred), the percentile table, and a run summary footer.

Report is plain data — Build never touches a terminal or a file. Render
turns it into the lipgloss-styled table this package's callers print to
stdout/log; MarshalJSON turns it into the structured form cmd/swanling writes to
--report-file and pkg/runstore persists.

Column sets and header strings are fixed (spec.md §6): raw rows are
`Name | Avg (ms) | Min | Max | Median`, adjusted rows are `Name | Avg (ms)
| Std Dev | Max | Median`, and the percentile table is `Name | 50% | 75%
| 98% | 99% | 99.9% | 99.99%`. The table styling is grounded on
hydraide-hydraide's cmd/observe/styles.go palette (bold header row, muted
borders, right-aligned numeric columns) adapted to swanling's simpler
static table instead of that package's live TUI.
*/
package report
