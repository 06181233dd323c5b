/*
Package runconfig loads a run's configuration from a YAML file, the way
teacher's cmd/warren/apply.go reads a WarrenResource: os.ReadFile plus
yaml.Unmarshal into a tagged struct, wrapped in fmt.Errorf on failure.

Config covers exactly the external interface SPEC_FULL.md §9 lists —
co-mitigation, request-log, swanling-log, verbose, report-file, host,
users, run-time — plus hatch-rate for ramp-up, which pkg/scheduler needs
but spec.md doesn't name since it treats ramp-up as out of the core
component design.

Durations are loaded as Go duration strings ("30s", "5m") rather than a
bare integer, matching how a human writes a YAML config file; RunTime is
kept as the raw string and parsed by Validate (called from Load) and by
RunTimeDuration, so a malformed value surfaces as a regular error from
Load rather than panicking during struct decode.
*/
package runconfig
