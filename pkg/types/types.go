// Package types defines the core data structures shared across swanling:
// the cadence policy, the task sequence a user runs, and the request
// sample that flows from the issuer through back-fill into the aggregator.
package types

import "time"

// CadencePolicy selects how a virtual user's cadence is derived from its
// history of completed loop durations.
type CadencePolicy string

const (
	// CadenceDisabled turns off Coordinated Omission mitigation entirely:
	// no cadence is tracked, the detector never fires, and raw == adjusted.
	CadenceDisabled CadencePolicy = "disabled"

	// CadenceAverage uses the running mean loop duration.
	CadenceAverage CadencePolicy = "average"

	// CadenceMinimum uses the smallest observed loop duration (most
	// aggressive back-fill).
	CadenceMinimum CadencePolicy = "minimum"

	// CadenceMaximum uses the largest observed loop duration (least
	// aggressive back-fill).
	CadenceMaximum CadencePolicy = "maximum"
)

// Enabled reports whether this policy turns on cadence tracking at all.
func (p CadencePolicy) Enabled() bool {
	return p == CadenceAverage || p == CadenceMinimum || p == CadenceMaximum
}

// RecordTarget selects which histograms a sample is inserted into.
type RecordTarget int

const (
	// RecordRawAndAdjusted inserts the sample into both the raw and the
	// adjusted histogram for its request name. Used for every real,
	// actually-issued request.
	RecordRawAndAdjusted RecordTarget = iota

	// RecordAdjustedOnly inserts the sample into the adjusted histogram
	// only. Used for synthetic back-filled samples.
	RecordAdjustedOnly
)

// RequestSample is a single observation of one HTTP request, real or
// synthesized by the back-fill generator. Field names and JSON tags are
// bit-exact to the request-log schema.
type RequestSample struct {
	Elapsed                    int64  `json:"elapsed"`
	ResponseTime               int64  `json:"response_time"`
	Method                     string `json:"method"`
	Name                       string `json:"name"`
	URL                        string `json:"url"`
	FinalURL                   string `json:"final_url"`
	Redirected                 bool   `json:"redirected"`
	StatusCode                 int    `json:"status_code"`
	Success                    bool   `json:"success"`
	Update                     bool   `json:"update"`
	Error                      string `json:"error"`
	User                       int    `json:"user"`
	UserCadence                int64  `json:"user_cadence"`
	CoordinatedOmissionElapsed int64  `json:"coordinated_omission_elapsed"`
}

// Synthetic reports whether this sample was generated by the back-fill
// generator rather than observed from a real request.
func (s RequestSample) Synthetic() bool {
	return s.CoordinatedOmissionElapsed != 0
}

// RequestOutcome is what an Issuer (the external HTTP-transport
// collaborator) reports back for a single dispatched request. It carries
// everything needed to build a RequestSample except the fields the
// scheduler itself owns (elapsed, user, user_cadence).
type RequestOutcome struct {
	Method       string
	URL          string
	FinalURL     string
	Redirected   bool
	StatusCode   int
	Success      bool
	Update       bool
	Error        string
	ResponseTime time.Duration
}

// Task is one named step of a TaskSequence. A task issues one or more
// requests each time it runs; the request/response mechanics themselves
// are the Issuer's concern (see pkg/issuer), not this package's.
type Task struct {
	Name   string
	Weight int // relative selection weight within its sequence, >= 1
}

// TaskSequence is the ordered, immutable-once-running list of tasks a
// virtual user type executes, once per loop.
type TaskSequence struct {
	Name  string
	Tasks []Task
}
