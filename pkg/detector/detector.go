package detector

// SlowLoopFactor is the multiplier spec.md §4.2 fixes for flagging a loop
// (or a single request) as abnormally slow relative to cadence.
const SlowLoopFactor = 2

// Check reports whether loopDurationMs is abnormally long given cadenceMs.
// cadenceOK must be false when the user has not completed a loop yet (or
// cadence tracking is disabled); the detector never fires in that case.
func Check(loopDurationMs, cadenceMs int64, cadenceOK bool) bool {
	if !cadenceOK {
		return false
	}
	return loopDurationMs > SlowLoopFactor*cadenceMs
}

// CheckRequest reports whether a single request's response time alone
// exceeds cadence — the condition spec.md §4.2/§4.3 uses, during the loop
// following a slow loop, to log the "took abnormally long" message and
// make that request eligible for back-fill.
func CheckRequest(responseTimeMs, cadenceMs int64, cadenceOK bool) bool {
	if !cadenceOK {
		return false
	}
	return responseTimeMs > cadenceMs
}
