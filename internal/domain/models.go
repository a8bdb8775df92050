package domain

import "time"

// AttemptOutcome is the record of a single probe attempt. One value per loop
// iteration, immutable once recorded.
type AttemptOutcome struct {
	Timestamp time.Time     `json:"timestamp"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// Status renders the outcome for the attempt log.
func (o AttemptOutcome) Status() string {
	if o.Success {
		return "success"
	}
	return "failure"
}

// DowntimeInterval is a closed span during which the target was unreachable.
// Start is the first failing attempt's timestamp, End the next success (or
// run end). End >= Start always.
type DowntimeInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (d DowntimeInterval) Duration() time.Duration {
	return d.End.Sub(d.Start)
}

// RunStats are the per-run attempt counters, owned by the run loop.
type RunStats struct {
	TotalAttempts int `json:"total_attempts"`
	SuccessCount  int `json:"success_count"`
	FailureCount  int `json:"failure_count"`
}
