package domain

import "time"

// RunReport is the final result of a probe run: counters plus the ordered,
// disjoint list of downtime intervals.
type RunReport struct {
	Stats     RunStats           `json:"stats"`
	Intervals []DowntimeInterval `json:"intervals"`
	StartedAt time.Time          `json:"started_at"`
	EndedAt   time.Time          `json:"ended_at"`
}

// Snapshot is a point-in-time copy of run state published for read-only
// consumers (status API). It is a copy; holding one never blocks the loop.
type Snapshot struct {
	Running     bool               `json:"running"`
	Down        bool               `json:"down"`
	Stats       RunStats           `json:"stats"`
	Intervals   []DowntimeInterval `json:"intervals"`
	LastAttempt *AttemptOutcome    `json:"last_attempt,omitempty"`
}
