package downtime

import (
	"time"

	"github.com/hamed0406/pgprobe/internal/domain"
)

// Tracker derives contiguous downtime intervals from a stream of
// (timestamp, success) pairs. It is fed by exactly one goroutine, in
// non-decreasing timestamp order; it never buffers or reorders input.
//
// State is either up (currentStart == zero) or down since currentStart.
// Consecutive failures merge into one interval; the interval closes at the
// timestamp of the next success, or at Finalize.
type Tracker struct {
	intervals    []domain.DowntimeInterval
	currentStart time.Time
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Record consumes one attempt outcome. A success while down closes the open
// interval at eventTime; a failure while up opens one at eventTime.
func (t *Tracker) Record(eventTime time.Time, success bool) {
	if success {
		if !t.currentStart.IsZero() {
			t.intervals = append(t.intervals, domain.DowntimeInterval{
				Start: t.currentStart,
				End:   eventTime,
			})
			t.currentStart = time.Time{}
		}
		return
	}
	if t.currentStart.IsZero() {
		t.currentStart = eventTime
	}
}

// Finalize closes a trailing open interval at finalTime. Calling it while up
// is a no-op, so repeated calls never duplicate intervals.
func (t *Tracker) Finalize(finalTime time.Time) {
	if t.currentStart.IsZero() {
		return
	}
	t.intervals = append(t.intervals, domain.DowntimeInterval{
		Start: t.currentStart,
		End:   finalTime,
	})
	t.currentStart = time.Time{}
}

// Down reports whether the tracker currently has an open interval.
func (t *Tracker) Down() bool {
	return !t.currentStart.IsZero()
}

// Intervals returns the closed intervals recorded so far, oldest first.
func (t *Tracker) Intervals() []domain.DowntimeInterval {
	return t.intervals
}
