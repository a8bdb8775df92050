package downtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamed0406/pgprobe/internal/domain"
)

func ts(sec int) time.Time {
	return time.Date(2025, 8, 18, 12, 0, sec, 0, time.UTC)
}

func TestTracker_FailureRunBoundedBySuccesses(t *testing.T) {
	tr := NewTracker()
	tr.Record(ts(0), true)
	tr.Record(ts(1), false)
	tr.Record(ts(2), false)
	tr.Record(ts(3), true)
	tr.Finalize(ts(4))

	require.Len(t, tr.Intervals(), 1)
	got := tr.Intervals()[0]
	assert.Equal(t, ts(1), got.Start)
	assert.Equal(t, ts(3), got.End)
	assert.Equal(t, 2*time.Second, got.Duration())
}

func TestTracker_AllFailuresClosedByFinalize(t *testing.T) {
	tr := NewTracker()
	tr.Record(ts(0), false)
	tr.Record(ts(1), false)
	require.True(t, tr.Down())

	tr.Finalize(ts(2))
	require.Len(t, tr.Intervals(), 1)
	assert.Equal(t, domain.DowntimeInterval{Start: ts(0), End: ts(2)}, tr.Intervals()[0])
	assert.False(t, tr.Down())
}

func TestTracker_AllSuccessesYieldNoIntervals(t *testing.T) {
	tr := NewTracker()
	tr.Record(ts(0), true)
	tr.Record(ts(1), true)
	tr.Finalize(ts(2))
	assert.Empty(t, tr.Intervals())
}

func TestTracker_EmptyFinalizeYieldsNoIntervals(t *testing.T) {
	tr := NewTracker()
	tr.Finalize(ts(0))
	assert.Empty(t, tr.Intervals())
}

func TestTracker_FinalizeIsIdempotent(t *testing.T) {
	tr := NewTracker()
	tr.Record(ts(0), false)
	tr.Finalize(ts(1))
	tr.Finalize(ts(2))
	tr.Finalize(ts(3))
	require.Len(t, tr.Intervals(), 1)
	assert.Equal(t, ts(1), tr.Intervals()[0].End)
}

func TestTracker_IsolatedFailureMakesNarrowInterval(t *testing.T) {
	tr := NewTracker()
	tr.Record(ts(0), true)
	tr.Record(ts(1), false)
	tr.Record(ts(1), true) // tie: same timestamp closes a zero-width interval
	tr.Finalize(ts(2))

	require.Len(t, tr.Intervals(), 1)
	assert.Equal(t, time.Duration(0), tr.Intervals()[0].Duration())
}

func TestTracker_IntervalCountMatchesFailureRuns(t *testing.T) {
	// Each maximal run of consecutive failures becomes exactly one interval.
	outcomes := []bool{true, false, false, true, false, true, true, false, false, false, true}
	tr := NewTracker()
	for i, ok := range outcomes {
		tr.Record(ts(i), ok)
	}
	tr.Finalize(ts(len(outcomes)))

	require.Len(t, tr.Intervals(), 3)
	for i := 1; i < len(tr.Intervals()); i++ {
		prev, cur := tr.Intervals()[i-1], tr.Intervals()[i]
		assert.False(t, cur.Start.Before(prev.End), "intervals must be disjoint and ordered")
	}
}

func TestTracker_ConsecutiveFailuresKeepFirstStart(t *testing.T) {
	tr := NewTracker()
	tr.Record(ts(5), false)
	tr.Record(ts(6), false)
	tr.Record(ts(7), false)
	tr.Record(ts(8), true)

	require.Len(t, tr.Intervals(), 1)
	assert.Equal(t, ts(5), tr.Intervals()[0].Start, "start stays anchored to the first failure")
}
