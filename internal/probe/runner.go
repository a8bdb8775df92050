package probe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/pgprobe/internal/domain"
	"github.com/hamed0406/pgprobe/internal/downtime"
)

// AttemptSink receives one durable record per attempt (the CSV audit log).
type AttemptSink interface {
	Record(o domain.AttemptOutcome) error
}

// Notifier is satisfied by notify.Notifier; nil disables notifications.
type Notifier interface {
	Send(ctx context.Context, title, text string) error
}

type RunnerConfig struct {
	Interval    time.Duration
	MaxAttempts int // 0 = unlimited
	Location    *time.Location
}

// Runner is the single-threaded probe loop. It owns the connection manager,
// the counters, the downtime tracker and the attempt sink; nothing else
// touches them while the loop runs. Read-only observers get mutex-guarded
// snapshot copies via Snapshot.
type Runner struct {
	logger   *zap.Logger
	manager  *Manager
	executor *Executor
	sink     AttemptSink
	notifier Notifier
	cfg      RunnerConfig

	tracker *downtime.Tracker
	stats   domain.RunStats

	mu   sync.RWMutex
	snap domain.Snapshot
}

func NewRunner(
	logger *zap.Logger,
	manager *Manager,
	executor *Executor,
	sink AttemptSink,
	notifier Notifier,
	cfg RunnerConfig,
) *Runner {
	if cfg.Interval <= 0 {
		cfg.Interval = 100 * time.Millisecond
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Runner{
		logger:   logger,
		manager:  manager,
		executor: executor,
		sink:     sink,
		notifier: notifier,
		cfg:      cfg,
		tracker:  downtime.NewTracker(),
	}
}

// Run drives the fixed-cadence loop until ctx is cancelled or the attempt
// ceiling is reached. Cancellation drains: the in-flight iteration finishes
// its bookkeeping, then the loop stops. The final report is always produced.
func (r *Runner) Run(ctx context.Context) domain.RunReport {
	// Store calls get a context that survives cancellation: an in-flight
	// attempt is never aborted mid-flight, since an abort would be
	// indistinguishable from a remote failure.
	storeCtx := context.WithoutCancel(ctx)

	startedAt := r.now()
	r.setRunning(true)
	r.logger.Info("probe_started",
		zap.Duration("interval", r.cfg.Interval),
		zap.Int("max_attempts", r.cfg.MaxAttempts),
	)

	for {
		if ctx.Err() != nil {
			r.logger.Info("probe_draining")
			break
		}
		if r.cfg.MaxAttempts > 0 && r.stats.TotalAttempts >= r.cfg.MaxAttempts {
			r.logger.Info("probe_attempt_ceiling", zap.Int("max_attempts", r.cfg.MaxAttempts))
			break
		}

		iterStart := time.Now()
		attemptTime := r.now()

		err := r.attemptOnce(storeCtx, attemptTime)
		success := err == nil

		r.stats.TotalAttempts++
		if success {
			r.stats.SuccessCount++
		} else {
			r.stats.FailureCount++
			r.manager.Invalidate(storeCtx)
		}

		wasDown := r.tracker.Down()
		r.tracker.Record(attemptTime, success)
		r.notifyTransition(storeCtx, wasDown, success, attemptTime, err)

		outcome := domain.AttemptOutcome{
			Timestamp: attemptTime,
			Success:   success,
			Duration:  time.Since(iterStart),
		}
		if err != nil {
			outcome.Error = err.Error()
			r.logger.Warn("probe_attempt_failed",
				zap.Time("attempt_time", attemptTime),
				zap.Error(err),
			)
		}
		if serr := r.sink.Record(outcome); serr != nil {
			r.logger.Warn("probe_log_write_failed", zap.Error(serr))
		}
		r.publish(outcome)

		// Cadence: never sleep a negative amount; a slow iteration runs
		// back-to-back with the next one, with no catch-up burst.
		if sleep := r.cfg.Interval - time.Since(iterStart); sleep > 0 {
			select {
			case <-time.After(sleep):
			case <-ctx.Done():
			}
		}
	}

	endedAt := r.now()
	r.tracker.Finalize(endedAt)
	r.teardown(storeCtx)

	report := domain.RunReport{
		Stats:     r.stats,
		Intervals: r.tracker.Intervals(),
		StartedAt: startedAt,
		EndedAt:   endedAt,
	}
	r.setRunning(false)
	r.logger.Info("probe_stopped",
		zap.Int("total_attempts", report.Stats.TotalAttempts),
		zap.Int("failures", report.Stats.FailureCount),
		zap.Int("downtime_intervals", len(report.Intervals)),
	)
	return report
}

func (r *Runner) attemptOnce(ctx context.Context, attemptTime time.Time) error {
	conn, err := r.manager.Ensure(ctx)
	if err != nil {
		return err
	}
	return r.executor.Execute(ctx, conn, attemptTime)
}

// teardown clears and releases the connection after the loop has stopped.
// Best-effort: the run has already logically ended, so failures only get a
// log line.
func (r *Runner) teardown(ctx context.Context) {
	conn := r.manager.Current()
	if conn == nil {
		return
	}
	if err := conn.Truncate(ctx); err != nil {
		r.logger.Warn("probe_teardown_truncate_failed", zap.Error(err))
	}
	r.manager.Invalidate(ctx)
}

func (r *Runner) notifyTransition(ctx context.Context, wasDown, success bool, at time.Time, attemptErr error) {
	if r.notifier == nil {
		return
	}
	switch {
	case !wasDown && !success:
		text := fmt.Sprintf("First failure at %s\nError: %v", at.Format(time.RFC3339), attemptErr)
		_ = r.notifier.Send(ctx, "🔴 Probe target DOWN", text)
	case wasDown && success:
		intervals := r.tracker.Intervals()
		last := intervals[len(intervals)-1]
		text := fmt.Sprintf("Recovered at %s after %.3fs of downtime",
			at.Format(time.RFC3339), last.Duration().Seconds())
		_ = r.notifier.Send(ctx, "🟢 Probe target RECOVERED", text)
	}
}

func (r *Runner) now() time.Time {
	return time.Now().In(r.cfg.Location)
}

// Snapshot returns a copy of the current run state for read-only consumers.
func (r *Runner) Snapshot() domain.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap
}

func (r *Runner) publish(outcome domain.AttemptOutcome) {
	intervals := r.tracker.Intervals()
	cp := make([]domain.DowntimeInterval, len(intervals))
	copy(cp, intervals)
	o := outcome

	r.mu.Lock()
	r.snap.Stats = r.stats
	r.snap.Down = r.tracker.Down()
	r.snap.Intervals = cp
	r.snap.LastAttempt = &o
	r.mu.Unlock()
}

func (r *Runner) setRunning(running bool) {
	r.mu.Lock()
	r.snap.Running = running
	if !running {
		intervals := r.tracker.Intervals()
		cp := make([]domain.DowntimeInterval, len(intervals))
		copy(cp, intervals)
		r.snap.Intervals = cp
		r.snap.Down = false
		r.snap.Stats = r.stats
	}
	r.mu.Unlock()
}
