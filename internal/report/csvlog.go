package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hamed0406/pgprobe/internal/domain"
)

var header = []string{"timestamp", "status", "error", "attempt_duration_ms"}

// CSVLog is the durable per-attempt audit log. Records are flushed one at a
// time so a crash mid-run loses at most the in-flight record.
type CSVLog struct {
	f *os.File
	w *csv.Writer
}

// OpenCSVLog appends to path, creating it (and parent directories) if needed.
// The header row is written only when the file is new or empty.
func OpenCSVLog(path string) (*CSVLog, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}

	fresh := true
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		fresh = false
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open attempt log: %w", err)
	}

	l := &CSVLog{f: f, w: csv.NewWriter(f)}
	if fresh {
		if err := l.write(header); err != nil {
			f.Close()
			return nil, err
		}
	}
	return l, nil
}

// Record appends one attempt row and flushes it.
func (l *CSVLog) Record(o domain.AttemptOutcome) error {
	return l.write([]string{
		o.Timestamp.Format(time.RFC3339Nano),
		o.Status(),
		o.Error,
		fmt.Sprintf("%.3f", float64(o.Duration)/float64(time.Millisecond)),
	})
}

func (l *CSVLog) write(row []string) error {
	if err := l.w.Write(row); err != nil {
		return fmt.Errorf("write attempt log: %w", err)
	}
	l.w.Flush()
	if err := l.w.Error(); err != nil {
		return fmt.Errorf("flush attempt log: %w", err)
	}
	return nil
}

func (l *CSVLog) Close() error {
	l.w.Flush()
	return l.f.Close()
}
