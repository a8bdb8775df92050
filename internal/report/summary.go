package report

import (
	"fmt"
	"io"
	"time"

	"github.com/hamed0406/pgprobe/internal/domain"
)

// WriteSummary renders the human-readable end-of-run report. "No intervals"
// is reported explicitly so an all-clear run is distinguishable from a run
// whose summary was cut off.
func WriteSummary(w io.Writer, r domain.RunReport) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Probe Summary ===")
	fmt.Fprintf(w, "Total attempts: %d\n", r.Stats.TotalAttempts)
	fmt.Fprintf(w, "Succeeded: %d\n", r.Stats.SuccessCount)
	fmt.Fprintf(w, "Failed: %d\n", r.Stats.FailureCount)

	if len(r.Intervals) == 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No downtime intervals detected during probe run.")
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Downtime intervals detected (%s):\n", r.EndedAt.Location())
	for _, iv := range r.Intervals {
		fmt.Fprintf(w, "  - from %s to %s (%.3f seconds)\n",
			iv.Start.Format(time.RFC3339Nano),
			iv.End.Format(time.RFC3339Nano),
			iv.Duration().Seconds(),
		)
	}
}
