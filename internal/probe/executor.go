package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/hamed0406/pgprobe/internal/repo"
)

// Executor performs one logical write per call. Any store error — lost
// connection, timeout, constraint violation — is normalized to ErrAttempt
// with the captured message; the probe never classifies causes further.
type Executor struct {
	Label string
}

func (e *Executor) Execute(ctx context.Context, conn repo.Conn, at time.Time) error {
	if err := conn.Insert(ctx, at, e.Label); err != nil {
		return fmt.Errorf("%w: %w", ErrAttempt, err)
	}
	return nil
}
