package repo

import (
	"context"
	"time"
)

// Ports (interfaces) — the probe core is agnostic to the store's protocol.

// Conn is one established store connection. The probe owns exactly one at a
// time and tears it down on any failure before the next attempt.
type Conn interface {
	// EnsureTable creates the target table if it does not exist.
	EnsureTable(ctx context.Context) error
	// Insert performs the probed write: one row with the attempt timestamp
	// and the configured label.
	Insert(ctx context.Context, observedAt time.Time, label string) error
	// Truncate empties the target table.
	Truncate(ctx context.Context) error
	Close(ctx context.Context) error
}

// Connector opens fresh connections. Called lazily by the connection manager
// whenever the current handle is absent.
type Connector interface {
	Connect(ctx context.Context) (Conn, error)
}
