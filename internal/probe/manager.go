package probe

import (
	"context"
	"fmt"

	"github.com/hamed0406/pgprobe/internal/repo"
)

// Manager owns the probe's single store connection. The handle is created
// lazily, bootstrapped at most once per connection lifetime, and dropped
// unconditionally on Invalidate. No retry or backoff here — retry timing is
// the run loop's cadence.
type Manager struct {
	connector    repo.Connector
	conn         repo.Conn
	bootstrapped bool
}

func NewManager(c repo.Connector) *Manager {
	return &Manager{connector: c}
}

// Ensure returns a usable connection, connecting and running the table
// bootstrap if needed. A bootstrap failure leaves the handle in place; the
// caller invalidates it like any other failed attempt.
func (m *Manager) Ensure(ctx context.Context) (repo.Conn, error) {
	if m.conn == nil {
		conn, err := m.connector.Connect(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConnect, err)
		}
		m.conn = conn
		m.bootstrapped = false
	}
	if !m.bootstrapped {
		if err := m.conn.EnsureTable(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBootstrap, err)
		}
		m.bootstrapped = true
	}
	return m.conn, nil
}

// Invalidate drops the handle. Idempotent; close errors are ignored so they
// never mask the failure being handled.
func (m *Manager) Invalidate(ctx context.Context) {
	if m.conn == nil {
		return
	}
	_ = m.conn.Close(ctx)
	m.conn = nil
	m.bootstrapped = false
}

// Current returns the established handle, or nil. Used only for best-effort
// teardown after the loop has stopped.
func (m *Manager) Current() repo.Conn {
	return m.conn
}
