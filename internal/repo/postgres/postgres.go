package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hamed0406/pgprobe/internal/repo"
)

var _ repo.Connector = (*Connector)(nil)
var _ repo.Conn = (*Conn)(nil)

// Connector opens single pgx connections against one DSN and target table.
// The probe deliberately avoids a pool: downtime measurement needs exactly
// one handle whose lifecycle the loop controls.
type Connector struct {
	dsn   string
	table pgx.Identifier
}

func NewConnector(dsn, tableName string) (*Connector, error) {
	table, err := ParseTable(tableName)
	if err != nil {
		return nil, err
	}
	return &Connector{dsn: dsn, table: table}, nil
}

func (c *Connector) Connect(ctx context.Context) (repo.Conn, error) {
	pc, err := pgx.Connect(ctx, c.dsn)
	if err != nil {
		return nil, fmt.Errorf("pgx connect: %w", err)
	}
	return &Conn{conn: pc, table: c.table}, nil
}

// Conn wraps one established *pgx.Conn plus the sanitized table identifier.
type Conn struct {
	conn  *pgx.Conn
	table pgx.Identifier
}

func (c *Conn) EnsureTable(ctx context.Context) error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id BIGSERIAL PRIMARY KEY,
		observed_at TIMESTAMPTZ NOT NULL,
		probe_label TEXT NOT NULL,
		note TEXT
	)`, c.table.Sanitize())
	if _, err := c.conn.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

func (c *Conn) Insert(ctx context.Context, observedAt time.Time, label string) error {
	stmt := fmt.Sprintf(
		`INSERT INTO %s (observed_at, probe_label, note) VALUES ($1, $2, $3)`,
		c.table.Sanitize(),
	)
	if _, err := c.conn.Exec(ctx, stmt, observedAt, label, nil); err != nil {
		return fmt.Errorf("insert probe row: %w", err)
	}
	return nil
}

func (c *Conn) Truncate(ctx context.Context) error {
	stmt := fmt.Sprintf(`TRUNCATE TABLE %s`, c.table.Sanitize())
	if _, err := c.conn.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("truncate table: %w", err)
	}
	return nil
}

func (c *Conn) Close(ctx context.Context) error {
	return c.conn.Close(ctx)
}
