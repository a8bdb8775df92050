package postgres

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// ParseTable splits a "table" or "schema.table" name into a pgx.Identifier
// that sanitizes to properly quoted SQL.
func ParseTable(name string) (pgx.Identifier, error) {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
		if parts[i] == "" {
			return nil, fmt.Errorf("invalid table name %q: empty identifier", name)
		}
	}
	if len(parts) > 2 {
		return nil, fmt.Errorf("invalid table name %q: want 'table' or 'schema.table'", name)
	}
	return pgx.Identifier(parts), nil
}
