package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTable(t *testing.T) {
	id, err := ParseTable("downtime_probe")
	require.NoError(t, err)
	assert.Equal(t, pgx.Identifier{"downtime_probe"}, id)
	assert.Equal(t, `"downtime_probe"`, id.Sanitize())

	id, err = ParseTable("audit.downtime_probe")
	require.NoError(t, err)
	assert.Equal(t, `"audit"."downtime_probe"`, id.Sanitize())

	id, err = ParseTable(" audit . probe ")
	require.NoError(t, err)
	assert.Equal(t, pgx.Identifier{"audit", "probe"}, id)
}

func TestParseTable_Rejects(t *testing.T) {
	for _, name := range []string{"", ".", "a.", ".b", "a.b.c", "a..b"} {
		_, err := ParseTable(name)
		assert.Error(t, err, "name %q should be rejected", name)
	}
}
