package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/inv?sslmode=disable", migrateURL("postgres://u:p@db:5432/inv?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/inv", migrateURL("postgresql://u@db/inv"))
	assert.Equal(t, "pgx5://ya", migrateURL("pgx5://ya"))
}

func TestMigracionesEmbebidas(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	assert.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, "000001_init.up.sql")
	assert.Contains(t, names, "000001_init.down.sql")
}

func TestMigracionInicial_LibroInmutableYCantidades64(t *testing.T) {
	raw, err := migrationsFS.ReadFile("migrations/000001_init.up.sql")
	assert.NoError(t, err)
	sql := string(raw)
	assert.Contains(t, sql, "quantity       BIGINT NOT NULL DEFAULT 0 CHECK (quantity >= 0)")
	assert.Contains(t, sql, "quantity       BIGINT NOT NULL CHECK (quantity > 0)")
	assert.NotContains(t, sql, "INTEGER")
	assert.Contains(t, sql, "REFERENCES products (id) ON DELETE NO ACTION")
	assert.Equal(t, 3, strings.Count(sql, "ON DELETE CASCADE"), "solo las FK a associations caen en cascada")
}
