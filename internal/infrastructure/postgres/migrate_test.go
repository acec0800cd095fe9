package postgres

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/brecho-pos/pkg/config"
)

func TestMigrationURL_TraduceEsquema(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/brecho?sslmode=disable", migrationURL("postgres://u:p@db:5432/brecho?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/brecho", migrationURL("postgresql://u@db/brecho"))
	assert.Equal(t, "pgx5://ya", migrationURL("pgx5://ya"))
}

func TestMigrations_EmbebidasEnParesUpDown(t *testing.T) {
	ups, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrationsFS, "migrations/*.down.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}

func TestDescribe_OcultaPassword(t *testing.T) {
	got := Describe(config.DBConfig{DatabaseURL: "postgres://app:secreta@db:5432/brecho"})
	assert.NotContains(t, got, "secreta")
	assert.Contains(t, got, "db:5432")
}

func TestNullHelpers(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	require.NotNil(t, nullIfEmpty("x"))
	assert.Equal(t, "x", emptyIfNull(nullIfEmpty("x")))
	assert.Equal(t, "", emptyIfNull(nil))
}
