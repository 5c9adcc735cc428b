package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFilesArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrationFiles, "migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, entry := range entries {
		name := entry.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}
	assert.Equal(t, ups, downs)
}

func TestInitialSchemaEnforcesSingleNotePerPair(t *testing.T) {
	body, err := fs.ReadFile(migrationFiles, "migrations/000001_init_schema.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "UNIQUE (etudiant_id, ue_id)")
	assert.Contains(t, string(body), "ON DELETE SET NULL")
}
