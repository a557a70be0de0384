package test_utils

import (
	"path/filepath"
	"testing"

	"syslogbull/internal/storage"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// CreateTestDb opens a SQLite database in the test's temp dir. It is
// closed when the test finishes.
func CreateTestDb(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "logs.db"), 4)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = storage.Close(db)
	})

	return db
}
