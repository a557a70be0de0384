package logs_core

import (
	"testing"

	"syslogbull/internal/util/logger"
	test_utils "syslogbull/internal/util/testing"

	"github.com/stretchr/testify/require"
)

// CreateTestLogCoreRepository returns a migrated repository backed by a
// throwaway SQLite database.
func CreateTestLogCoreRepository(t *testing.T) *LogCoreRepository {
	t.Helper()

	repository := NewLogCoreRepository(test_utils.CreateTestDb(t), logger.GetLogger())
	require.NoError(t, repository.Migrate())

	return repository
}

func CreateTestLogRecord(hostname, logLevel, message string) LogRecord {
	return LogRecord{
		Timestamp: "2024-03-05T10:00:00Z",
		Hostname:  hostname,
		LogLevel:  logLevel,
		Message:   message,
	}
}

func (r *LogCoreRepository) DropTableForTest() error {
	return r.db.Migrator().DropTable(&LogRow{})
}
