package storage

import (
	"errors"
	"fmt"
	stdlog "log"
	"os"
	"strings"
	"sync"
	"time"

	"syslogbull/internal/config"
	"syslogbull/internal/util/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	connMaxLifetime = 30 * time.Minute
	connMaxIdleTime = 5 * time.Minute
	slowQueryTime   = time.Second
)

var (
	once sync.Once
	db   *gorm.DB
)

// GetDb returns the shared connection pool built from DATABASE_DSN. The
// pool is safe for concurrent use, callers never hold a connection.
func GetDb() *gorm.DB {
	once.Do(func() {
		env := config.GetEnv()

		conn, err := Open(env.DatabaseDsn, env.MaxDbConnections)
		if err != nil {
			logger.GetLogger().Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}

		db = conn
	})

	return db
}

// Open creates a pooled gorm connection. PostgreSQL DSNs ("postgres://",
// "postgresql://" or key=value form) use pgx; "file:", "sqlite://" and
// "*.db" DSNs use SQLite.
func Open(dsn string, maxConnections int) (*gorm.DB, error) {
	if maxConnections <= 0 {
		return nil, fmt.Errorf("max connections must be positive, got %d", maxConnections)
	}

	dialector, isSqlite, err := dialectorFor(dsn)
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(
			stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             slowQueryTime,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database pool: %w", err)
	}

	// SQLite allows a single writer, so concurrent callers queue on the pool
	if isSqlite {
		maxConnections = 1
	}

	sqlDB.SetMaxOpenConns(maxConnections)
	sqlDB.SetMaxIdleConns(max(maxConnections/2, 1))
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

func Close(conn *gorm.DB) error {
	if conn == nil {
		return nil
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

func dialectorFor(dsn string) (gorm.Dialector, bool, error) {
	dsn = strings.TrimSpace(dsn)

	switch {
	case dsn == "":
		return nil, false, errors.New("database dsn is empty")

	case strings.HasPrefix(dsn, "postgres://"),
		strings.HasPrefix(dsn, "postgresql://"),
		strings.Contains(dsn, "host="):
		return postgres.Open(dsn), false, nil

	case strings.HasPrefix(dsn, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(dsn, "sqlite://")), true, nil

	case strings.HasPrefix(dsn, "file:"),
		strings.HasSuffix(dsn, ".db"),
		strings.Contains(dsn, ".db?"):
		return sqlite.Open(dsn), true, nil

	default:
		return nil, false, fmt.Errorf("unsupported database dsn: %q", redactDsn(dsn))
	}
}

func redactDsn(dsn string) string {
	if idx := strings.Index(dsn, "@"); idx != -1 {
		return "***" + dsn[idx:]
	}

	return dsn
}
