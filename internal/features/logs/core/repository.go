package logs_core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
)

type LogCoreRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewLogCoreRepository(db *gorm.DB, logger *slog.Logger) *LogCoreRepository {
	return &LogCoreRepository{
		db:     db,
		logger: logger,
	}
}

func (r *LogCoreRepository) Migrate() error {
	if err := r.db.AutoMigrate(&LogRow{}); err != nil {
		return fmt.Errorf("failed to migrate logs table: %w", err)
	}

	return nil
}

// WriteLog appends one record as one row. It is safe to call from many
// goroutines at once, each call borrows a pooled connection.
func (r *LogCoreRepository) WriteLog(ctx context.Context, record LogRecord) error {
	row := NewLogRow(record, time.Now().UTC())

	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return &StorageError{Record: record, Err: err}
	}

	return nil
}

func (r *LogCoreRepository) SearchLogs(ctx context.Context, filter LogSearchFilter) ([]LogRecord, error) {
	query := r.db.WithContext(ctx).Model(&LogRow{})

	if filter.Hostname != "" {
		query = query.Where("hostname = ?", filter.Hostname)
	}

	if filter.LogLevel != "" {
		query = query.Where("log_level = ?", filter.LogLevel)
	}

	if filter.Message != "" {
		query = query.Where(r.messageContainsCondition(), filter.Message)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var rows []LogRow
	err := query.
		Order("logged_at DESC").
		Order("received_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search logs: %w", err)
	}

	records := make([]LogRecord, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].ToRecord())
	}

	return records, nil
}

func (r *LogCoreRepository) CountLogs(ctx context.Context) (int64, error) {
	var count int64

	if err := r.db.WithContext(ctx).Model(&LogRow{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count logs: %w", err)
	}

	return count, nil
}

func (r *LogCoreRepository) DeleteLogsReceivedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("received_at < ?", cutoff.UTC()).
		Delete(&LogRow{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete old logs: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func (r *LogCoreRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

// messageContainsCondition matches a literal, case-sensitive substring on
// every backend. LIKE folds ASCII case on SQLite but not on PostgreSQL.
func (r *LogCoreRepository) messageContainsCondition() string {
	if r.db.Dialector.Name() == "sqlite" {
		return "instr(message, ?) > 0"
	}

	return "strpos(message, ?) > 0"
}
