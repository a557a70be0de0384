package logs_core

import (
	"time"

	time_parser "syslogbull/internal/util/time"

	"github.com/google/uuid"
)

// LogRecord is one parsed syslog message. It is a value: handlers pass it
// to the sink and keep no reference afterwards.
type LogRecord struct {
	Timestamp string `json:"timestamp"`
	Hostname  string `json:"hostname"`
	LogLevel  string `json:"log_level"`
	Message   string `json:"message"`
}

type LogRow struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Timestamp  string    `gorm:"column:timestamp;type:text;not null"`
	Hostname   string    `gorm:"column:hostname;type:text;not null;index:idx_logs_hostname"`
	LogLevel   string    `gorm:"column:log_level;type:text;not null;index:idx_logs_log_level"`
	Message    string    `gorm:"column:message;type:text;not null"`
	LoggedAt   time.Time `gorm:"column:logged_at;not null;index:idx_logs_logged_at"`
	ReceivedAt time.Time `gorm:"column:received_at;not null;index:idx_logs_received_at"`
}

func (LogRow) TableName() string {
	return "logs"
}

func NewLogRow(record LogRecord, receivedAt time.Time) *LogRow {
	return &LogRow{
		ID:         uuid.New(),
		Timestamp:  record.Timestamp,
		Hostname:   record.Hostname,
		LogLevel:   record.LogLevel,
		Message:    record.Message,
		LoggedAt:   time_parser.ParseTimestamp(record.Timestamp),
		ReceivedAt: receivedAt.UTC(),
	}
}

func (r *LogRow) ToRecord() LogRecord {
	return LogRecord{
		Timestamp: r.Timestamp,
		Hostname:  r.Hostname,
		LogLevel:  r.LogLevel,
		Message:   r.Message,
	}
}
