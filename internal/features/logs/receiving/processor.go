package logs_receiving

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	logs_core "syslogbull/internal/features/logs/core"
	logs_parsing "syslogbull/internal/features/logs/parsing"
)

const (
	defaultWriteTimeout = 10 * time.Second
	maxLoggedRawLength  = 512
)

type LogWriter interface {
	WriteLog(ctx context.Context, record logs_core.LogRecord) error
}

// MessageProcessor runs one candidate message through decode, parse and
// write. Failures are logged and counted, they never reach the caller.
type MessageProcessor struct {
	parser       *logs_parsing.SyslogParser
	writer       LogWriter
	logger       *slog.Logger
	writeTimeout time.Duration
}

func NewMessageProcessor(writer LogWriter, logger *slog.Logger) *MessageProcessor {
	return &MessageProcessor{
		parser:       logs_parsing.NewSyslogParser(),
		writer:       writer,
		logger:       logger,
		writeTimeout: defaultWriteTimeout,
	}
}

// Process handles one message and reports whether it was stored.
func (p *MessageProcessor) Process(transport Transport, raw []byte) bool {
	messagesReceivedTotal.WithLabelValues(string(transport)).Inc()

	text, replaced := decodeText(raw)
	if replaced {
		decodeFailuresTotal.WithLabelValues(string(transport)).Inc()
		p.logger.Debug("replaced invalid UTF-8 in incoming message",
			slog.String("transport", string(transport)))
	}

	record, err := p.parser.Parse(text)
	if err != nil {
		parseFailuresTotal.WithLabelValues(string(transport)).Inc()
		p.logger.Warn("failed to parse syslog message",
			slog.String("transport", string(transport)),
			slog.String("raw", truncateForLog(text)))
		return false
	}

	// Shutdown cancellation must not abort a write that already started.
	ctx, cancel := context.WithTimeout(context.Background(), p.writeTimeout)
	defer cancel()

	if err := p.writer.WriteLog(ctx, record); err != nil {
		storageErrorsTotal.WithLabelValues(string(transport)).Inc()

		p.logger.Error("failed to store syslog message",
			slog.String("transport", string(transport)),
			slog.String("hostname", record.Hostname),
			slog.String("logLevel", record.LogLevel),
			slog.String("message", truncateForLog(record.Message)),
			slog.String("error", err.Error()))
		return false
	}

	messagesStoredTotal.WithLabelValues(string(transport)).Inc()
	return true
}

func truncateForLog(s string) string {
	if len(s) <= maxLoggedRawLength {
		return s
	}

	cut := maxLoggedRawLength
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}

	return s[:cut] + "..."
}
