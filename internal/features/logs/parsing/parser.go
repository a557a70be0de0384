package logs_parsing

import (
	"regexp"
	"strings"

	logs_core "syslogbull/internal/features/logs/core"
)

// <PRI>VERSION TIMESTAMP HOSTNAME APP - CONTENT - MESSAGE
//
// CONTENT is matched lazily so that MESSAGE keeps every later " - ".
const syslogPattern = `^<\d+>\d+ ` +
	`(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d{1,9})?Z) ` +
	`(\S+) ` +
	`(\S+) ` +
	`- .*? - ` +
	`(?s:(.*))$`

const (
	timestampGroup = 1
	hostnameGroup  = 2
	logLevelGroup  = 3
	messageGroup   = 4
)

type SyslogParser struct {
	re *regexp.Regexp
}

func NewSyslogParser() *SyslogParser {
	return &SyslogParser{
		re: regexp.MustCompile(syslogPattern),
	}
}

// Parse extracts a LogRecord from one message. Anything that does not
// match the whole grammar yields a *logs_core.ParseFailure.
func (p *SyslogParser) Parse(raw string) (logs_core.LogRecord, error) {
	line := trimFrameTerminator(raw)

	matches := p.re.FindStringSubmatch(line)
	if matches == nil {
		return logs_core.LogRecord{}, &logs_core.ParseFailure{Raw: raw}
	}

	return logs_core.LogRecord{
		Timestamp: matches[timestampGroup],
		Hostname:  matches[hostnameGroup],
		LogLevel:  matches[logLevelGroup],
		Message:   matches[messageGroup],
	}, nil
}

// trimFrameTerminator drops one trailing LF or CRLF left by the sender.
func trimFrameTerminator(raw string) string {
	line, found := strings.CutSuffix(raw, "\n")
	if !found {
		return raw
	}

	return strings.TrimSuffix(line, "\r")
}
