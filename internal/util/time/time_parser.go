package time_parser

import (
	"fmt"
	"strings"
	"time"
)

var timestampFormats = []string{
	time.RFC3339Nano,       // "2006-01-02T15:04:05.999999999Z07:00"
	"2006-01-02T15:04:05Z", // syslog UTC form
	"2006-01-02T15:04:05",  // ISO without timezone
	"2006-01-02 15:04:05",  // space separated
}

// ParseTimestamp converts a syslog timestamp string to UTC. Unparseable
// or empty input falls back to the current time, so a record always has
// a usable ordering key.
func ParseTimestamp(value string) time.Time {
	parsed, err := ParseTimestampStrict(value)
	if err != nil {
		return time.Now().UTC()
	}

	return parsed
}

func ParseTimestampStrict(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("timestamp is empty")
	}

	for _, format := range timestampFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported timestamp format: %q", value)
}
