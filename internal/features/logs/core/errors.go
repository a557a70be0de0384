package logs_core

import "fmt"

// ParseFailure is returned for text that does not match the syslog
// grammar. It is a value to log and skip, the caller keeps going.
type ParseFailure struct {
	Raw string
}

func (e *ParseFailure) Error() string {
	return "message does not match syslog grammar"
}

// StorageError wraps a failed write. Callers log it and drop the record.
type StorageError struct {
	Record LogRecord
	Err    error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to store log record from %q: %v", e.Record.Hostname, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
