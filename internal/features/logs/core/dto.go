package logs_core

// LogSearchFilter holds optional filters. Empty strings match everything.
type LogSearchFilter struct {
	Hostname string
	LogLevel string
	Message  string
	Limit    int
	Offset   int
}
