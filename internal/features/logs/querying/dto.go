package logs_querying

import logs_core "syslogbull/internal/features/logs/core"

type SearchLogsRequestDTO struct {
	Hostname string `form:"hostname"`
	LogLevel string `form:"log_level"`
	Message  string `form:"message"`
	Limit    *int   `form:"limit"`
	Offset   *int   `form:"offset"`
}

type SearchLogsResponseDTO struct {
	Logs   []logs_core.LogRecord `json:"logs"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}
