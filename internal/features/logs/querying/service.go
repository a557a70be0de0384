package logs_querying

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	logs_core "syslogbull/internal/features/logs/core"

	"golang.org/x/sync/singleflight"
)

const (
	defaultSearchLimit = 1_000
	maxSearchLimit     = 10_000
	maxFilterLength    = 1_024
	searchTimeout      = 30 * time.Second
)

type LogSearcher interface {
	SearchLogs(ctx context.Context, filter logs_core.LogSearchFilter) ([]logs_core.LogRecord, error)
}

type LogQueryService struct {
	logRepository LogSearcher
	searchGroup   singleflight.Group
	logger        *slog.Logger
}

func NewLogQueryService(logRepository LogSearcher, logger *slog.Logger) *LogQueryService {
	return &LogQueryService{
		logRepository: logRepository,
		logger:        logger,
	}
}

// SearchLogs validates the request and runs it against storage. Identical
// searches in flight at the same time share one database query.
func (s *LogQueryService) SearchLogs(
	ctx context.Context,
	request *SearchLogsRequestDTO,
) (*SearchLogsResponseDTO, error) {
	filter, err := s.buildFilter(request)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%q|%q|%q|%d|%d",
		filter.Hostname, filter.LogLevel, filter.Message, filter.Limit, filter.Offset)

	// The shared query must not die with whichever caller started it.
	result, err, isShared := s.searchGroup.Do(key, func() (any, error) {
		searchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), searchTimeout)
		defer cancel()

		return s.logRepository.SearchLogs(searchCtx, filter)
	})
	if err != nil {
		s.logger.Error("Failed to search logs",
			slog.String("hostname", filter.Hostname),
			slog.String("logLevel", filter.LogLevel),
			slog.String("error", err.Error()))
		return nil, err
	}

	if isShared {
		s.logger.Debug("Log search result shared with concurrent identical request")
	}

	return &SearchLogsResponseDTO{
		Logs:   result.([]logs_core.LogRecord),
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

func (s *LogQueryService) buildFilter(request *SearchLogsRequestDTO) (logs_core.LogSearchFilter, error) {
	filter := logs_core.LogSearchFilter{
		Hostname: request.Hostname,
		LogLevel: request.LogLevel,
		Message:  request.Message,
		Limit:    defaultSearchLimit,
	}

	if request.Limit != nil {
		if *request.Limit <= 0 || *request.Limit > maxSearchLimit {
			return filter, &ValidationError{
				Code:    ErrorInvalidLimit,
				Message: fmt.Sprintf("limit must be between 1 and %d", maxSearchLimit),
			}
		}
		filter.Limit = *request.Limit
	}

	if request.Offset != nil {
		if *request.Offset < 0 {
			return filter, &ValidationError{
				Code:    ErrorInvalidOffset,
				Message: "offset must not be negative",
			}
		}
		filter.Offset = *request.Offset
	}

	for _, value := range []string{filter.Hostname, filter.LogLevel, filter.Message} {
		if len(value) > maxFilterLength {
			return filter, &ValidationError{
				Code:    ErrorFilterTooLong,
				Message: fmt.Sprintf("filter values must not exceed %d bytes", maxFilterLength),
			}
		}
	}

	return filter, nil
}
