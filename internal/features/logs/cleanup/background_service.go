package logs_cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"syslogbull/internal/config"
)

type LogRetentionStore interface {
	DeleteLogsReceivedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// LogCleanupBackgroundService deletes rows older than the retention window.
// It runs beside ingestion and never touches the write path.
type LogCleanupBackgroundService struct {
	logRepository LogRetentionStore
	retentionDays int
	logger        *slog.Logger
	now           func() time.Time

	wg sync.WaitGroup
}

const (
	retentionCleanupInterval = 1 * time.Minute
	retentionCleanupTimeout  = 5 * time.Minute
)

func NewLogCleanupBackgroundService(
	logRepository LogRetentionStore,
	retentionDays int,
	logger *slog.Logger,
) *LogCleanupBackgroundService {
	return &LogCleanupBackgroundService{
		logRepository: logRepository,
		retentionDays: retentionDays,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *LogCleanupBackgroundService) IsEnabled() bool {
	return s.retentionDays > 0
}

// StartWorkers starts the retention worker unless retention is disabled.
// The worker stops when ctx is done or shutdown was signalled.
func (s *LogCleanupBackgroundService) StartWorkers(ctx context.Context) {
	if !s.IsEnabled() {
		s.logger.Info("Log retention disabled, cleanup worker not started")
		return
	}

	s.logger.Info("Starting log cleanup background worker",
		slog.Int("retentionDays", s.retentionDays),
		slog.Duration("retentionInterval", retentionCleanupInterval))

	s.wg.Add(1)
	go s.retentionWorker(ctx)
}

func (s *LogCleanupBackgroundService) Wait() {
	s.wg.Wait()
}

func (s *LogCleanupBackgroundService) ExecuteAllTasksForTest() error {
	if err := s.enforceRetention(context.Background()); err != nil {
		s.logger.Error("Error during retention cleanup in test execution", slog.String("error", err.Error()))
		return err
	}

	return nil
}

func (s *LogCleanupBackgroundService) retentionWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(retentionCleanupInterval)
	defer ticker.Stop()

	for {
		if config.IsShouldShutdown() {
			s.logger.Info("Retention cleanup worker shutting down due to shutdown signal")
			return
		}

		select {
		case <-ctx.Done():
			s.logger.Info("Retention cleanup worker shutting down")
			return

		case <-ticker.C:
			if err := s.enforceRetention(ctx); err != nil {
				s.logger.Error("Error during retention cleanup", slog.String("error", err.Error()))
			}
		}
	}
}

func (s *LogCleanupBackgroundService) enforceRetention(ctx context.Context) error {
	if !s.IsEnabled() {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, retentionCleanupTimeout)
	defer cancel()

	cutoff := s.now().UTC().AddDate(0, 0, -s.retentionDays)

	deleted, err := s.logRepository.DeleteLogsReceivedBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to delete logs received before %s: %w", cutoff.Format(time.RFC3339), err)
	}

	if deleted > 0 {
		s.logger.Info("Retention cleanup completed",
			slog.Int64("deletedLogs", deleted),
			slog.Time("cutoff", cutoff))
	}

	return nil
}
