package logs_cleanup

import (
	"syslogbull/internal/config"
	logs_core "syslogbull/internal/features/logs/core"
	"syslogbull/internal/util/logger"
)

var logCleanupBackgroundService = NewLogCleanupBackgroundService(
	logs_core.GetLogCoreRepository(),
	config.GetEnv().LogsRetentionDays,
	logger.GetLogger(),
)

func GetLogCleanupBackgroundService() *LogCleanupBackgroundService {
	return logCleanupBackgroundService
}
