package logs_core

import (
	"syslogbull/internal/storage"
	"syslogbull/internal/util/logger"
)

var logCoreRepository = NewLogCoreRepository(storage.GetDb(), logger.GetLogger())

func GetLogCoreRepository() *LogCoreRepository {
	return logCoreRepository
}
