package downdetect

import (
	"syslogbull/internal/cache"
	logs_core "syslogbull/internal/features/logs/core"
)

var downdetectService = NewDowndetectService(logs_core.GetLogCoreRepository(), cache.GetCache())

var downdetectController = NewDowndetectController(downdetectService)

func GetDowndetectService() *DowndetectService {
	return downdetectService
}

func GetDowndetectController() *DowndetectController {
	return downdetectController
}
