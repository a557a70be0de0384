package logs_receiving

import (
	"syslogbull/internal/config"
	logs_core "syslogbull/internal/features/logs/core"
	"syslogbull/internal/util/logger"
)

var listenerSupervisor = NewListenerSupervisor(
	config.GetEnv().SyslogAddress,
	logs_core.GetLogCoreRepository(),
	logger.GetLogger(),
)

func GetListenerSupervisor() *ListenerSupervisor {
	return listenerSupervisor
}
