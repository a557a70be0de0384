package system_healthcheck

import (
	"syslogbull/internal/downdetect"
	"syslogbull/internal/features/disk"
)

var healthcheckService = NewHealthcheckService(downdetect.GetDowndetectService(), disk.GetDiskService())

var healthcheckController = NewHealthcheckController(healthcheckService)

func GetHealthcheckController() *HealthcheckController {
	return healthcheckController
}
