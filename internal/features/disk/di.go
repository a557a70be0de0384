package disk

import "syslogbull/internal/config"

var diskService = NewDiskService(dataPath(config.GetEnv().BackendRootPath))

var diskController = NewDiskController(diskService)

func GetDiskService() *DiskService {
	return diskService
}

func GetDiskController() *DiskController {
	return diskController
}

func dataPath(backendRootPath string) string {
	if backendRootPath == "" {
		return "/"
	}

	return backendRootPath
}
