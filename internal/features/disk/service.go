package disk

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/disk"
)

type DiskService struct {
	path string
}

func NewDiskService(path string) *DiskService {
	return &DiskService{path: path}
}

// GetDiskUsage reports usage of the filesystem holding the service path.
func (s *DiskService) GetDiskUsage() (*DiskUsage, error) {
	usage, err := disk.Usage(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read disk usage for %s: %w", s.path, err)
	}

	return &DiskUsage{
		Path:        s.path,
		TotalBytes:  usage.Total,
		UsedBytes:   usage.Used,
		FreeBytes:   usage.Free,
		UsedPercent: usage.UsedPercent,
	}, nil
}
