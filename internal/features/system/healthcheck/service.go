package system_healthcheck

import (
	"context"
	"fmt"

	"syslogbull/internal/features/disk"
)

const maxDiskUsedPercent = 95.0

type AvailabilityChecker interface {
	IsAvailable(ctx context.Context) error
}

type DiskUsageReader interface {
	GetDiskUsage() (*disk.DiskUsage, error)
}

type HealthcheckService struct {
	availability AvailabilityChecker
	diskService  DiskUsageReader
}

func NewHealthcheckService(availability AvailabilityChecker, diskService DiskUsageReader) *HealthcheckService {
	return &HealthcheckService{
		availability: availability,
		diskService:  diskService,
	}
}

// IsHealthy returns nil when storage answers and the data disk has room
// left, otherwise an error naming the failed check.
func (s *HealthcheckService) IsHealthy(ctx context.Context) error {
	if err := s.availability.IsAvailable(ctx); err != nil {
		return err
	}

	usage, err := s.diskService.GetDiskUsage()
	if err != nil {
		return fmt.Errorf("disk check failed: %w", err)
	}

	if usage.UsedPercent >= maxDiskUsedPercent {
		return fmt.Errorf("disk is %.1f%% full", usage.UsedPercent)
	}

	return nil
}
