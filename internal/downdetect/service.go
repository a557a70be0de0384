package downdetect

import (
	"context"
	"fmt"

	"syslogbull/internal/cache"

	"github.com/valkey-io/valkey-go"
)

type DatabasePinger interface {
	Ping(ctx context.Context) error
}

// DowndetectService checks the backends the process cannot work without.
// The cache is only checked when one is configured.
type DowndetectService struct {
	database DatabasePinger
	cache    valkey.Client
}

func NewDowndetectService(database DatabasePinger, cacheClient valkey.Client) *DowndetectService {
	return &DowndetectService{
		database: database,
		cache:    cacheClient,
	}
}

func (s *DowndetectService) IsAvailable(ctx context.Context) error {
	if err := s.database.Ping(ctx); err != nil {
		return fmt.Errorf("database check failed: %w", err)
	}

	if s.cache != nil {
		if err := cache.Ping(ctx, s.cache); err != nil {
			return fmt.Errorf("cache check failed: %w", err)
		}
	}

	return nil
}
