package config

import (
	"errors"
	"fmt"
	"net"
)

func validateEnv(env *EnvVariables) error {
	if env.DatabaseDsn == "" {
		return errors.New("DATABASE_DSN is empty")
	}

	if env.EnvMode == "" {
		return errors.New("ENV_MODE is empty")
	}
	if !env.EnvMode.IsValid() {
		return fmt.Errorf("ENV_MODE is invalid: %s", env.EnvMode)
	}

	if _, _, err := net.SplitHostPort(env.SyslogAddress); err != nil {
		return fmt.Errorf("SYSLOG_ADDRESS is invalid: %w", err)
	}

	if env.HttpPort == "" {
		return errors.New("HTTP_PORT is empty")
	}

	if env.MaxDbConnections <= 0 {
		return fmt.Errorf("MAX_DB_CONNECTIONS must be positive, got %d", env.MaxDbConnections)
	}

	if env.LogsRetentionDays < 0 {
		return fmt.Errorf("LOGS_RETENTION_DAYS cannot be negative, got %d", env.LogsRetentionDays)
	}

	if env.QueryRpsLimit < 0 {
		return fmt.Errorf("QUERY_RPS_LIMIT cannot be negative, got %d", env.QueryRpsLimit)
	}

	if env.IsCacheEnabled() && env.ValkeyPort == "" {
		return errors.New("VALKEY_PORT is empty while VALKEY_HOST is set")
	}

	return nil
}
