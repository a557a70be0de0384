package config

import (
	"testing"

	env_utils "syslogbull/internal/util/env"

	"github.com/stretchr/testify/assert"
)

func validTestEnv() EnvVariables {
	return EnvVariables{
		DatabaseDsn:      "file:test.db",
		EnvMode:          env_utils.EnvModeDevelopment,
		SyslogAddress:    "0.0.0.0:514",
		HttpPort:         "4005",
		MaxDbConnections: 20,
		QueryRpsLimit:    10,
		ValkeyPort:       "6379",
	}
}

func Test_ValidateEnv_WithDefaults_ReturnsNoError(t *testing.T) {
	env := validTestEnv()

	assert.NoError(t, validateEnv(&env))
	assert.False(t, env.IsCacheEnabled())
}

func Test_ValidateEnv_WithInvalidValues_ReturnsError(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(env *EnvVariables)
	}{
		{"empty dsn", func(env *EnvVariables) { env.DatabaseDsn = "" }},
		{"empty mode", func(env *EnvVariables) { env.EnvMode = "" }},
		{"unknown mode", func(env *EnvVariables) { env.EnvMode = "staging" }},
		{"address without port", func(env *EnvVariables) { env.SyslogAddress = "0.0.0.0" }},
		{"empty http port", func(env *EnvVariables) { env.HttpPort = "" }},
		{"zero db connections", func(env *EnvVariables) { env.MaxDbConnections = 0 }},
		{"negative retention", func(env *EnvVariables) { env.LogsRetentionDays = -1 }},
		{"negative rps", func(env *EnvVariables) { env.QueryRpsLimit = -5 }},
		{"cache without port", func(env *EnvVariables) {
			env.ValkeyHost = "localhost"
			env.ValkeyPort = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := validTestEnv()
			tt.mutate(&env)

			assert.Error(t, validateEnv(&env))
		})
	}
}

func Test_IsShouldShutdown_WithoutSignal_ReturnsFalse(t *testing.T) {
	assert.False(t, IsShouldShutdown())
}
