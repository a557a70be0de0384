package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	env_utils "syslogbull/internal/util/env"
	"syslogbull/internal/util/logger"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var log = logger.GetLogger()

type EnvVariables struct {
	IsTesting       bool
	DatabaseDsn     string            `env:"DATABASE_DSN"        env-required:"true"`
	EnvMode         env_utils.EnvMode `env:"ENV_MODE"            env-required:"true"`
	BackendRootPath string
	LogLevel        string `env:"LOG_LEVEL"           env-default:"info"`
	// ingestion
	SyslogAddress string `env:"SYSLOG_ADDRESS"      env-default:"0.0.0.0:514"`
	// storage
	MaxDbConnections  int `env:"MAX_DB_CONNECTIONS"  env-default:"20"`
	LogsRetentionDays int `env:"LOGS_RETENTION_DAYS" env-default:"0"`
	// query api
	HttpPort       string `env:"HTTP_PORT"           env-default:"4005"`
	QueryRpsLimit  int    `env:"QUERY_RPS_LIMIT"     env-default:"10"`
	QueryJwtSecret string `env:"QUERY_JWT_SECRET"`
	// cache, optional
	ValkeyHost     string `env:"VALKEY_HOST"`
	ValkeyPort     string `env:"VALKEY_PORT"         env-default:"6379"`
	ValkeyUsername string `env:"VALKEY_USERNAME"`
	ValkeyPassword string `env:"VALKEY_PASSWORD"`
	ValkeyIsSsl    bool   `env:"VALKEY_IS_SSL"       env-default:"false"`
}

func (e EnvVariables) IsCacheEnabled() bool {
	return e.ValkeyHost != ""
}

var (
	env  EnvVariables
	once sync.Once
)

const testDatabaseDsn = "file:syslogbull_test?mode=memory&cache=shared"

func GetEnv() EnvVariables {
	once.Do(loadEnvVariables)
	return env
}

func loadEnvVariables() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Warn("could not get current working directory", "error", err)
		cwd = "."
	}

	backendRoot := cwd
	for {
		if _, err := os.Stat(filepath.Join(backendRoot, "go.mod")); err == nil {
			break
		}

		parent := filepath.Dir(backendRoot)
		if parent == backendRoot {
			break
		}

		backendRoot = parent
	}

	env.BackendRootPath = backendRoot

	envPaths := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(backendRoot, ".env"),
	}

	var loaded bool
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Info("Successfully loaded .env", "path", path)
			loaded = true
			break
		}
	}

	// Containers usually pass the environment directly
	if !loaded {
		log.Warn("No .env file found, using process environment only")
	}

	env.IsTesting = isTestProcess(os.Args)
	if env.IsTesting {
		applyTestDefaults()
	}

	err = cleanenv.ReadEnv(&env)
	if err != nil {
		log.Error("Configuration could not be loaded", "error", err)
		os.Exit(1)
	}

	if err := validateEnv(&env); err != nil {
		log.Error("Configuration is invalid", "error", err)
		os.Exit(1)
	}

	logger.SetLevel(logger.ParseLevel(env.LogLevel))
	log.Info("ENV_MODE loaded", "mode", env.EnvMode)
	log.Info("Environment variables loaded successfully!")
}

func isTestProcess(args []string) bool {
	for _, arg := range args {
		if strings.Contains(arg, "test") {
			return true
		}
	}

	return false
}

// applyTestDefaults lets test binaries build the package-level services
// without a .env: the database falls back to a private in-memory SQLite.
func applyTestDefaults() {
	defaults := map[string]string{
		"DATABASE_DSN": testDatabaseDsn,
		"ENV_MODE":     string(env_utils.EnvModeDevelopment),
	}

	for key, value := range defaults {
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
}
