package logs_querying_tests

import (
	"context"
	"fmt"
	"net/url"
	"testing"
	"time"

	logs_core "syslogbull/internal/features/logs/core"
	logs_querying "syslogbull/internal/features/logs/querying"
	"syslogbull/internal/util/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

const searchURL = "/api/v1/logs/search"

// CreateLogQueryTestRouter serves the search route over a fresh SQLite
// repository.
func CreateLogQueryTestRouter(
	t *testing.T,
	middlewares ...gin.HandlerFunc,
) (*gin.Engine, *logs_core.LogCoreRepository) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()

	repository := logs_core.CreateTestLogCoreRepository(t)
	service := logs_querying.NewLogQueryService(repository, logger.GetLogger())

	v1 := router.Group("/api/v1")
	logs_querying.NewLogQueryController(service).RegisterRoutes(v1, middlewares...)

	return router, repository
}

// SeedLogs writes one record per message for hostname, one minute apart,
// the last message being the newest.
func SeedLogs(
	t *testing.T,
	repository *logs_core.LogCoreRepository,
	hostname, logLevel string,
	messages ...string,
) {
	t.Helper()

	base := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	for i, message := range messages {
		record := logs_core.LogRecord{
			Timestamp: base.Add(time.Duration(i) * time.Minute).Format(time.RFC3339),
			Hostname:  hostname,
			LogLevel:  logLevel,
			Message:   message,
		}
		require.NoError(t, repository.WriteLog(context.Background(), record))
	}
}

func BuildSearchURL(params map[string]string) string {
	if len(params) == 0 {
		return searchURL
	}

	values := url.Values{}
	for key, value := range params {
		values.Set(key, value)
	}

	return fmt.Sprintf("%s?%s", searchURL, values.Encode())
}

func MessagesOf(records []logs_core.LogRecord) []string {
	messages := make([]string, 0, len(records))
	for _, record := range records {
		messages = append(messages, record.Message)
	}

	return messages
}

func CreateTestToken(t *testing.T, secret string, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "test-client",
		"exp": expiresAt.Unix(),
		"iat": time.Now().UTC().Unix(),
	})

	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	return "Bearer " + signed
}
