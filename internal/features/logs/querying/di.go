package logs_querying

import (
	"syslogbull/internal/cache"
	"syslogbull/internal/config"
	logs_core "syslogbull/internal/features/logs/core"
	"syslogbull/internal/util/logger"
	rate_limit "syslogbull/internal/util/rate_limit"

	"github.com/gin-gonic/gin"
)

var logQueryService = NewLogQueryService(logs_core.GetLogCoreRepository(), logger.GetLogger())

var logQueryController = NewLogQueryController(logQueryService)

func GetLogQueryService() *LogQueryService {
	return logQueryService
}

func GetLogQueryController() *LogQueryController {
	return logQueryController
}

// GetLogQueryMiddlewares returns the middlewares guarding the search route
// for the current configuration.
func GetLogQueryMiddlewares() []gin.HandlerFunc {
	env := config.GetEnv()

	var middlewares []gin.HandlerFunc

	if env.QueryRpsLimit > 0 {
		var limiter rate_limit.Limiter = rate_limit.NewLocalRateLimiter()
		if client := cache.GetCache(); client != nil {
			limiter = rate_limit.NewValkeyRateLimiter(client)
		}

		middlewares = append(middlewares, RateLimitMiddleware(limiter, env.QueryRpsLimit, logger.GetLogger()))
	}

	if env.QueryJwtSecret != "" {
		middlewares = append(middlewares, JwtAuthMiddleware(env.QueryJwtSecret))
	}

	return middlewares
}
