package logs_querying

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	rate_limit "syslogbull/internal/util/rate_limit"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// JwtAuthMiddleware accepts requests carrying an HS256 bearer token signed
// with secret.
func JwtAuthMiddleware(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := ctx.GetHeader("Authorization")
		if token == "" {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
			ctx.Abort()
			return
		}

		token = strings.TrimPrefix(token, "Bearer ")

		parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !parsedToken.Valid {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			ctx.Abort()
			return
		}

		if claims, ok := parsedToken.Claims.(jwt.MapClaims); ok {
			if subject, ok := claims["sub"].(string); ok {
				ctx.Set("subject", subject)
			}
		}

		ctx.Next()
	}
}

// RateLimitMiddleware spends one token per request from the bucket of the
// client IP. When the limiter itself fails the request is let through.
func RateLimitMiddleware(
	limiter rate_limit.Limiter,
	rpsLimit int,
	logger *slog.Logger,
) gin.HandlerFunc {
	burstLimit := rpsLimit * 2

	return func(ctx *gin.Context) {
		clientIP := ctx.ClientIP()

		result, err := limiter.CheckRateLimit(ctx.Request.Context(), clientIP, rpsLimit, burstLimit)
		if err != nil {
			logger.Warn("Rate limit check failed, allowing request",
				slog.String("clientIp", clientIP),
				slog.String("error", err.Error()))
			ctx.Next()
			return
		}

		ctx.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

		if !result.Allowed {
			ctx.Header("Retry-After", strconv.Itoa(result.RetryAfterSec))
			ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}
