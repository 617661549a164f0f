package ratelimit

import (
	"fmt"
	"net/http"
	"strings"

	"iftar/internal/shared/utils/response"
	"iftar/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Middleware applies the limiter to every request. When Redis cannot be
// reached the request is let through and the failure is logged.
func Middleware(rateLimiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Forwarded headers only count when the peer is a trusted proxy
		clientIP := c.ClientIP()
		limitType := getRateLimitType(c.Request.Method, c.FullPath())

		result, err := rateLimiter.IsAllowed(c.Request.Context(), clientIP, limitType)
		if err != nil {
			logger.GetDefault().ErrorWithContext(c.Request.Context(), "Rate limit check failed", err, map[string]interface{}{
				"ip": clientIP,
			})
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetTime))

		if !result.Allowed {
			logger.GetDefault().LogRateLimitExceeded(c.Request.Context(), clientIP, c.Request.URL.Path)
			if strings.HasPrefix(c.FullPath(), "/api/") {
				response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded", map[string]interface{}{
					"limit":      result.Limit,
					"reset_time": result.ResetTime,
				})
			} else {
				c.String(http.StatusTooManyRequests, "Too many requests. Please wait a moment and try again.")
			}
			c.Abort()
			return
		}

		c.Next()
	}
}

// getRateLimitType classifies a route template
func getRateLimitType(method, path string) RateLimitType {
	switch {
	case strings.HasPrefix(path, "/health"),
		strings.HasPrefix(path, "/ping"),
		strings.HasPrefix(path, "/status"),
		strings.HasPrefix(path, "/metrics"):
		return RateLimitTypeHealth

	// Anything that reaches the attendance service with a write
	case path == "/register",
		strings.HasSuffix(path, "/attendees") && method == http.MethodPost:
		return RateLimitTypeRegistration

	case strings.HasPrefix(path, "/api/"):
		return RateLimitTypeAPI

	case path == "/",
		path == "/confirmation",
		strings.HasPrefix(path, "/static/"):
		return RateLimitTypePage

	default:
		return RateLimitTypeDefault
	}
}
