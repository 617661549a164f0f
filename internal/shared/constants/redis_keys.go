package constants

import (
	"fmt"
)

// Redis keys used by the site.
// Pattern: iftar:{module}:{identifier}:{params?}

const (
	REDIS_KEY_PREFIX  = "iftar"
	MODULE_RATE_LIMIT = "ratelimit"
)

// BuildRateLimitKey returns the sliding-window key for one client and route type
func BuildRateLimitKey(clientIP, limitType string) string {
	return fmt.Sprintf("%s:%s:%s:%s", REDIS_KEY_PREFIX, MODULE_RATE_LIMIT, clientIP, limitType)
}
