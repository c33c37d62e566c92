package ratelimit

import (
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/didip/tollbooth"
	"github.com/didip/tollbooth/limiter"
	"github.com/didip/tollbooth_gin"
	"github.com/gin-gonic/gin"
)

// TokenBucketPerIP throttles each caller IP. Verification sessions involve
// repeated stage submissions, so the ceiling is generous but still blocks
// frame-spam against the biometric endpoints.
func TokenBucketPerIP() gin.HandlerFunc {
	message := map[string]any{
		"message": "too many requests. slow down and try again shortly.",
	}
	jsonMessage, _ := json.Marshal(message)

	maxRequests := 25.0
	if raw := os.Getenv("RATE_LIMIT_PER_SECOND"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed > 0 {
			maxRequests = parsed
		}
	}

	tlbthLimiter := tollbooth.NewLimiter(maxRequests, &limiter.ExpirableOptions{
		DefaultExpirationTTL: time.Minute * 1,
	})
	tlbthLimiter.SetMessageContentType("application/json")
	tlbthLimiter.SetMessage(string(jsonMessage))

	return tollbooth_gin.LimitHandler(tlbthLimiter)
}
