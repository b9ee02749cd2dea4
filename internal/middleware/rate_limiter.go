package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"

	"jobposter-backend/internal/utilities"
)

func keyFunc(c *gin.Context) string {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		return "ip: " + c.ClientIP()
	}
	return "user: " + user.ID.String()
}

func ipKeyFunc(c *gin.Context) string {
	return "ip: " + c.ClientIP()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.Header("Retry-After", strconv.Itoa(int(math.Ceil(time.Until(info.ResetTime).Seconds()))))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, utilities.ErrorResponse{
		Error: "Too many requests. Please try again later.",
	})
}

// RateLimiterMiddleware limit every caller (account when authenticated, IP otherwise)
// to reqPerSec requests per second. Zero fallback to 5.
func RateLimiterMiddleware(reqPerSec uint) gin.HandlerFunc {
	return newRateLimiter(reqPerSec, keyFunc)
}

func newRateLimiter(reqPerSec uint, key func(*gin.Context) string) gin.HandlerFunc {
	if reqPerSec == 0 {
		reqPerSec = 5
	}

	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Second,
		Limit: reqPerSec,
	})

	return ratelimit.RateLimiter(store, &ratelimit.Options{
		KeyFunc:      key,
		ErrorHandler: errorHandler,
	})
}

// IPRateLimiterMiddleware limit every client IP to reqPerSec requests per second.
// It run ahead of authentication so rejected credentials still count. Zero fallback to 5.
func IPRateLimiterMiddleware(reqPerSec uint) gin.HandlerFunc {
	return newRateLimiter(reqPerSec, ipKeyFunc)
}
