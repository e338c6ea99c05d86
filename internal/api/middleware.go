package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/vgcpastes/team-finder/internal/metrics"
)

// RequestLogger logs completed requests with slog. Health and metrics
// endpoints are skipped to keep probe noise out of the logs.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" || c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		requestID := uuid.NewString()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()

		slog.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
			"ip", c.ClientIP(),
			"request_id", requestID,
		)
	}
}

// Instrument records request counts and latency per method and route.
func Instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}

// RateLimit applies a per-client token bucket. Limiters are kept in an LRU
// so the map cannot grow without bound; health and metrics endpoints are
// exempt so probes are never throttled.
func RateLimit(perMinute, burst int) gin.HandlerFunc {
	limiters, err := lru.New[string, *rate.Limiter](4096)
	if err != nil || perMinute <= 0 {
		// No limiter cache means no limiting.
		return func(c *gin.Context) { c.Next() }
	}
	limit := rate.Every(time.Minute / time.Duration(perMinute))

	return func(c *gin.Context) {
		switch c.Request.URL.Path {
		case "/health", "/ready", "/metrics":
			c.Next()
			return
		}

		ip := c.ClientIP()
		limiter, ok := limiters.Get(ip)
		if !ok {
			limiter = rate.NewLimiter(limit, burst)
			limiters.Add(ip, limiter)
		}
		if !limiter.Allow() {
			metrics.RateLimitRejections.Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests, please try again later.",
			})
			return
		}
		c.Next()
	}
}
