package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/janani-ai/janani-server/internal/domain"
)

// RateLimiter applies a per-client token bucket to incoming requests.
// Clients are keyed by user ID when present, falling back to client IP, so
// one misbehaving caller cannot starve the triage line for everyone else.
type RateLimiter struct {
	logger  *logrus.Logger
	config  domain.RateLimitConfig
	clients map[string]*clientLimiter
	mu      sync.Mutex
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a rate limiter and starts its cleanup routine.
func NewRateLimiter(logger *logrus.Logger, config domain.RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		logger:  logger,
		config:  config,
		clients: make(map[string]*clientLimiter),
	}

	if config.Enabled {
		go rl.startCleanupRoutine()
	}

	return rl
}

// Middleware returns the gin handler enforcing the configured limits.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.config.Enabled {
			c.Next()
			return
		}

		clientID := c.GetHeader("X-User-ID")
		if clientID == "" {
			clientID = c.ClientIP()
		}

		if !rl.allow(clientID) {
			rl.logger.WithFields(logrus.Fields{
				"client_id": clientID,
				"path":      c.Request.URL.Path,
			}).Warn("Request denied: rate limit exceeded")

			c.AbortWithStatusJSON(http.StatusTooManyRequests, domain.NewAPIError(
				domain.ErrCodeRateLimit,
				"Too many requests, please retry shortly",
				"",
				c.GetString("correlation_id"),
			))
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) allow(clientID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	client, exists := rl.clients[clientID]
	if !exists {
		client = &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(rl.config.RequestsPerSecond), rl.config.Burst),
		}
		rl.clients[clientID] = client
	}
	client.lastSeen = time.Now()

	return client.limiter.Allow()
}

// startCleanupRoutine periodically drops limiters for inactive clients.
func (rl *RateLimiter) startCleanupRoutine() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.cleanupInactiveClients(time.Hour)
	}
}

func (rl *RateLimiter) cleanupInactiveClients(threshold time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cleaned := 0
	for clientID, client := range rl.clients {
		if now.Sub(client.lastSeen) > threshold {
			delete(rl.clients, clientID)
			cleaned++
		}
	}

	if cleaned > 0 {
		rl.logger.WithField("cleaned_count", cleaned).Info("Cleaned up inactive rate limiter data")
	}
}
