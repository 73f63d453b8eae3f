package middleware

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/unibna/employee-search/internal/bootstrap"
	"github.com/unibna/employee-search/internal/metrics"
	"github.com/unibna/employee-search/internal/ratelimit"
	"github.com/unibna/employee-search/internal/shared/apperror"
	"github.com/unibna/employee-search/internal/shared/contextutil"
	"github.com/unibna/employee-search/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRetryAfter         = "Retry-After"
)

const statsTimeout = 500 * time.Millisecond

// WindowLimiter is satisfied by *ratelimit.SlidingWindow.
type WindowLimiter interface {
	Decide(key string, limit int, window time.Duration) ratelimit.Decision
}

type RateLimitOptions struct {
	Limit  int
	Window time.Duration

	// KeyFunc derives the client key. Defaults to gin's ClientIP.
	KeyFunc func(c *gin.Context) string

	Stats   ratelimit.StatsStore
	Audit   bootstrap.AuditLogger
	Metrics *metrics.Collection
	Logger  *zap.Logger
}

// RateLimitByIP rejects a client with 429 once it has made more than
// opts.Limit calls within the trailing opts.Window.
func RateLimitByIP(limiter WindowLimiter, opts RateLimitOptions) gin.HandlerFunc {
	if opts.KeyFunc == nil {
		opts.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	log := zap.L().Named("ratelimit.middleware")
	if opts.Logger != nil {
		log = opts.Logger.Named("ratelimit.middleware")
	}
	warnSampler := &rate.Sometimes{Interval: time.Second}

	return func(c *gin.Context) {
		key := opts.KeyFunc(c)
		d := limiter.Decide(key, opts.Limit, opts.Window)

		opts.Metrics.ObserveRateLimit(d.Allowed)
		recordStats(opts.Stats, log, ratelimit.StatsEvent{
			Key:     key,
			Allowed: d.Allowed,
			Method:  c.Request.Method,
			Path:    c.FullPath(),
			At:      time.Now(),
		})

		c.Header(HeaderRateLimitLimit, strconv.Itoa(d.Limit))
		c.Header(HeaderRateLimitRemaining, strconv.Itoa(d.Remaining))

		if d.Allowed {
			c.Next()
			return
		}

		retryAfter := retryAfterSeconds(d.RetryAfter)
		c.Header(HeaderRetryAfter, strconv.Itoa(retryAfter))

		warnSampler.Do(func() {
			log.Warn("rate limit exceeded",
				zap.String("client_ip", key),
				zap.String("path", c.FullPath()),
				zap.Int("count", d.Count),
				zap.Int("limit", d.Limit),
				zap.Int("retry_after_s", retryAfter),
			)
		})

		// one audit event per burst, not per rejected call
		if opts.Audit != nil && d.Count == d.Limit+1 {
			md := contextutil.ExtractMetadata(c.Request.Context())
			opts.Audit.Log(c.Request.Context(), bootstrap.AuditLog{
				Action:  bootstrap.AuditRateLimitExceeded,
				Message: "client exceeded the request limit",
				Meta: map[string]any{
					"client_ip":   key,
					"request_id":  md.RequestID,
					"method":      c.Request.Method,
					"path":        c.FullPath(),
					"limit":       d.Limit,
					"window":      opts.Window.String(),
					"retry_after": retryAfter,
				},
			})
		}

		err := apperror.ErrRateLimited
		response.AbortWithError(c, err.HTTPStatus, err.Code, err.Message, gin.H{"retry_after": retryAfter})
	}
}

func retryAfterSeconds(d time.Duration) int {
	return max(int(math.Ceil(d.Seconds())), 1)
}

func recordStats(store ratelimit.StatsStore, log *zap.Logger, ev ratelimit.StatsEvent) {
	if store == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), statsTimeout)
		defer cancel()
		if err := store.Record(ctx, ev); err != nil {
			log.Debug("record rate limit stats failed", zap.Error(err))
		}
	}()
}

var _ WindowLimiter = (*ratelimit.SlidingWindow)(nil)
