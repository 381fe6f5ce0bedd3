package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	resp "ecommerce-services/internal/transport/http/response"
)

const msgTooMany = "Too many requests"

// RateLimit 全局令牌桶限速
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	lim := rate.NewLimiter(rps, burst)
	return func(c *gin.Context) {
		if lim.Allow() {
			c.Next()
			return
		}
		resp.Error(c, http.StatusTooManyRequests, msgTooMany)
	}
}

// RateLimitPerIP 每 IP 一个令牌桶（进程内）；闲置超过 ipIdleTTL 的桶会被清掉
func RateLimitPerIP(rps rate.Limit, burst int) gin.HandlerFunc {
	b := newIPBuckets(rps, burst, ipIdleTTL, time.Now)
	return func(c *gin.Context) {
		if b.allow(c.ClientIP()) {
			c.Next()
			return
		}
		resp.Error(c, http.StatusTooManyRequests, msgTooMany)
	}
}

const ipIdleTTL = 3 * time.Minute

type ipBucket struct {
	lim  *rate.Limiter
	seen time.Time
}

type ipBuckets struct {
	mu        sync.Mutex
	rps       rate.Limit
	burst     int
	idle      time.Duration
	now       func() time.Time
	buckets   map[string]*ipBucket
	lastSweep time.Time
}

func newIPBuckets(rps rate.Limit, burst int, idle time.Duration, now func() time.Time) *ipBuckets {
	return &ipBuckets{
		rps:       rps,
		burst:     burst,
		idle:      idle,
		now:       now,
		buckets:   make(map[string]*ipBucket),
		lastSweep: now(),
	}
}

func (b *ipBuckets) allow(ip string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	if now.Sub(b.lastSweep) >= b.idle {
		for k, v := range b.buckets {
			if now.Sub(v.seen) >= b.idle {
				delete(b.buckets, k)
			}
		}
		b.lastSweep = now
	}
	e, ok := b.buckets[ip]
	if !ok {
		e = &ipBucket{lim: rate.NewLimiter(b.rps, b.burst)}
		b.buckets[ip] = e
	}
	e.seen = now
	return e.lim.AllowN(now, 1)
}

// RedisRateLimit 固定窗口计数，多副本共享同一额度；Redis 出错时放行并记日志
func RedisRateLimit(rdb *goredis.Client, prefix string, limit int64, window time.Duration, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		slot := time.Now().UnixNano() / int64(window)
		key := fmt.Sprintf("ratelimit:%s:%s:%d", prefix, c.ClientIP(), slot)

		var incr *goredis.IntCmd
		_, err := rdb.TxPipelined(c.Request.Context(), func(p goredis.Pipeliner) error {
			incr = p.Incr(c.Request.Context(), key)
			p.Expire(c.Request.Context(), key, window)
			return nil
		})
		if err != nil {
			l.Warn("rate limit store unavailable", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}
		if incr.Val() > limit {
			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			resp.Error(c, http.StatusTooManyRequests, msgTooMany)
			return
		}
		c.Next()
	}
}
