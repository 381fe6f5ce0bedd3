package router

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"ecommerce-services/internal/core/config"
	"ecommerce-services/internal/core/health"
	"ecommerce-services/internal/core/server"
	mdw "ecommerce-services/internal/transport/http/middleware"
)

// APIModule 资源模块：把自己的路由挂到给定分组上
type APIModule interface{ MountAPI(*gin.RouterGroup) }

// Deps 两个服务共用的引擎依赖
type Deps struct {
	Name   string // 服务名，用于 redis 限流 key
	Log    *zap.Logger
	Limits config.Limits
	Redis  *goredis.Client // 可为 nil
	Store  health.Pinger
}

const (
	pathHealth  = "/health"
	pathReady   = "/ready"
	pathMetrics = "/metrics"
)

// clientPerSecond 固定窗口为 1s 时的计数上限；小于 1 的 RPS 按 1 算
func clientPerSecond(rps float64) int64 {
	return max(1, int64(math.Ceil(rps)))
}

// newEngine 中间件 + 探针 + 指标，再把 mod 挂到 base 下
func newEngine(d Deps, base string, mod APIModule) *gin.Engine {
	r := server.NewRouter(d.Log, mdw.Recovered)

	lim := d.Limits
	r.Use(
		mdw.RequestID(),
		mdw.Metrics(),
		mdw.AccessLog(d.Log, pathHealth, pathReady, pathMetrics),
	)
	if lim.RateLimitRPS > 0 {
		r.Use(mdw.RateLimit(rate.Limit(lim.RateLimitRPS), lim.RateLimitBurst))
	}
	if lim.ClientRateLimitRPS > 0 {
		if d.Redis != nil {
			r.Use(mdw.RedisRateLimit(d.Redis, d.Name, clientPerSecond(lim.ClientRateLimitRPS), time.Second, d.Log))
		} else {
			r.Use(mdw.RateLimitPerIP(rate.Limit(lim.ClientRateLimitRPS), lim.ClientRateLimitBurst))
		}
	}
	// Timeout 在并发闸门之前：排队等待也受请求截止时间约束
	r.Use(mdw.Timeout(time.Duration(lim.RequestTimeoutSec) * time.Second))
	if lim.MaxConcurrent > 0 {
		r.Use(mdw.ConcurrencyLimit(lim.MaxConcurrent))
	}
	if lim.MaxBodyBytes > 0 {
		r.Use(mdw.MaxBodyBytes(lim.MaxBodyBytes))
	}

	checker := health.NewChecker(3*time.Second).Add("store", d.Store)
	if d.Redis != nil {
		checker.Add("redis", health.PingFunc(func(ctx context.Context) error {
			return d.Redis.Ping(ctx).Err()
		}))
	}

	// 存活：进程在就 UP
	r.GET(pathHealth, func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
	// 就绪：依赖全部可用才 200
	r.GET(pathReady, func(c *gin.Context) {
		st := checker.Check(c.Request.Context())
		code := http.StatusOK
		if !st.Up() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, st)
	})
	r.GET(pathMetrics, mdw.MetricsHandler())

	mod.MountAPI(r.Group(base))
	return r
}
