package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	resp "ecommerce-services/internal/transport/http/response"
)

// ConcurrencyLimit 限制同时在处理的请求数（保护存储下游）；
// 排队直到请求 context 结束，仍拿不到则 503
func ConcurrencyLimit(max int64) gin.HandlerFunc {
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if err := sem.Acquire(c.Request.Context(), 1); err != nil {
			resp.Error(c, http.StatusServiceUnavailable, "Server busy, retry later")
			return
		}
		defer sem.Release(1)
		c.Next()
	}
}
