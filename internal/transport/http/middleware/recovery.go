package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "ecommerce-services/internal/transport/http/response"
)

// Recovered 作为 ginzap.CustomRecoveryWithZap 的回调：日志已由 ginzap 记录，这里只写统一 500
func Recovered(c *gin.Context, _ any) {
	resp.Error(c, http.StatusInternalServerError, resp.MsgUnexpected)
}
