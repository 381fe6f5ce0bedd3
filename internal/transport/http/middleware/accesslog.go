package middleware

import (
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AccessLog 每个请求一行；5xx 记 error、4xx 记 warn。skip 中的路径（探针、指标）不记录
func AccessLog(l *zap.Logger, skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if _, ok := skipped[c.Request.URL.Path]; ok {
			return
		}
		status := c.Writer.Status()
		lvl := zapcore.InfoLevel
		switch {
		case status >= 500:
			lvl = zapcore.ErrorLevel
		case status >= 400:
			lvl = zapcore.WarnLevel
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		l.Check(lvl, "HTTP").Write(
			zap.String("rid", c.GetString(KeyRequestID)),
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", maskQuery(c.Request.URL.RawQuery)),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.String("ua", c.Request.UserAgent()),
			zap.Int("size", c.Writer.Size()),
		)
	}
}

// 这些参数的值不落日志
var sensitiveParams = map[string]struct{}{
	"email": {}, "phone": {}, "token": {}, "access_token": {},
	"password": {}, "secret": {}, "key": {}, "apikey": {},
}

const masked = "***"

// maskQuery 敏感参数的值替换成 ***，其余原样保留
func maskQuery(raw string) string {
	if raw == "" {
		return ""
	}
	parts := strings.Split(raw, "&")
	for i, p := range parts {
		k, _, _ := strings.Cut(p, "=")
		name, err := url.QueryUnescape(k)
		if err != nil {
			name = k
		}
		if _, ok := sensitiveParams[strings.ToLower(name)]; ok {
			parts[i] = k + "=" + masked
		}
	}
	return strings.Join(parts, "&")
}
