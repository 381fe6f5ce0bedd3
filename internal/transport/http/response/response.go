package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Body 统一错误体；校验失败时带 errors、不带 message
type Body struct {
	Timestamp time.Time         `json:"timestamp"`
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Message   string            `json:"message,omitempty"`
	Path      string            `json:"path"`
	Errors    map[string]string `json:"errors,omitempty"`
}

func New(c *gin.Context, status int, msg string) Body {
	return Body{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   msg,
		Path:      c.Request.URL.Path,
	}
}

// Error 写错误体并中止后续 handler
func Error(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, New(c, status, msg))
}

// Validation 400 + 字段级消息
func Validation(c *gin.Context, errs map[string]string) {
	b := New(c, http.StatusBadRequest, "")
	b.Error = ReasonValidation
	b.Errors = errs
	c.AbortWithStatusJSON(http.StatusBadRequest, b)
}
