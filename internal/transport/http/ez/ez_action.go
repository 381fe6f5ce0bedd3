package ez

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"ecommerce-services/internal/domain"
	mdw "ecommerce-services/internal/transport/http/middleware"
	resp "ecommerce-services/internal/transport/http/response"
)

type EZ struct {
	g   *gin.RouterGroup
	log *zap.Logger
}

func New(g *gin.RouterGroup, l *zap.Logger) EZ {
	setupValidator()
	return EZ{g: g, log: l}
}

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string // "GET" | "POST" | "PUT" | "PATCH" | "DELETE"
	Path    string // 例："/:id"、"/:id/stock"
	Binder  Binder
	Status  int  // 成功状态码，默认 200
	NoBody  bool // 成功时只写状态码（204 / 库存更新）
	Handler func(c *gin.Context, in *I) (O, error)
}

// RegisterAction 绑定 -> 执行 -> 渲染；所有错误都在这里映射成统一错误体
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}

	h := func(c *gin.Context) {
		// 1) 绑定入参
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default: // BindNone: 不绑定
		}
		if bindErr != nil {
			e.bindFailed(c, a.Binder, bindErr, &in)
			return
		}

		// 2) 执行
		out, err := a.Handler(c, &in)
		if err != nil {
			e.fail(c, err)
			return
		}

		// 3) 渲染
		if a.NoBody {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(status, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodPatch:
		e.g.PATCH(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}

func (e EZ) bindFailed(c *gin.Context, b Binder, err error, in any) {
	var (
		ve  validator.ValidationErrors
		mbe *http.MaxBytesError
	)
	switch {
	case errors.As(err, &ve):
		resp.Validation(c, fieldErrors(ve, in))
	case errors.As(err, &mbe):
		resp.Error(c, http.StatusRequestEntityTooLarge, "Request body too large")
	case b == BindJSON && errors.Is(err, io.EOF):
		resp.Error(c, http.StatusBadRequest, "Request body is required")
	case b == BindJSON:
		resp.Error(c, http.StatusBadRequest, "Malformed request body: "+err.Error())
	default:
		resp.Error(c, http.StatusBadRequest, "Invalid request parameter: "+err.Error())
	}
}

// fail 统一错误映射；500 只记日志，不把原因带给客户端
func (e EZ) fail(c *gin.Context, err error) {
	var de *domain.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		e.log.Warn("request deadline exceeded", e.fields(c, err)...)
		resp.Error(c, http.StatusGatewayTimeout, "Request timed out")
	case errors.As(err, &de) && de.Kind != domain.KindUnexpected:
		resp.Error(c, resp.StatusOf(de.Kind), de.Msg)
	default:
		e.log.Error("request failed", e.fields(c, err)...)
		resp.Error(c, http.StatusInternalServerError, resp.MsgUnexpected)
	}
}

func (e EZ) fields(c *gin.Context, err error) []zap.Field {
	return []zap.Field{
		zap.String("rid", c.GetString(mdw.KeyRequestID)),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	}
}
