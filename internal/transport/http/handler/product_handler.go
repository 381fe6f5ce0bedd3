package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ecommerce-services/internal/service"
	httpez "ecommerce-services/internal/transport/http/ez"
)

// price 以 JSON 数字输出（999.99 而不是 "999.99"）
func init() { decimal.MarshalJSONWithoutQuotes = true }

type ProductHandler struct {
	svc *service.ProductService
	log *zap.Logger
}

func NewProductHandler(svc *service.ProductService, l *zap.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, log: l}
}

// MountAPI 挂在 /api/products 分组下
func (h *ProductHandler) MountAPI(g *gin.RouterGroup) {
	ez := httpez.New(g, h.log)

	type list = []service.ProductResponse

	httpez.RegisterAction(ez, httpez.Action[service.ProductRequest, service.ProductResponse]{
		Method: http.MethodPost,
		Path:   "",
		Binder: httpez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.ProductRequest) (service.ProductResponse, error) {
			return h.svc.Create(c.Request.Context(), *in)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, list]{
		Method: http.MethodGet,
		Path:   "",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (list, error) {
			return h.svc.List(c.Request.Context())
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, service.ProductResponse]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (service.ProductResponse, error) {
			return h.svc.Get(c.Request.Context(), c.Param("id"))
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, service.ProductResponse]{
		Method: http.MethodGet,
		Path:   "/sku/:sku",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (service.ProductResponse, error) {
			return h.svc.GetBySKU(c.Request.Context(), c.Param("sku"))
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, list]{
		Method: http.MethodGet,
		Path:   "/category/:category",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (list, error) {
			return h.svc.ListByCategory(c.Request.Context(), c.Param("category"))
		},
	})

	httpez.RegisterAction(ez, httpez.Action[service.SearchQuery, list]{
		Method: http.MethodGet,
		Path:   "/search",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *service.SearchQuery) (list, error) {
			return h.svc.SearchByName(c.Request.Context(), in.Query)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[service.ProductRequest, service.ProductResponse]{
		Method: http.MethodPut,
		Path:   "/:id",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *service.ProductRequest) (service.ProductResponse, error) {
			return h.svc.Update(c.Request.Context(), c.Param("id"), *in)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, struct{}]{
		Method: http.MethodDelete,
		Path:   "/:id",
		Binder: httpez.BindNone,
		Status: http.StatusNoContent,
		NoBody: true,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			return struct{}{}, h.svc.Delete(c.Request.Context(), c.Param("id"))
		},
	})

	// 库存直接覆盖为 quantity，成功时 200 空响应
	httpez.RegisterAction(ez, httpez.Action[service.StockQuery, struct{}]{
		Method: http.MethodPatch,
		Path:   "/:id/stock",
		Binder: httpez.BindQuery,
		NoBody: true,
		Handler: func(c *gin.Context, in *service.StockQuery) (struct{}, error) {
			return struct{}{}, h.svc.UpdateStock(c.Request.Context(), c.Param("id"), *in.Quantity)
		},
	})
}
