package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ecommerce-services/internal/service"
	httpez "ecommerce-services/internal/transport/http/ez"
)

type UserHandler struct {
	svc *service.UserService
	log *zap.Logger
}

func NewUserHandler(svc *service.UserService, l *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: l}
}

// MountAPI 挂在 /api/users 分组下
func (h *UserHandler) MountAPI(g *gin.RouterGroup) {
	ez := httpez.New(g, h.log)

	httpez.RegisterAction(ez, httpez.Action[service.UserRequest, service.UserResponse]{
		Method: http.MethodPost,
		Path:   "",
		Binder: httpez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.UserRequest) (service.UserResponse, error) {
			return h.svc.Create(c.Request.Context(), *in)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, []service.UserResponse]{
		Method: http.MethodGet,
		Path:   "",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]service.UserResponse, error) {
			return h.svc.List(c.Request.Context())
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, service.UserResponse]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (service.UserResponse, error) {
			return h.svc.Get(c.Request.Context(), c.Param("id"))
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, service.UserResponse]{
		Method: http.MethodGet,
		Path:   "/email/:email",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (service.UserResponse, error) {
			return h.svc.GetByEmail(c.Request.Context(), c.Param("email"))
		},
	})

	httpez.RegisterAction(ez, httpez.Action[service.UserRequest, service.UserResponse]{
		Method: http.MethodPut,
		Path:   "/:id",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *service.UserRequest) (service.UserResponse, error) {
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
}
