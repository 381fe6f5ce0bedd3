package router

import (
	"github.com/gin-gonic/gin"

	"ecommerce-services/internal/service"
	"ecommerce-services/internal/transport/http/handler"
)

const UsersBase = "/api/users"

func NewUserEngine(d Deps, svc *service.UserService) *gin.Engine {
	return newEngine(d, UsersBase, handler.NewUserHandler(svc, d.Log))
}
