package router

import (
	"github.com/gin-gonic/gin"

	"ecommerce-services/internal/service"
	"ecommerce-services/internal/transport/http/handler"
)

const ProductsBase = "/api/products"

func NewProductEngine(d Deps, svc *service.ProductService) *gin.Engine {
	return newEngine(d, ProductsBase, handler.NewProductHandler(svc, d.Log))
}
