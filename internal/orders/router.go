package orders

import (
	"skyport/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupOrderRoutes registers order endpoints. Every endpoint requires a
// valid token; ownership rules are enforced in the service.
func SetupOrderRoutes(router *gin.RouterGroup, controller Controller) {
	orders := router.Group("/orders")
	orders.Use(middleware.JWTAuth())
	{
		orders.POST("", controller.CreateOrder)       // POST /api/v1/orders
		orders.GET("", controller.GetOrders)          // GET /api/v1/orders
		orders.GET("/:id", controller.GetOrder)       // GET /api/v1/orders/:id
		orders.DELETE("/:id", controller.CancelOrder) // DELETE /api/v1/orders/:id
	}
}
