package routes

import (
	"skyport/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRouteRoutes registers route endpoints. Reads require a valid
// token; mutations additionally require the admin role.
func SetupRouteRoutes(router *gin.RouterGroup, controller Controller) {
	routes := router.Group("/routes")
	routes.Use(middleware.JWTAuth(), middleware.AdminOrReadOnly())
	{
		routes.GET("", controller.GetAllRoutes)       // GET /api/v1/routes
		routes.GET("/:id", controller.GetRoute)       // GET /api/v1/routes/:id
		routes.POST("", controller.CreateRoute)       // POST /api/v1/routes
		routes.PUT("/:id", controller.UpdateRoute)    // PUT /api/v1/routes/:id
		routes.DELETE("/:id", controller.DeleteRoute) // DELETE /api/v1/routes/:id
	}
}
