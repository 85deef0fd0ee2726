package airlines

import (
	"skyport/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAirlineRoutes(router *gin.RouterGroup, controller Controller) {
	airlines := router.Group("/airlines")
	airlines.Use(middleware.JWTAuth(), middleware.AdminOrReadOnly())
	{
		airlines.GET("", controller.GetAllAirlines)       // GET /api/v1/airlines
		airlines.GET("/:id", controller.GetAirline)       // GET /api/v1/airlines/:id
		airlines.POST("", controller.CreateAirline)       // POST /api/v1/airlines
		airlines.PUT("/:id", controller.UpdateAirline)    // PUT /api/v1/airlines/:id
		airlines.DELETE("/:id", controller.DeleteAirline) // DELETE /api/v1/airlines/:id
	}
}
