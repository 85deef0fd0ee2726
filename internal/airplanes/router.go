package airplanes

import (
	"skyport/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAirplaneRoutes registers airplane type and airplane endpoints.
// Reads require a valid token; mutations additionally require the
// admin role.
func SetupAirplaneRoutes(router *gin.RouterGroup, controller Controller) {
	types := router.Group("/airplane-types")
	types.Use(middleware.JWTAuth(), middleware.AdminOrReadOnly())
	{
		types.GET("", controller.GetAirplaneTypes)          // GET /api/v1/airplane-types
		types.POST("", controller.CreateAirplaneType)       // POST /api/v1/airplane-types
		types.PUT("/:id", controller.UpdateAirplaneType)    // PUT /api/v1/airplane-types/:id
		types.DELETE("/:id", controller.DeleteAirplaneType) // DELETE /api/v1/airplane-types/:id
	}

	airplanes := router.Group("/airplanes")
	airplanes.Use(middleware.JWTAuth(), middleware.AdminOrReadOnly())
	{
		airplanes.GET("", controller.GetAllAirplanes)        // GET /api/v1/airplanes
		airplanes.GET("/:id", controller.GetAirplane)        // GET /api/v1/airplanes/:id
		airplanes.POST("", controller.CreateAirplane)        // POST /api/v1/airplanes
		airplanes.PUT("/:id", controller.UpdateAirplane)     // PUT /api/v1/airplanes/:id
		airplanes.DELETE("/:id", controller.DeleteAirplane)  // DELETE /api/v1/airplanes/:id
		airplanes.POST("/:id/image", controller.UploadImage) // POST /api/v1/airplanes/:id/image
	}
}
