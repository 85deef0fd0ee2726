package airports

import (
	"skyport/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAirportRoutes registers airport endpoints. Reads require a valid
// token; mutations additionally require the admin role.
func SetupAirportRoutes(router *gin.RouterGroup, controller Controller) {
	airports := router.Group("/airports")
	airports.Use(middleware.JWTAuth(), middleware.AdminOrReadOnly())
	{
		airports.GET("", controller.GetAllAirports)       // GET /api/v1/airports
		airports.GET("/:id", controller.GetAirport)       // GET /api/v1/airports/:id
		airports.POST("", controller.CreateAirport)       // POST /api/v1/airports
		airports.PUT("/:id", controller.UpdateAirport)    // PUT /api/v1/airports/:id
		airports.DELETE("/:id", controller.DeleteAirport) // DELETE /api/v1/airports/:id
	}
}
