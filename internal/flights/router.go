package flights

import (
	"skyport/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupFlightRoutes registers flight endpoints. Reads require a valid
// token; mutations additionally require the admin role.
func SetupFlightRoutes(router *gin.RouterGroup, controller Controller) {
	flights := router.Group("/flights")
	flights.Use(middleware.JWTAuth(), middleware.AdminOrReadOnly())
	{
		flights.GET("", controller.GetAllFlights)       // GET /api/v1/flights
		flights.GET("/:id", controller.GetFlight)       // GET /api/v1/flights/:id
		flights.POST("", controller.CreateFlight)       // POST /api/v1/flights
		flights.PUT("/:id", controller.UpdateFlight)    // PUT /api/v1/flights/:id
		flights.DELETE("/:id", controller.DeleteFlight) // DELETE /api/v1/flights/:id
	}
}
