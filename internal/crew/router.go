package crew

import (
	"skyport/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCrewRoutes(router *gin.RouterGroup, controller Controller) {
	crewGroup := router.Group("/crew")
	crewGroup.Use(middleware.JWTAuth(), middleware.AdminOrReadOnly())
	{
		crewGroup.GET("", controller.GetAllCrew)        // GET /api/v1/crew
		crewGroup.GET("/:id", controller.GetCrew)       // GET /api/v1/crew/:id
		crewGroup.POST("", controller.CreateCrew)       // POST /api/v1/crew
		crewGroup.PUT("/:id", controller.UpdateCrew)    // PUT /api/v1/crew/:id
		crewGroup.DELETE("/:id", controller.DeleteCrew) // DELETE /api/v1/crew/:id
	}
}
