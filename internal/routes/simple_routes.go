package routes

import (
	"github.com/gin-gonic/gin"

	"transit_info/internal/controllers"
)

func SimpleRouteRoutes(r *gin.Engine) {
	simple := r.Group("/api/simpleroutes")
	{
		simple.POST("/find", controllers.FindSimpleRoute)
	}
}
