package routes

import (
	"github.com/gin-gonic/gin"

	"transit_info/internal/controllers"
	"transit_info/internal/middleware"
)

// AdminRoutes mounts the catalog mutation surface; every endpoint requires
// an admin token.
func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/api/admin")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.POST("/routes", controllers.CreateRoute)
		admin.PUT("/routes/:id", controllers.UpdateRoute)
		admin.DELETE("/routes/:id", controllers.DeleteRoute)

		admin.POST("/stops", controllers.CreateStop)
		admin.PUT("/stops/:id", controllers.UpdateStop)
		admin.DELETE("/stops/:id", controllers.DeleteStop)

		admin.POST("/schedules", controllers.SetSchedule)
		admin.POST("/fares", controllers.SetFare)

		admin.POST("/alerts", controllers.CreateServiceAlert)
		admin.PUT("/alerts/:id", controllers.UpdateServiceAlert)
		admin.DELETE("/alerts/:id", controllers.DeleteServiceAlert)

		admin.POST("/simpleroutes", controllers.CreateSimpleRoute)
	}
}
