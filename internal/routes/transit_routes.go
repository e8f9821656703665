package routes

import (
	"github.com/gin-gonic/gin"

	"transit_info/internal/config"
	"transit_info/internal/controllers"
	"transit_info/internal/metrics"
)

// TransitRoutes mounts the public read surface.
func TransitRoutes(r *gin.Engine, col *metrics.Collector) {
	tc := controllers.NewTransitController(config.GetDB(), col)

	public := r.Group("/api/routes")
	{
		public.POST("/find", tc.FindDirectRoutes)
		public.GET("", tc.GetAllRoutes)
		public.GET("/:id", tc.GetRouteByID)
		public.GET("/stops/all", tc.GetAllStops)
		public.GET("/schedules/route/:routeId", tc.GetScheduleForRoute)
	}
}
