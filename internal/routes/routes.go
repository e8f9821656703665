package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"transit_info/internal/metrics"
)

// SetupRouter assembles the full HTTP surface.
func SetupRouter(col *metrics.Collector) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	r.GET("/", func(c *gin.Context) {
		c.String(200, "API is running successfully...")
	})

	AuthRoutes(r)
	TransitRoutes(r, col)
	SimpleRouteRoutes(r)
	AdminRoutes(r)

	return r
}
