package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"transit_info/internal/metrics"
	"transit_info/internal/models"
	"transit_info/internal/service"
)

// TransitController serves the public read surface: the direct-route
// finder plus the catalog reads feeding the client's selection UI.
type TransitController struct {
	db       *gorm.DB
	resolver *service.Resolver
	metrics  *metrics.Collector
}

func NewTransitController(db *gorm.DB, col *metrics.Collector) *TransitController {
	return &TransitController{
		db: db,
		resolver: service.NewResolver(
			service.NewGormRouteSource(db),
			service.NewGormFareSource(db),
			service.NewGormAlertSource(db),
		),
		metrics: col,
	}
}

type findInput struct {
	FromStopID uint `json:"fromStopId"`
	ToStopID   uint `json:"toStopId"`
}

// FindDirectRoutes handles POST /api/routes/find. Missing or identical
// identifiers are caller-input errors; an empty journey list is a normal
// outcome and comes back as 200 with an empty array.
func (tc *TransitController) FindDirectRoutes(c *gin.Context) {
	var input findInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if input.FromStopID == 0 || input.ToStopID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Source and destination stops are required."})
		return
	}
	if input.FromStopID == input.ToStopID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Source and destination stops must differ."})
		return
	}

	start := time.Now()
	journeys, err := tc.resolver.Resolve(c.Request.Context(), input.FromStopID, input.ToStopID)
	if err != nil {
		logrus.WithError(err).Error("FindDirectRoutes: resolution failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if tc.metrics != nil {
		tc.metrics.ObserveResolve(len(journeys), time.Since(start))
	}

	c.JSON(http.StatusOK, journeys)
}

// GetAllRoutes returns every active route with its ordered stops.
func (tc *TransitController) GetAllRoutes(c *gin.Context) {
	var routes []models.Route
	err := tc.db.WithContext(c.Request.Context()).
		Preload("Stops", func(tx *gorm.DB) *gorm.DB { return tx.Order("seq ASC") }).
		Preload("Stops.Stop").
		Where("is_active = ?", true).
		Find(&routes).Error
	if err != nil {
		logrus.WithError(err).Error("GetAllRoutes: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	out := make([]RouteResponse, 0, len(routes))
	for _, r := range routes {
		resp, err := toRouteResponse(r)
		if err != nil {
			logrus.WithError(err).Error("GetAllRoutes: bad route geometry")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, out)
}

// GetRouteByID returns a single route with its ordered stops.
func (tc *TransitController) GetRouteByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	var route models.Route
	err = tc.db.WithContext(c.Request.Context()).
		Preload("Stops", func(tx *gorm.DB) *gorm.DB { return tx.Order("seq ASC") }).
		Preload("Stops.Stop").
		First(&route, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		return
	}
	if err != nil {
		logrus.WithError(err).Error("GetRouteByID: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	resp, err := toRouteResponse(route)
	if err != nil {
		logrus.WithError(err).Error("GetRouteByID: bad route geometry")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetAllStops returns every stop for the client's selection UI.
func (tc *TransitController) GetAllStops(c *gin.Context) {
	var stops []models.Stop
	if err := tc.db.WithContext(c.Request.Context()).Find(&stops).Error; err != nil {
		logrus.WithError(err).Error("GetAllStops: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	out := make([]StopResponse, 0, len(stops))
	for _, s := range stops {
		out = append(out, toStopResponse(s))
	}
	c.JSON(http.StatusOK, out)
}

// GetScheduleForRoute returns the arrival-time lists of one route.
func (tc *TransitController) GetScheduleForRoute(c *gin.Context) {
	routeID, err := strconv.ParseUint(c.Param("routeId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	var schedules []models.Schedule
	err = tc.db.WithContext(c.Request.Context()).
		Preload("Stop").
		Where("route_id = ?", routeID).
		Find(&schedules).Error
	if err != nil {
		logrus.WithError(err).Error("GetScheduleForRoute: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if len(schedules) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No schedules found for this route"})
		return
	}

	c.JSON(http.StatusOK, schedules)
}
