package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"transit_info/internal/config"
	"transit_info/internal/geo"
	"transit_info/internal/metrics"
	"transit_info/internal/models"
	"transit_info/internal/publisher"
	"transit_info/internal/service"
)

// GeoLookup is the slice of the external mapping provider the admin layer
// relies on: geocoding stop names and generating route path geometry.
type GeoLookup interface {
	Geocode(ctx context.Context, name string) (float64, float64, error)
	RouteLine(ctx context.Context, coords [][]float64) (json.RawMessage, error)
}

var geoLookup GeoLookup = geo.NewClient()

var (
	alertPublisher *publisher.AlertPublisher
	collector      *metrics.Collector
)

// SetGeoLookup installs the mapping provider. main calls this once the
// environment has been loaded so GEOCODER_URL and DIRECTIONS_URL from a
// .env file are honored; the package default only sees process env vars.
func SetGeoLookup(g GeoLookup) { geoLookup = g }

// SetAlertPublisher installs the optional NATS publisher for alert events.
func SetAlertPublisher(p *publisher.AlertPublisher) { alertPublisher = p }

// SetMetrics installs the shared metrics collector.
func SetMetrics(c *metrics.Collector) { collector = c }

func isUniqueViolation(err error) bool {
	var pgErr *pq.Error
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// --- Stop management ---

// CreateStop creates a stop from explicit coordinates, or geocodes the
// stop name when none are given.
func CreateStop(c *gin.Context) {
	var input struct {
		Name string   `json:"name" binding:"required"`
		Lng  *float64 `json:"lng"`
		Lat  *float64 `json:"lat"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var lng, lat float64
	if input.Lng != nil && input.Lat != nil {
		lng, lat = *input.Lng, *input.Lat
	} else {
		var err error
		lng, lat, err = geoLookup.Geocode(c.Request.Context(), input.Name)
		if err != nil {
			logrus.WithError(err).Warn("CreateStop: geocoding failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Could not geocode stop name"})
			return
		}
	}

	stop := models.Stop{Name: input.Name, Lng: lng, Lat: lat}
	if err := config.DB.Create(&stop).Error; err != nil {
		logrus.WithError(err).Error("CreateStop: create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create stop failed"})
		return
	}
	c.JSON(http.StatusCreated, toStopResponse(stop))
}

// UpdateStop applies partial edits to a stop.
func UpdateStop(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stop ID"})
		return
	}

	var stop models.Stop
	if err := config.DB.First(&stop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Stop not found"})
		} else {
			logrus.WithError(err).Error("UpdateStop: fetch failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	var input struct {
		Name *string  `json:"name"`
		Lng  *float64 `json:"lng"`
		Lat  *float64 `json:"lat"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Name != nil {
		stop.Name = *input.Name
	}
	if input.Lng != nil {
		stop.Lng = *input.Lng
	}
	if input.Lat != nil {
		stop.Lat = *input.Lat
	}

	if err := config.DB.Save(&stop).Error; err != nil {
		logrus.WithError(err).Error("UpdateStop: save failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed"})
		return
	}
	c.JSON(http.StatusOK, toStopResponse(stop))
}

// DeleteStop removes a stop and cascades over its schedules and its
// membership rows in routes, in one transaction. The store has no
// cross-table referential integrity, so the cleanup order is explicit.
func DeleteStop(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stop ID"})
		return
	}

	var stop models.Stop
	if err := config.DB.First(&stop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Stop not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("stop_id = ?", stop.ID).Delete(&models.Schedule{}).Error; err != nil {
			return err
		}
		if err := tx.Where("stop_id = ?", stop.ID).Delete(&models.RouteStop{}).Error; err != nil {
			return err
		}
		return tx.Delete(&stop).Error
	})
	if err != nil {
		logrus.WithError(err).Error("DeleteStop: transaction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stop removed from schedules and routes"})
}

// --- Route management ---

type routeInput struct {
	Name     string `json:"name" binding:"required"`
	Type     string `json:"type" binding:"required,oneof=Shuttle Bus Metro"`
	Path     string `json:"path"` // GeoJSON LineString; generated when omitted
	StopIDs  []uint `json:"stops" binding:"required,min=2"`
	Color    string `json:"color"`
	IsActive *bool  `json:"is_active"`
}

// CreateRoute creates a route with its ordered stop sequence. When no path
// geometry is supplied it is generated through the directions provider,
// falling back to a straight line through the stops.
func CreateRoute(c *gin.Context) {
	var input routeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateRoute: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	stops, err := loadStopsInOrder(input.StopIDs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wkbPath, err := buildRoutePath(c.Request.Context(), input.Path, stops)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid geometry: " + err.Error()})
		return
	}

	route := models.Route{
		Name:     input.Name,
		Type:     input.Type,
		Path:     wkbPath,
		Color:    input.Color,
		IsActive: true,
	}
	if input.IsActive != nil {
		route.IsActive = *input.IsActive
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&route).Error; err != nil {
			return err
		}
		for i, s := range stops {
			link := models.RouteStop{RouteID: route.ID, StopID: s.ID, Seq: i}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Route name already in use"})
			return
		}
		logrus.WithError(err).Error("CreateRoute: transaction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create route failed"})
		return
	}

	config.DB.Preload("Stops", func(tx *gorm.DB) *gorm.DB { return tx.Order("seq ASC") }).
		Preload("Stops.Stop").
		First(&route, route.ID)
	resp, err := toRouteResponse(route)
	if err != nil {
		logrus.WithError(err).Error("CreateRoute: bad route geometry")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// loadStopsInOrder fetches the referenced stops and returns them in the
// order requested, erroring on any unknown id.
func loadStopsInOrder(ids []uint) ([]models.Stop, error) {
	var found []models.Stop
	if err := config.DB.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Stop, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	ordered := make([]models.Stop, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, errors.New("unknown stop id " + strconv.FormatUint(uint64(id), 10))
		}
		ordered = append(ordered, s)
	}
	return ordered, nil
}

// buildRoutePath turns explicit GeoJSON into WKB, or generates geometry
// from the stop coordinates when none was supplied.
func buildRoutePath(ctx context.Context, rawGeoJSON string, stops []models.Stop) ([]byte, error) {
	if rawGeoJSON != "" {
		return service.WKBFromGeoJSON(rawGeoJSON)
	}
	if len(stops) < 2 {
		return nil, nil
	}

	coords := make([][]float64, 0, len(stops))
	for _, s := range stops {
		coords = append(coords, []float64{s.Lng, s.Lat})
	}

	line, err := geoLookup.RouteLine(ctx, coords)
	if err != nil {
		logrus.WithError(err).Warn("buildRoutePath: directions lookup failed, using straight line")
		return service.WKBLineString(coords)
	}
	return service.WKBFromGeoJSON(string(line))
}

// UpdateRoute applies partial edits to a route; a stops list replaces the
// whole sequence.
func UpdateRoute(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	var route models.Route
	if err := config.DB.First(&route, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		} else {
			logrus.WithError(err).Error("UpdateRoute: fetch failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	var input struct {
		Name     *string `json:"name"`
		Type     *string `json:"type"`
		Path     *string `json:"path"`
		StopIDs  []uint  `json:"stops"`
		Color    *string `json:"color"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("UpdateRoute: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		route.Name = *input.Name
	}
	if input.Type != nil {
		if !models.ValidRouteType(*input.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route type"})
			return
		}
		route.Type = *input.Type
	}
	if input.Color != nil {
		route.Color = *input.Color
	}
	if input.IsActive != nil {
		route.IsActive = *input.IsActive
	}
	if input.Path != nil {
		if *input.Path == "" {
			route.Path = nil
		} else {
			wkbPath, err := service.WKBFromGeoJSON(*input.Path)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid geometry: " + err.Error()})
				return
			}
			route.Path = wkbPath
		}
	}

	var stops []models.Stop
	if input.StopIDs != nil {
		if len(input.StopIDs) < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A route needs at least two stops"})
			return
		}
		stops, err = loadStopsInOrder(input.StopIDs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&route).Error; err != nil {
			return err
		}
		if stops == nil {
			return nil
		}
		if err := tx.Where("route_id = ?", route.ID).Delete(&models.RouteStop{}).Error; err != nil {
			return err
		}
		for i, s := range stops {
			link := models.RouteStop{RouteID: route.ID, StopID: s.ID, Seq: i}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Route name already in use"})
			return
		}
		logrus.WithError(err).Error("UpdateRoute: transaction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed"})
		return
	}

	config.DB.Preload("Stops", func(tx *gorm.DB) *gorm.DB { return tx.Order("seq ASC") }).
		Preload("Stops.Stop").
		First(&route, route.ID)
	resp, err := toRouteResponse(route)
	if err != nil {
		logrus.WithError(err).Error("UpdateRoute: bad route geometry")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteRoute removes a route together with its schedules, stop links and
// alert attachments.
func DeleteRoute(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	var route models.Route
	if err := config.DB.First(&route, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("route_id = ?", route.ID).Delete(&models.Schedule{}).Error; err != nil {
			return err
		}
		if err := tx.Where("route_id = ?", route.ID).Delete(&models.RouteStop{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM alert_routes WHERE route_id = ?", route.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&route).Error
	})
	if err != nil {
		logrus.WithError(err).Error("DeleteRoute: transaction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Route and associated schedules removed"})
}

// --- Schedule management ---

// SetSchedule creates or replaces the arrival times of one (route, stop)
// pair.
func SetSchedule(c *gin.Context) {
	var input struct {
		RouteID      uint     `json:"route_id" binding:"required"`
		StopID       uint     `json:"stop_id" binding:"required"`
		ArrivalTimes []string `json:"arrival_times" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	for _, t := range input.ArrivalTimes {
		if !models.ValidArrivalTime(t) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time format. Use HH:MM"})
			return
		}
	}

	var route models.Route
	if err := config.DB.First(&route, input.RouteID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown route"})
		return
	}
	var stop models.Stop
	if err := config.DB.First(&stop, input.StopID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown stop"})
		return
	}

	var schedule models.Schedule
	err := config.DB.Where("route_id = ? AND stop_id = ?", input.RouteID, input.StopID).
		First(&schedule).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		schedule = models.Schedule{
			RouteID:      input.RouteID,
			StopID:       input.StopID,
			ArrivalTimes: input.ArrivalTimes,
		}
		err = config.DB.Create(&schedule).Error
	case err == nil:
		schedule.ArrivalTimes = input.ArrivalTimes
		err = config.DB.Save(&schedule).Error
	}
	if err != nil {
		logrus.WithError(err).Error("SetSchedule: upsert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Set schedule failed"})
		return
	}
	c.JSON(http.StatusCreated, schedule)
}

// --- Fare management ---

// SetFare creates or replaces the fare record of one route type.
func SetFare(c *gin.Context) {
	var input struct {
		RouteType     string  `json:"route_type" binding:"required,oneof=Shuttle Bus Metro"`
		BaseFare      float64 `json:"base_fare" binding:"min=0"`
		PerStopCharge float64 `json:"per_stop_charge" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var fare models.Fare
	err := config.DB.Where("route_type = ?", input.RouteType).First(&fare).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		fare = models.Fare{
			RouteType:     input.RouteType,
			BaseFare:      input.BaseFare,
			PerStopCharge: input.PerStopCharge,
		}
		err = config.DB.Create(&fare).Error
	case err == nil:
		fare.BaseFare = input.BaseFare
		fare.PerStopCharge = input.PerStopCharge
		err = config.DB.Save(&fare).Error
	}
	if err != nil {
		logrus.WithError(err).Error("SetFare: upsert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Set fare failed"})
		return
	}
	c.JSON(http.StatusCreated, fare)
}

// --- Service alert management ---

type alertInput struct {
	Title          string     `json:"title" binding:"required"`
	Description    string     `json:"description" binding:"required"`
	Type           string     `json:"type"`
	AffectedRoutes []uint     `json:"affected_routes"`
	StartsAt       *time.Time `json:"starts_at"`
	EndsAt         time.Time  `json:"ends_at" binding:"required"`
}

// CreateServiceAlert creates a time-windowed advisory attached to the
// given routes and broadcasts the event when a publisher is configured.
func CreateServiceAlert(c *gin.Context) {
	var input alertInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if input.Type == "" {
		input.Type = models.AlertTypeInfo
	}
	if !models.ValidAlertType(input.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid alert type"})
		return
	}

	startsAt := time.Now()
	if input.StartsAt != nil {
		startsAt = *input.StartsAt
	}
	if !input.EndsAt.After(startsAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Alert end time must be after its start time"})
		return
	}

	var affected []models.Route
	if len(input.AffectedRoutes) > 0 {
		if err := config.DB.Where("id IN ?", input.AffectedRoutes).Find(&affected).Error; err != nil {
			logrus.WithError(err).Error("CreateServiceAlert: route lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}
		if len(affected) != len(input.AffectedRoutes) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown route in affected_routes"})
			return
		}
	}

	alert := models.ServiceAlert{
		Title:          input.Title,
		Description:    input.Description,
		Type:           input.Type,
		AffectedRoutes: affected,
		StartsAt:       startsAt,
		EndsAt:         input.EndsAt,
	}
	if err := config.DB.Create(&alert).Error; err != nil {
		logrus.WithError(err).Error("CreateServiceAlert: create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create alert failed"})
		return
	}

	publishAlertEvent("created", &alert, input.AffectedRoutes)
	c.JSON(http.StatusCreated, alert)
}

// UpdateServiceAlert applies partial edits to an alert; an affected-routes
// list replaces the attachment set.
func UpdateServiceAlert(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid alert ID"})
		return
	}

	var alert models.ServiceAlert
	if err := config.DB.First(&alert, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	var input struct {
		Title          *string    `json:"title"`
		Description    *string    `json:"description"`
		Type           *string    `json:"type"`
		AffectedRoutes []uint     `json:"affected_routes"`
		StartsAt       *time.Time `json:"starts_at"`
		EndsAt         *time.Time `json:"ends_at"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Title != nil {
		alert.Title = *input.Title
	}
	if input.Description != nil {
		alert.Description = *input.Description
	}
	if input.Type != nil {
		if !models.ValidAlertType(*input.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid alert type"})
			return
		}
		alert.Type = *input.Type
	}
	if input.StartsAt != nil {
		alert.StartsAt = *input.StartsAt
	}
	if input.EndsAt != nil {
		alert.EndsAt = *input.EndsAt
	}
	if !alert.EndsAt.After(alert.StartsAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Alert end time must be after its start time"})
		return
	}

	if err := config.DB.Save(&alert).Error; err != nil {
		logrus.WithError(err).Error("UpdateServiceAlert: save failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed"})
		return
	}

	if input.AffectedRoutes != nil {
		var affected []models.Route
		if err := config.DB.Where("id IN ?", input.AffectedRoutes).Find(&affected).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}
		if len(affected) != len(input.AffectedRoutes) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown route in affected_routes"})
			return
		}
		if err := config.DB.Model(&alert).Association("AffectedRoutes").Replace(affected); err != nil {
			logrus.WithError(err).Error("UpdateServiceAlert: attachment update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed"})
			return
		}
	}

	publishAlertEvent("updated", &alert, input.AffectedRoutes)
	c.JSON(http.StatusOK, alert)
}

// DeleteServiceAlert removes an alert and its route attachments.
func DeleteServiceAlert(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid alert ID"})
		return
	}

	var alert models.ServiceAlert
	if err := config.DB.First(&alert, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM alert_routes WHERE service_alert_id = ?", alert.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&alert).Error
	})
	if err != nil {
		logrus.WithError(err).Error("DeleteServiceAlert: transaction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Delete failed"})
		return
	}

	publishAlertEvent("deleted", &alert, nil)
	c.JSON(http.StatusOK, gin.H{"message": "Alert removed"})
}

// publishAlertEvent broadcasts an alert lifecycle change. Best effort: a
// publish failure is logged and counted, never surfaced to the caller.
func publishAlertEvent(action string, alert *models.ServiceAlert, routeIDs []uint) {
	if alertPublisher == nil {
		return
	}
	err := alertPublisher.Publish(publisher.AlertEvent{
		Action:   action,
		AlertID:  alert.ID,
		Title:    alert.Title,
		Type:     alert.Type,
		RouteIDs: routeIDs,
		StartsAt: alert.StartsAt,
		EndsAt:   alert.EndsAt,
	})
	if collector != nil {
		if err != nil {
			collector.AlertPublishErrs.Inc()
		} else {
			collector.AlertEventsPublished.Inc()
		}
	}
	if err != nil {
		logrus.WithError(err).Warn("publishAlertEvent: publish failed")
	}
}
